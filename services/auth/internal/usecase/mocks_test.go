package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
)

// MockStateRepository is a mock implementation of StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) FindOrCreate(ctx context.Context, name entity.StateName) (*entity.State, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.State), args.Error(1)
}

func (m *MockStateRepository) List(ctx context.Context) ([]*entity.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.State), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindOrCreate(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) TouchLastActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindOrCreateType(ctx context.Context, name string) (*entity.TransactionType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionType), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Finish(ctx context.Context, id uuid.UUID, state *entity.State, response map[string]interface{}) error {
	return m.Called(ctx, id, state, response).Error(0)
}

func (m *MockTransactionRepository) AppendNotificationResponse(ctx context.Context, id uuid.UUID, response string) error {
	return m.Called(ctx, id, response).Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

// MockMailRepository is a mock implementation of MailRepository
type MockMailRepository struct {
	mock.Mock
}

func (m *MockMailRepository) SendMail(ctx context.Context, to string, subject string, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

// MockNotificationBus is a mock implementation of NotificationBus
type MockNotificationBus struct {
	mock.Mock
}

func (m *MockNotificationBus) Publish(ctx context.Context, notification *entity.Notification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}

// passthroughTransactor 트랜잭션 없이 fn 을 그대로 실행
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeStates 고정 ID 를 돌려주는 상태 레지스트리
type fakeStates struct {
	mu     sync.Mutex
	states map[entity.StateName]*entity.State
}

func newFakeStates() *fakeStates {
	return &fakeStates{states: make(map[entity.StateName]*entity.State)}
}

func (f *fakeStates) Warm(ctx context.Context) error {
	for _, name := range entity.AllStates {
		if _, err := f.Resolve(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStates) Resolve(_ context.Context, name entity.StateName) (*entity.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !name.Valid() {
		return nil, ErrStateNotFound
	}
	if s, ok := f.states[name]; ok {
		return s, nil
	}
	s := &entity.State{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name}
	f.states[name] = s
	return s, nil
}

// fakeClock 테스트에서 움직이는 시계
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingNotifier 발송 요청을 기록만 합니다
type recordingNotifier struct {
	mu       sync.Mutex
	requests []dto.NotificationRequest
}

func (n *recordingNotifier) Dispatch(_ context.Context, req dto.NotificationRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
}

func (n *recordingNotifier) Wait() {}

func (n *recordingNotifier) Sent() []dto.NotificationRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dto.NotificationRequest(nil), n.requests...)
}

// memoryIdentityRepository 상태 전이를 검증하기 위한 메모리 저장소
type memoryIdentityRepository struct {
	mu    sync.Mutex
	items []*entity.Identity
}

func newMemoryIdentityRepository() *memoryIdentityRepository {
	return &memoryIdentityRepository{}
}

func (r *memoryIdentityRepository) Create(_ context.Context, identity *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *identity
	r.items = append(r.items, &cp)
	return nil
}

func (r *memoryIdentityRepository) UpdateIfState(_ context.Context, identity *entity.Identity, from []entity.StateName, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == identity.ID && hasState(from, item.State) && item.ExpiresAt.After(now) {
			item.ExpiresAt = identity.ExpiresAt
			item.StateID, item.State = identity.StateID, identity.State
			item.UpdatedAt = identity.UpdatedAt
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryIdentityRepository) FindByToken(_ context.Context, token string, states []entity.StateName, now time.Time) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Token == token && hasState(states, item.State) && item.ExpiresAt.After(now) {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryIdentityRepository) FindActiveByUser(_ context.Context, userID uuid.UUID, now time.Time) (*entity.Identity, error) {
	return r.latest(func(i *entity.Identity) bool {
		return i.BelongsTo(userID) && i.State == entity.StateActive && i.ExpiresAt.After(now)
	}), nil
}

func (r *memoryIdentityRepository) FindReusableOTP(_ context.Context, userID uuid.UUID, from, to time.Time) (*entity.Identity, error) {
	return r.latest(func(i *entity.Identity) bool {
		return i.BelongsTo(userID) && i.State == entity.StateExpired && i.HasOTP() &&
			!i.CreatedAt.Before(from) && i.CreatedAt.Before(to)
	}), nil
}

func (r *memoryIdentityRepository) TransitionByUser(_ context.Context, userID uuid.UUID, from []entity.StateName, to *entity.State, expiredBefore *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if !item.BelongsTo(userID) || !hasState(from, item.State) {
			continue
		}
		if expiredBefore != nil && item.ExpiresAt.After(*expiredBefore) {
			continue
		}
		item.StateID, item.State = to.ID, to.Name
		n++
	}
	return n, nil
}

func (r *memoryIdentityRepository) ExpireStale(_ context.Context, from []entity.StateName, to *entity.State, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if hasState(from, item.State) && !item.ExpiresAt.After(now) {
			item.StateID, item.State = to.ID, to.Name
			n++
		}
	}
	return n, nil
}

func (r *memoryIdentityRepository) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Identity
	for _, item := range r.items {
		if item.BelongsTo(userID) {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ByToken 저장된 세션을 그대로 조회 (상태 무관)
func (r *memoryIdentityRepository) ByToken(token string) *entity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Token == token {
			cp := *item
			return &cp
		}
	}
	return nil
}

func (r *memoryIdentityRepository) latest(match func(*entity.Identity) bool) *entity.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *entity.Identity
	for _, item := range r.items {
		if match(item) && (found == nil || !item.CreatedAt.Before(found.CreatedAt)) {
			found = item
		}
	}
	if found == nil {
		return nil
	}
	cp := *found
	return &cp
}

func hasState(states []entity.StateName, state entity.StateName) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
