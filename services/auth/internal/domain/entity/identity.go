package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity 로그인 세션(베어러 토큰) 도메인 엔티티
type Identity struct {
	ID           uuid.UUID
	Token        string
	ExpiresAt    time.Time
	UserID       *uuid.UUID // 시스템 세션은 사용자가 없습니다
	SourceIP     string
	TOTPSecret   *string // base64 인코딩된 OTP 비밀키
	TOTPTimeStep *int64  // OTP 발급 시각 (unix 초)
	StateID      uuid.UUID
	State        StateName
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewIdentity 새 세션 생성. 만료 시각은 now+ttl 입니다.
func NewIdentity(token string, userID *uuid.UUID, sourceIP string, state *State, now time.Time, ttl time.Duration) *Identity {
	return &Identity{
		ID:        uuid.New(),
		Token:     token,
		ExpiresAt: now.Add(ttl),
		UserID:    userID,
		SourceIP:  sourceIP,
		StateID:   state.ID,
		State:     state.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired now 시점에 만료되었는지 확인
func (i *Identity) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsUsable Active 이고 아직 만료되지 않았는지 확인
func (i *Identity) IsUsable(now time.Time) bool {
	return i.State == StateActive && !i.IsExpired(now)
}

// Extend 만료 시각을 now+ttl 로 민다. 결과는 항상 이전 값보다 뒤입니다.
func (i *Identity) Extend(now time.Time, ttl time.Duration) {
	next := now.Add(ttl)
	if !next.After(i.ExpiresAt) {
		next = i.ExpiresAt.Add(time.Microsecond)
	}
	i.ExpiresAt = next
	i.UpdatedAt = now
}

// TransitionTo 상태 전이 표를 검증한 뒤 상태를 바꿉니다.
func (i *Identity) TransitionTo(state *State) error {
	if !CanTransitionIdentity(i.State, state.Name) {
		return transitionError(i.State, state.Name)
	}
	i.StateID = state.ID
	i.State = state.Name
	return nil
}

// HasOTP OTP 비밀키와 발급 시각이 모두 있는지 확인
func (i *Identity) HasOTP() bool {
	return i.TOTPSecret != nil && *i.TOTPSecret != "" && i.TOTPTimeStep != nil
}

// AttachOTP OTP 비밀키와 발급 시각을 기록
func (i *Identity) AttachOTP(secret string, timeStep int64) {
	i.TOTPSecret = &secret
	i.TOTPTimeStep = &timeStep
}

// BelongsTo 세션 소유자가 userID 인지 확인
func (i *Identity) BelongsTo(userID uuid.UUID) bool {
	return i.UserID != nil && *i.UserID == userID
}
