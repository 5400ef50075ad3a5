package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// ErrStateNotFound 상태를 찾거나 만들 수 없을 때의 센티넬
var ErrStateNotFound = errors.New("state not found")

// StateRegistry 상태 행 읽기 캐시. 캐시는 프로세스 수명 동안 유지됩니다.
type StateRegistry struct {
	logger *zap.Logger
	repo   repository.StateRepository

	mu    sync.RWMutex
	cache map[entity.StateName]*entity.State
}

// NewStateRegistry 상태 레지스트리 생성
func NewStateRegistry(logger *zap.Logger, repo repository.StateRepository) interfaces.StateRegistry {
	return &StateRegistry{
		logger: logger,
		repo:   repo,
		cache:  make(map[entity.StateName]*entity.State, len(entity.AllStates)),
	}
}

// Warm 모든 상태를 미리 생성합니다
func (r *StateRegistry) Warm(ctx context.Context) error {
	for _, name := range entity.AllStates {
		if _, err := r.Resolve(ctx, name); err != nil {
			return err
		}
	}
	r.logger.Info("상태 레지스트리 준비 완료", zap.Int("states", len(entity.AllStates)))
	return nil
}

// Resolve 이름으로 상태를 찾습니다 (get-or-create)
func (r *StateRegistry) Resolve(ctx context.Context, name entity.StateName) (*entity.State, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrStateNotFound, name)
	}

	r.mu.RLock()
	state, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return state, nil
	}

	state, err := r.repo.FindOrCreate(ctx, name)
	if err != nil {
		r.logger.Error("상태 조회 실패", zap.String("state", string(name)), zap.Error(err))
		return nil, fmt.Errorf("%w: %q: %w", ErrStateNotFound, name, err)
	}
	if state == nil {
		return nil, fmt.Errorf("%w: %q", ErrStateNotFound, name)
	}

	r.mu.Lock()
	r.cache[name] = state
	r.mu.Unlock()
	return state, nil
}
