package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// IdentityRepository 세션(Identity) 저장소.
// 조회 결과가 없으면 (nil, nil) 을 반환합니다.
type IdentityRepository interface {
	// Create 새 세션 저장
	Create(ctx context.Context, identity *entity.Identity) error

	// UpdateIfState 저장된 세션이 아직 from 상태이고 now 기준 만료 전일 때만
	// 상태와 만료 시각을 저장합니다. 조건이 맞지 않으면 false.
	UpdateIfState(ctx context.Context, identity *entity.Identity, from []entity.StateName, now time.Time) (bool, error)

	// FindByToken states 중 하나이고 now 이후에 만료되는 세션을 토큰으로 조회
	FindByToken(ctx context.Context, token string, states []entity.StateName, now time.Time) (*entity.Identity, error)

	// FindActiveByUser 사용자의 만료되지 않은 Active 세션 중 가장 최근 것
	FindActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.Identity, error)

	// FindReusableOTP [from, to) 사이에 생성되어 Expired 된, OTP 가 있는 가장 최근 세션
	FindReusableOTP(ctx context.Context, userID uuid.UUID, from, to time.Time) (*entity.Identity, error)

	// TransitionByUser 사용자의 from 상태 세션을 to 로 일괄 변경.
	// expiredBefore 가 있으면 그 시각 이전에 만료된 세션만 대상입니다.
	TransitionByUser(ctx context.Context, userID uuid.UUID, from []entity.StateName, to *entity.State, expiredBefore *time.Time) (int64, error)

	// ExpireStale 모든 사용자의 from 상태 세션 중 now 이전에 만료된 것을 to 로 변경
	ExpireStale(ctx context.Context, from []entity.StateName, to *entity.State, now time.Time) (int64, error)

	// ListByUser 사용자의 세션 목록 (최근 순)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Identity, error)
}
