package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/pkg/logger"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// 관리자 조회 시 최대 세션 수
const identityListLimit = 50

// IdentityUseCase 세션 발급과 연장
type IdentityUseCase struct {
	logger   *zap.Logger
	repo     repository.IdentityRepository
	states   interfaces.StateRegistry
	ttl      time.Duration
	newToken TokenGenerator
	now      func() time.Time
}

// NewIdentityUseCase 세션 유스케이스 생성
func NewIdentityUseCase(
	logger *zap.Logger,
	repo repository.IdentityRepository,
	states interfaces.StateRegistry,
	ttl time.Duration,
	newToken TokenGenerator,
) *IdentityUseCase {
	return &IdentityUseCase{
		logger:   logger,
		repo:     repo,
		states:   states,
		ttl:      ttl,
		newToken: newToken,
		now:      time.Now,
	}
}

func (uc *IdentityUseCase) resolve(ctx context.Context, name entity.StateName) (*entity.State, error) {
	state, err := uc.states.Resolve(ctx, name)
	if err != nil {
		return nil, apperrors.NewInternal("state unavailable", err)
	}
	return state, nil
}

// Issue 새 ActivationPending 세션을 만듭니다. 저장은 호출자가 합니다.
func (uc *IdentityUseCase) Issue(ctx context.Context, userID *uuid.UUID, sourceIP string) (*entity.Identity, error) {
	pending, err := uc.resolve(ctx, entity.StateActivationPending)
	if err != nil {
		return nil, err
	}
	token, err := uc.newToken()
	if err != nil {
		return nil, apperrors.NewInternal("token generation failed", err)
	}
	return entity.NewIdentity(token, userID, sourceIP, pending, uc.now(), uc.ttl), nil
}

// Extend 만료 시각을 연장하고 저장합니다.
// 그 사이 세션이 만료되거나 상태가 바뀌었으면 UNAUTHENTICATED.
func (uc *IdentityUseCase) Extend(ctx context.Context, identity *entity.Identity) error {
	return uc.save(ctx, identity, identity.State, func(*entity.Identity) error { return nil })
}

// Activate Active 로 전환하고 연장합니다
func (uc *IdentityUseCase) Activate(ctx context.Context, identity *entity.Identity) error {
	active, err := uc.resolve(ctx, entity.StateActive)
	if err != nil {
		return err
	}
	return uc.save(ctx, identity, identity.State, func(i *entity.Identity) error {
		if err := i.TransitionTo(active); err != nil {
			return apperrors.NewAppError(apperrors.ErrConflict, "identity cannot be activated", err)
		}
		return nil
	})
}

// save 읽을 때의 상태(from)가 그대로일 때만 변경을 반영합니다
func (uc *IdentityUseCase) save(ctx context.Context, identity *entity.Identity, from entity.StateName, change func(*entity.Identity) error) error {
	next := *identity
	if err := change(&next); err != nil {
		return err
	}
	now := uc.now()
	next.Extend(now, uc.ttl)

	ok, err := uc.repo.UpdateIfState(ctx, &next, []entity.StateName{from}, now)
	if err != nil {
		return apperrors.NewInternal("identity not updated", err)
	}
	if !ok {
		uc.logger.Debug("세션 갱신 건너뜀: 상태 변경됨",
			zap.String("identity_id", identity.ID.String()),
			zap.String("state", string(from)),
		)
		return apperrors.NewUnauthenticated("not authenticated")
	}
	*identity = next
	return nil
}

// ExpireForUser 사용자의 from 상태 세션을 Expired 로 전환합니다
func (uc *IdentityUseCase) ExpireForUser(ctx context.Context, userID uuid.UUID, from ...entity.StateName) (int64, error) {
	expired, err := uc.resolve(ctx, entity.StateExpired)
	if err != nil {
		return 0, err
	}
	n, err := uc.repo.TransitionByUser(ctx, userID, from, expired, nil)
	if err != nil {
		return 0, apperrors.NewInternal("identities not expired", err)
	}
	return n, nil
}

// ExpireLapsed 만료 시각이 지난 Active 세션을 Expired 로 전환합니다
func (uc *IdentityUseCase) ExpireLapsed(ctx context.Context, userID uuid.UUID) (int64, error) {
	expired, err := uc.resolve(ctx, entity.StateExpired)
	if err != nil {
		return 0, err
	}
	now := uc.now()
	n, err := uc.repo.TransitionByUser(ctx, userID, []entity.StateName{entity.StateActive}, expired, &now)
	if err != nil {
		return 0, apperrors.NewInternal("lapsed identities not expired", err)
	}
	return n, nil
}

// ListForUser 관리자 조회용 세션 목록
func (uc *IdentityUseCase) ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.IdentitySummary, error) {
	identities, err := uc.repo.ListByUser(ctx, userID, identityListLimit)
	if err != nil {
		return nil, apperrors.NewInternal("identities not listed", err)
	}

	summaries := make([]dto.IdentitySummary, 0, len(identities))
	for _, identity := range identities {
		summaries = append(summaries, dto.IdentitySummary{
			ID:          identity.ID,
			MaskedToken: logger.MaskSecret(identity.Token),
			State:       string(identity.State),
			SourceIP:    identity.SourceIP,
			ExpiresAt:   identity.ExpiresAt,
			CreatedAt:   identity.CreatedAt,
		})
	}
	return summaries, nil
}
