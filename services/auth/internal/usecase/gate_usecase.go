package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/pkg/logger"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// GateUseCase 인증, 역할 게이트
type GateUseCase struct {
	logger     *zap.Logger
	identities repository.IdentityRepository
	users      repository.UserRepository
	extender   interfaces.IdentityUseCase
	// bindRole 이 true 면 user_id 는 토큰 소유자와 같아야 합니다
	bindRole bool
	now      func() time.Time
}

// NewGateUseCase 게이트 유스케이스 생성
func NewGateUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	extender interfaces.IdentityUseCase,
	bindRoleToToken bool,
) interfaces.GateUseCase {
	return &GateUseCase{
		logger:     logger,
		identities: repos.Identity,
		users:      repos.User,
		extender:   extender,
		bindRole:   bindRoleToToken,
		now:        time.Now,
	}
}

// Authenticate 토큰을 Active 세션으로 해석하고 만료 시각을 연장합니다
func (uc *GateUseCase) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NewAppError(apperrors.ErrMissingToken, "access token not provided", nil)
	}

	identity, err := uc.identities.FindByToken(ctx, token, []entity.StateName{entity.StateActive}, uc.now())
	if err != nil {
		return nil, apperrors.NewInternal("identity lookup failed", err)
	}
	if identity == nil {
		uc.logger.Debug("인증 실패", zap.String("token", logger.MaskSecret(token)))
		return nil, apperrors.NewUnauthenticated("not authenticated")
	}

	if err := uc.extender.Extend(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// AuthorizeRole 요청 대상 사용자가 활성 상태이고 허용 역할인지 확인합니다.
// userID 가 비어 있으면 토큰 소유자를 대상으로 합니다.
func (uc *GateUseCase) AuthorizeRole(
	ctx context.Context,
	identity *entity.Identity,
	userID string,
	allowed entity.RoleSet,
) (*entity.User, error) {
	target, err := uc.targetUser(identity, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}

	user, err := uc.users.FindByID(ctx, target)
	if err != nil {
		return nil, apperrors.NewInternal("user lookup failed", err)
	}
	if user == nil || !user.IsActive() {
		return nil, forbidden("user not active")
	}
	if !allowed.Contains(user.Role) {
		uc.logger.Info("역할 거부",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)),
		)
		return nil, forbidden("role not permitted")
	}
	return user, nil
}

func (uc *GateUseCase) targetUser(identity *entity.Identity, raw string) (uuid.UUID, error) {
	var target uuid.UUID
	switch {
	case raw != "":
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, forbidden("invalid user_id")
		}
		target = parsed
	case uc.bindRole && identity != nil && identity.UserID != nil:
		target = *identity.UserID
	default:
		return uuid.Nil, forbidden("user_id not provided")
	}

	if uc.bindRole && (identity == nil || !identity.BelongsTo(target)) {
		return uuid.Nil, forbidden("user_id does not match token owner")
	}
	return target, nil
}

func forbidden(message string) error {
	return apperrors.NewUnauthorized(message)
}
