package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// UserUseCase 사용자 조회
type UserUseCase struct {
	logger *zap.Logger
	repo   repository.UserRepository
}

// NewUserUseCase 사용자 유스케이스 생성
func NewUserUseCase(logger *zap.Logger, repo repository.UserRepository) interfaces.UserUseCase {
	return &UserUseCase{logger: logger, repo: repo}
}

// Profile 사용자 정보 조회
func (uc *UserUseCase) Profile(ctx context.Context, userID uuid.UUID) (*dto.Profile, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal("user lookup failed", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user not found")
	}

	return &dto.Profile{
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName(),
		Role:           string(user.Role),
		LastActivityAt: user.LastActivityAt,
	}, nil
}
