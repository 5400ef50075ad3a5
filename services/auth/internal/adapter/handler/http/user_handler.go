package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/envelope"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// ProfileResponse 토큰 소유자 정보
type ProfileResponse struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	LastActivityAt *int64 `json:"last_activity_at,omitempty"`
	ExpiresAt      int64  `json:"expires_at"`
}

// UserHandler 인증된 사용자 엔드포인트
type UserHandler struct {
	logger *zap.Logger
	users  interfaces.UserUseCase
}

// NewUserHandler 핸들러 생성
func NewUserHandler(logger *zap.Logger, users interfaces.UserUseCase) *UserHandler {
	return &UserHandler{logger: logger, users: users}
}

// Me handles POST /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil || identity.UserID == nil {
		return envelope.Fail(c, h.logger, apperrors.NewUnauthenticated("not authenticated"))
	}

	profile, err := h.users.Profile(c.Request().Context(), *identity.UserID)
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}

	return envelope.OK(c, "profile", ProfileResponse{
		UserID:         profile.UserID.String(),
		Username:       profile.Username,
		Email:          profile.Email,
		FullName:       profile.FullName,
		Role:           profile.Role,
		LastActivityAt: unixPtr(profile.LastActivityAt),
		ExpiresAt:      identity.ExpiresAt.Unix(),
	})
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}
