package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/envelope"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// IdentityItem 관리자 조회 응답의 세션 한 건
type IdentityItem struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	State     string `json:"state"`
	SourceIP  string `json:"source_ip"`
	ExpiresAt int64  `json:"expires_at"`
	CreatedAt int64  `json:"created_at"`
}

// RevokeResponse 강제 만료 결과
type RevokeResponse struct {
	Expired int64 `json:"expired"`
}

// AdminHandler 관리자용 세션 관리 엔드포인트
type AdminHandler struct {
	logger     *zap.Logger
	identities interfaces.IdentityUseCase
	auth       interfaces.AuthUseCase
	metrics    *metrics.Metrics
}

// NewAdminHandler 핸들러 생성
func NewAdminHandler(
	logger *zap.Logger,
	identities interfaces.IdentityUseCase,
	auth interfaces.AuthUseCase,
	m *metrics.Metrics,
) *AdminHandler {
	return &AdminHandler{logger: logger, identities: identities, auth: auth, metrics: m}
}

// ListIdentities handles POST /api/v1/admin/identities
func (h *AdminHandler) ListIdentities(c echo.Context) error {
	target, err := uuid.Parse(middleware.PayloadValue(c, "target_user_id"))
	if err != nil {
		return envelope.Fail(c, h.logger, apperrors.NewInvalidArgument("invalid target_user_id"))
	}

	summaries, err := h.identities.ListForUser(c.Request().Context(), target)
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}

	items := make([]IdentityItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, IdentityItem{
			ID:        s.ID.String(),
			Token:     s.MaskedToken,
			State:     s.State,
			SourceIP:  s.SourceIP,
			ExpiresAt: s.ExpiresAt.Unix(),
			CreatedAt: s.CreatedAt.Unix(),
		})
	}
	return envelope.OK(c, "identities", items)
}

// RevokeIdentities handles POST /api/v1/admin/identities/revoke
func (h *AdminHandler) RevokeIdentities(c echo.Context) error {
	expired, err := h.auth.Revoke(c.Request().Context(), dto.LogoutParams{
		UserID:   middleware.PayloadValue(c, "target_user_id"),
		SourceIP: c.RealIP(),
	})
	h.metrics.Logouts.WithLabelValues("revoke", metrics.Result(err)).Inc()
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}

	if actor := middleware.UserFrom(c); actor != nil {
		h.logger.Info("세션 강제 만료",
			zap.String("actor", actor.ID.String()),
			zap.Int64("expired", expired),
		)
	}
	return envelope.OK(c, "identities revoked", RevokeResponse{Expired: expired})
}
