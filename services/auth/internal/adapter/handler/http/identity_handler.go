package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/envelope"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// LoginRequest 로그인 요청
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse 로그인 응답 데이터
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// VerifyRequest OTP 검증 요청
type VerifyRequest struct {
	Token string `json:"token" form:"token"`
	OTP   string `json:"otp" form:"otp"`
}

// VerifyResponse OTP 검증 응답 데이터
type VerifyResponse struct {
	Activated bool  `json:"activated"`
	ExpiresAt int64 `json:"expires_at"`
}

// LogoutRequest 로그아웃 요청
type LogoutRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

// IdentityHandler 로그인, 검증, 로그아웃 엔드포인트
type IdentityHandler struct {
	logger  *zap.Logger
	auth    interfaces.AuthUseCase
	metrics *metrics.Metrics
}

// NewIdentityHandler 핸들러 생성
func NewIdentityHandler(logger *zap.Logger, auth interfaces.AuthUseCase, m *metrics.Metrics) *IdentityHandler {
	return &IdentityHandler{logger: logger, auth: auth, metrics: m}
}

// Login handles POST /api/v1/identities/login
func (h *IdentityHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return envelope.Fail(c, h.logger, apperrors.NewInvalidArgument("malformed request"))
	}

	result, err := h.auth.Login(c.Request().Context(), dto.LoginParams{
		Username: req.Username,
		Password: req.Password,
		SourceIP: c.RealIP(),
	})
	reused := "false"
	if result != nil && result.Reused {
		reused = "true"
	}
	h.metrics.Logins.WithLabelValues(metrics.Result(err), reused).Inc()
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}

	return envelope.OK(c, "login successful", LoginResponse{
		Token:     result.Token,
		UserID:    result.UserID.String(),
		ExpiresAt: result.ExpiresAt.Unix(),
	})
}

// Verify handles POST /api/v1/identities/verify
func (h *IdentityHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return envelope.Fail(c, h.logger, apperrors.NewInvalidArgument("malformed request"))
	}

	result, err := h.auth.VerifyOTP(c.Request().Context(), dto.VerifyParams{
		Token:    req.Token,
		OTP:      req.OTP,
		SourceIP: c.RealIP(),
	})
	h.metrics.OTPVerifications.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}

	return envelope.OK(c, "otp verified", VerifyResponse{
		Activated: result.Activated,
		ExpiresAt: result.ExpiresAt.Unix(),
	})
}

// Logout handles POST /api/v1/identities/logout
func (h *IdentityHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return envelope.Fail(c, h.logger, apperrors.NewInvalidArgument("malformed request"))
	}

	err := h.auth.Logout(c.Request().Context(), dto.LogoutParams{UserID: req.UserID, SourceIP: c.RealIP()})
	h.metrics.Logouts.WithLabelValues("logout", metrics.Result(err)).Inc()
	if err != nil {
		return envelope.Fail(c, h.logger, err)
	}
	return envelope.OK(c, "logged out", nil)
}
