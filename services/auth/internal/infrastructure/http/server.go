package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/pkg/logger"
	handlers "github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/handler/http"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/envelope"
	gate "github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/middleware"
)

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
}

// Config HTTP 서버 설정
type Config struct {
	Port    string
	Timeout int
	Debug   bool
}

// Routes 라우트 등록에 필요한 핸들러와 게이트
type Routes struct {
	Identity *handlers.IdentityHandler
	User     *handlers.UserHandler
	Admin    *handlers.AdminHandler
	Gates    *gate.Gates
}

// NewServer HTTP 서버 생성. registry 에 요청 지표가 등록됩니다.
func NewServer(cfg Config, zapLogger *zap.Logger, registry *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug

	// 기본 미들웨어 설정
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "auth",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/metrics") || c.Path() == "/health"
		},
	}))

	// 로그 미들웨어 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	logger.WithEchoLogger(e, zapLogger)

	// 모든 에러를 응답 봉투로
	e.HTTPErrorHandler = envelope.ErrorHandler(zapLogger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))

	address := fmt.Sprintf(":%s", cfg.Port)
	timeout := time.Duration(cfg.Timeout) * time.Second

	return &Server{
		router: e,
		server: &http.Server{
			Addr:         address,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			IdleTimeout:  timeout,
		},
		logger:  zapLogger,
		address: address,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes API 라우트 등록
func (s *Server) RegisterRoutes(r Routes) {
	v1 := s.router.Group("/api/v1")

	// 공개 라우트
	identities := v1.Group("/identities")
	identities.POST("/login", r.Identity.Login)
	identities.POST("/verify", r.Identity.Verify)
	identities.POST("/logout", r.Identity.Logout)

	// 인증 필요
	authenticated := r.Gates.Authenticated()
	v1.POST("/users/me", r.User.Me, r.Gates.Chain(authenticated))

	// 관리자
	admin := v1.Group("/admin")
	admin.POST("/identities", r.Admin.ListIdentities,
		r.Gates.Chain(authenticated, r.Gates.RequireRole("admin_or_above", entity.AdminOrAbove)))
	admin.POST("/identities/revoke", r.Admin.RevokeIdentities,
		r.Gates.Chain(authenticated, r.Gates.RequireRole("super_admin_only", entity.SuperAdminOnly)))
}

// Start HTTP 서버 시작. 정상 종료 시 nil 을 반환합니다.
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작", zap.String("address", s.address))

	s.server.Handler = s.router
	if err := s.router.StartServer(s.server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP 서버 실행 실패: %w", err)
	}
	return nil
}

// Stop HTTP 서버 종료
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP 서버 종료 중...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
