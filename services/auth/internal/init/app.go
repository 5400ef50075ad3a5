// Package appinit 설정에서 서버까지 의존성을 조립합니다.
package appinit

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/repository"
	handlers "github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/handler/http"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/config"
	domainrepo "github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/grpc"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http"
	gate "github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase"
)

const (
	// 종료 시 서버와 진행 중인 알림 발송을 기다리는 최대 시간
	shutdownTimeout = 15 * time.Second
	// gRPC 헬스 상태 갱신 주기
	probeInterval = 10 * time.Second
)

// App 애플리케이션 컨테이너
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Repositories *domainrepo.Repositories
	Metrics      *metrics.Metrics
	UseCases     *usecase.UseCases
	HTTP         *http.Server
	GRPC         *grpc.Server

	ping func(ctx context.Context) error
}

// NewApp 인프라스트럭처 위에 레포지토리, 유스케이스, 서버를 조립합니다
func NewApp(cfg *config.Config, infra *db.Infrastructure) *App {
	return NewAppWithRepositories(cfg, repository.InitRepositories(infra), infra.Ping)
}

// NewAppWithRepositories 레포지토리를 직접 받아 조립합니다. ping 은 헬스 확인에 쓰입니다.
func NewAppWithRepositories(
	cfg *config.Config,
	repos *domainrepo.Repositories,
	ping func(ctx context.Context) error,
) *App {
	logger := cfg.Logger
	m := metrics.NewMetrics(nil)

	// 1. 유스케이스
	useCases := usecase.SetupUseCases(logger, cfg, repos, m.ObserveSweep)

	// 2. HTTP 핸들러와 게이트
	gates := gate.NewGates(logger, useCases.Gate, func(name string, err error) {
		m.GateDecisions.WithLabelValues(name, metrics.Result(err)).Inc()
	})

	httpServer := http.NewServer(http.Config{
		Port:    cfg.Server.HTTP.Port,
		Timeout: cfg.Server.HTTP.Timeout,
		Debug:   cfg.Server.HTTP.Debug,
	}, logger, m.Registry)
	httpServer.RegisterRoutes(http.Routes{
		Identity: handlers.NewIdentityHandler(logger, useCases.Auth, m),
		User:     handlers.NewUserHandler(logger, useCases.User),
		Admin:    handlers.NewAdminHandler(logger, useCases.Identity, useCases.Auth, m),
		Gates:    gates,
	})

	// 3. gRPC 서버 (헬스 체크)
	grpcServer := grpc.NewServer(grpc.Config{
		Port:       cfg.Server.GRPC.Port,
		Timeout:    cfg.Server.GRPC.Timeout,
		Reflection: cfg.Server.GRPC.Reflection,
	}, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Repositories: repos,
		Metrics:      m,
		UseCases:     useCases,
		HTTP:         httpServer,
		GRPC:         grpcServer,
		ping:         ping,
	}
}

// Bootstrap 상태와 역할을 준비하고 설정된 초기 관리자를 만듭니다
func (a *App) Bootstrap(ctx context.Context) error {
	admin := a.Config.Auth.BootstrapAdmin
	return a.UseCases.Bootstrap.Seed(ctx, usecase.BootstrapAdmin{
		Username: admin.Username,
		Password: admin.Password,
		Email:    admin.Email,
	})
}

// Run 서버와 백그라운드 작업을 실행하고 ctx 가 끝나면 정리합니다
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(a.HTTP.Start)
	g.Go(a.GRPC.Start)
	g.Go(func() error {
		a.UseCases.Sweeper.Run(ctx)
		return nil
	})
	if a.ping != nil {
		g.Go(func() error {
			a.GRPC.Probe(ctx, probeInterval, a.ping)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) shutdown() error {
	a.Logger.Info("서버를 종료합니다...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.HTTP.Stop(ctx)
	a.GRPC.Stop()

	done := make(chan struct{})
	go func() {
		a.UseCases.Notification.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.Logger.Warn("알림 발송 대기 시간 초과")
	}
	return err
}
