package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/config"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db"
	appinit "github.com/wekeepgrowing/school-backend/services/auth/internal/init"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer func() { _ = logger.Sync() }()

	logger.Info("인증 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	// 3. 인프라스트럭처 초기화
	infrastructure, err := db.NewInfrastructure(cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer func() {
		if err := infrastructure.Close(); err != nil {
			logger.Error("인프라스트럭처 종료 오류", zap.Error(err))
		}
	}()

	// 4. 애플리케이션 조립
	app := appinit.NewApp(cfg, infrastructure)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. 상태, 역할, 초기 관리자 준비
	if err := app.Bootstrap(ctx); err != nil {
		logger.Error("부트스트랩 실패", zap.Error(err))
		return
	}

	// 6. 서버 실행 (시그널까지)
	if err := app.Run(ctx); err != nil {
		logger.Error("서버 실행 오류", zap.Error(err))
		return
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}
