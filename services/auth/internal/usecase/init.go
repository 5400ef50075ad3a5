package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/config"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// UseCases는 모든 유스케이스를 담고 있는 구조체입니다.
type UseCases struct {
	States       interfaces.StateRegistry
	TOTP         interfaces.TOTPEngine
	Identity     interfaces.IdentityUseCase
	Auth         interfaces.AuthUseCase
	Gate         interfaces.GateUseCase
	User         interfaces.UserUseCase
	Notification interfaces.NotificationUseCase
	Transactions interfaces.TransactionLogUseCase
	Sweeper      *ExpirySweeper
	Bootstrap    *Bootstrapper
}

// SetupUseCases는 모든 유스케이스 구현체를 생성하고 의존성을 주입합니다.
// observeSweep 은 스위퍼 실행 결과를 받는 콜백이며 nil 이어도 됩니다.
func SetupUseCases(
	logger *zap.Logger,
	cfg *config.Config,
	repositories *repository.Repositories,
	observeSweep func(expired int64, err error),
) *UseCases {
	// 1. 다른 유스케이스에 의존하지 않는 것부터
	states := NewStateRegistry(logger, repositories.State)

	totpEngine := NewTOTPEngine(TOTPConfig{
		Period: uint(cfg.OTP.ValidSeconds),
		Digits: cfg.OTP.Digits,
		Skew:   uint(cfg.OTP.Skew),
		MaxAge: time.Duration(cfg.OTP.MaxAgeSeconds) * time.Second,
	})

	txLog := NewTransactionLogUseCase(logger, repositories.Transaction, states)

	notifier := NewNotificationUseCase(logger, repositories, states, NotificationConfig{
		Enabled:      cfg.Notification.Enabled,
		EmailSubject: cfg.Notification.EmailSubject,
	})

	// 2. 세션 유스케이스
	identity := NewIdentityUseCase(
		logger,
		repositories.Identity,
		states,
		cfg.TokenTTL(),
		NanoIDTokens(cfg.Auth.TokenLength),
	)

	// 3. 프로토콜과 게이트 (다른 유스케이스를 의존)
	auth := NewAuthUseCase(logger, repositories, identity, totpEngine, notifier, txLog, cfg.Location())
	gate := NewGateUseCase(logger, repositories, identity, cfg.Auth.BindRoleToToken)

	return &UseCases{
		States:       states,
		TOTP:         totpEngine,
		Identity:     identity,
		Auth:         auth,
		Gate:         gate,
		User:         NewUserUseCase(logger, repositories.User),
		Notification: notifier,
		Transactions: txLog,
		Sweeper:      NewExpirySweeper(logger, repositories.Identity, states, cfg.SweepInterval(), observeSweep),
		Bootstrap:    NewBootstrapper(logger, repositories, states, cfg.Auth.HashCost),
	}
}
