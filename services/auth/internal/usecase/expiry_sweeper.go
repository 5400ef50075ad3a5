package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// ExpirySweeper 만료 시각이 지난 세션을 주기적으로 Expired 로 바꿉니다
type ExpirySweeper struct {
	logger   *zap.Logger
	repo     repository.IdentityRepository
	states   interfaces.StateRegistry
	interval time.Duration
	observe  func(expired int64, err error)
	now      func() time.Time
}

// NewExpirySweeper 스위퍼 생성. observe 는 nil 이어도 됩니다.
func NewExpirySweeper(
	logger *zap.Logger,
	repo repository.IdentityRepository,
	states interfaces.StateRegistry,
	interval time.Duration,
	observe func(expired int64, err error),
) *ExpirySweeper {
	if observe == nil {
		observe = func(int64, error) {}
	}
	return &ExpirySweeper{
		logger:   logger,
		repo:     repo,
		states:   states,
		interval: interval,
		observe:  observe,
		now:      time.Now,
	}
}

// Run ctx 가 끝날 때까지 interval 마다 SweepOnce 를 실행합니다
func (s *ExpirySweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("세션 스위퍼 비활성화")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("세션 스위퍼 시작", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("세션 스위퍼 종료")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("세션 정리 실패", zap.Error(err))
			}
		}
	}
}

// SweepOnce 만료된 Active, ActivationPending 세션을 한 번 정리합니다
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int64, error) {
	expired, err := s.states.Resolve(ctx, entity.StateExpired)
	if err != nil {
		s.observe(0, err)
		return 0, err
	}

	n, err := s.repo.ExpireStale(ctx,
		[]entity.StateName{entity.StateActive, entity.StateActivationPending}, expired, s.now())
	s.observe(n, err)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("만료 세션 정리", zap.Int64("expired", n))
	}
	return n, nil
}
