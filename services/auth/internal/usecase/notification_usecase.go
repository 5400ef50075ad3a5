package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// 백그라운드 발송 제한 시간
const deliveryTimeout = 30 * time.Second

// 알림 결과 코드
const (
	deliveryEmailSent   = "EMAIL_SENT"
	deliveryEmailFailed = "EMAIL_FAILED"
	deliveryBusFailed   = "BUS_FAILED"
)

// NotificationConfig 알림 설정
type NotificationConfig struct {
	Enabled      bool
	EmailSubject string
}

// NotificationUseCase 알림 기록 후 메일과 버스로 비동기 발송합니다
type NotificationUseCase struct {
	logger   *zap.Logger
	repo     repository.NotificationRepository
	txRepo   repository.TransactionRepository
	mail     repository.MailRepository
	bus      repository.NotificationBus
	states   interfaces.StateRegistry
	cfg      NotificationConfig
	inflight sync.WaitGroup
	now      func() time.Time
}

// NewNotificationUseCase 알림 유스케이스 생성
func NewNotificationUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	states interfaces.StateRegistry,
	cfg NotificationConfig,
) *NotificationUseCase {
	return &NotificationUseCase{
		logger: logger,
		repo:   repos.Notification,
		txRepo: repos.Transaction,
		mail:   repos.Mail,
		bus:    repos.Bus,
		states: states,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Dispatch 알림을 기록하고 발송을 시작합니다. 실패는 로그로만 남깁니다.
func (uc *NotificationUseCase) Dispatch(ctx context.Context, req dto.NotificationRequest) {
	channel := entity.NotificationChannel(strings.ToUpper(strings.TrimSpace(req.Channel)))
	switch channel {
	case entity.ChannelEmail, entity.ChannelSMS, entity.ChannelSys:
	default:
		uc.logger.Warn("알 수 없는 알림 채널", zap.String("channel", req.Channel))
		return
	}

	sent, err := uc.states.Resolve(ctx, entity.StateSent)
	if err != nil {
		uc.logger.Error("알림 상태 조회 실패", zap.Error(err))
		return
	}

	notification := &entity.Notification{
		ID:            uuid.New(),
		Channel:       channel,
		Title:         req.MessageCode,
		Message:       req.Message,
		Destination:   req.Destination,
		TransactionID: req.TransactionID,
		StateID:       sent.ID,
		State:         sent.Name,
		CreatedAt:     uc.now(),
	}
	record := *notification
	if req.StoredMessage != "" {
		record.Message = req.StoredMessage
	}
	if err := uc.repo.Create(ctx, &record); err != nil {
		uc.logger.Error("알림 기록 실패", zap.String("code", req.MessageCode), zap.Error(err))
		return
	}

	if !uc.cfg.Enabled {
		uc.logger.Debug("알림 발송 비활성화", zap.String("notification_id", notification.ID.String()))
		return
	}

	// 원문은 메모리에서 발송에만 쓰입니다. 요청 컨텍스트가 끝나도 발송은 계속됩니다
	bg := context.WithoutCancel(ctx)
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		uc.deliver(bg, notification)
	}()
}

// Wait 진행 중인 발송이 모두 끝날 때까지 기다립니다
func (uc *NotificationUseCase) Wait() {
	uc.inflight.Wait()
}

func (uc *NotificationUseCase) deliver(ctx context.Context, n *entity.Notification) {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	results := make([]string, 0, 2)

	if n.Channel == entity.ChannelEmail {
		if err := uc.mail.SendMail(ctx, n.Destination, uc.cfg.EmailSubject, n.Message); err != nil {
			uc.logger.Error("메일 발송 실패",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err),
			)
			results = append(results, deliveryEmailFailed)
		} else {
			results = append(results, deliveryEmailSent)
		}
	}

	confirmation, err := uc.bus.Publish(ctx, n)
	if err != nil {
		uc.logger.Error("알림 버스 발행 실패",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err),
		)
		results = append(results, deliveryBusFailed)
	} else {
		results = append(results, confirmation)
	}

	if n.TransactionID == nil {
		return
	}
	if err := uc.txRepo.AppendNotificationResponse(ctx, *n.TransactionID, strings.Join(results, "|")); err != nil {
		uc.logger.Warn("알림 결과 기록 실패",
			zap.String("transaction_id", n.TransactionID.String()),
			zap.Error(err),
		)
	}
}
