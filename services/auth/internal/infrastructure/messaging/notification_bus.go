// Package messaging은 알림을 Redis 알림 버스 채널로 발행합니다.
package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wekeepgrowing/school-backend/pkg/messaging"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// NotificationEvent 버스로 나가는 알림 페이로드
type NotificationEvent struct {
	ConfirmationCode string     `json:"confirmation_code"`
	NotificationID   uuid.UUID  `json:"notification_id"`
	TransactionID    *uuid.UUID `json:"transaction_id,omitempty"`
	Channel          string     `json:"message_type"`
	MessageCode      string     `json:"message_code"`
	Destination      string     `json:"destination"`
	Message          string     `json:"message"`
	Lang             string     `json:"lang"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NotificationBus 알림 버스 발행기
type NotificationBus struct {
	publisher messaging.Publisher
	channel   string
}

// NewNotificationBus 발행기 생성
func NewNotificationBus(publisher messaging.Publisher, channel string) *NotificationBus {
	return &NotificationBus{publisher: publisher, channel: channel}
}

// Publish 알림을 발행하고 확인 코드를 반환합니다
func (b *NotificationBus) Publish(ctx context.Context, n *entity.Notification) (string, error) {
	event := NotificationEvent{
		ConfirmationCode: uuid.NewString(),
		NotificationID:   n.ID,
		TransactionID:    n.TransactionID,
		Channel:          string(n.Channel),
		MessageCode:      n.Title,
		Destination:      n.Destination,
		Message:          n.Message,
		Lang:             "en",
		CreatedAt:        n.CreatedAt,
	}
	if err := b.publisher.Publish(ctx, b.channel, event); err != nil {
		return "", err
	}
	return event.ConfirmationCode, nil
}
