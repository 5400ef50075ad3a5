package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationChannel 알림 전송 채널
type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "SMS"
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSys   NotificationChannel = "SYS"
)

// Notification 발송된 알림 기록
type Notification struct {
	ID            uuid.UUID
	Channel       NotificationChannel
	Title         string // 메시지 코드 (예: SC0009)
	Message       string
	Destination   string
	TransactionID *uuid.UUID
	StateID       uuid.UUID
	State         StateName
	CreatedAt     time.Time
}
