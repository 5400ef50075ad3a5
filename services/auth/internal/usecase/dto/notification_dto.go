package dto

import (
	"github.com/google/uuid"
)

// 알림 메시지 코드
const (
	MessageCodeOTP = "SC0009"
)

// NotificationRequest 알림 발송 요청
type NotificationRequest struct {
	MessageCode   string
	Channel       string // SMS, EMAIL, SYS
	Message       string
	// StoredMessage 알림 기록에 남길 본문. 비어 있으면 Message 를 그대로 남깁니다.
	// 일회용 코드처럼 저장하면 안 되는 값은 가린 본문을 넣습니다.
	StoredMessage string
	Destination   string
	TransactionID *uuid.UUID
}
