package entity

import (
	"time"

	"github.com/google/uuid"
)

// 거래 로그 유형 이름
const (
	TransactionTypeLogin     = "Login"
	TransactionTypeVerifyOTP = "VerifyOTP"
	TransactionTypeLogout    = "Logout"
	TransactionTypeRevoke    = "RevokeIdentities"
)

// TransactionType 거래 유형 (이름으로 get-or-create)
type TransactionType struct {
	ID   uuid.UUID
	Name string
}

// Transaction 프로토콜 호출 하나에 대한 감사 기록
type Transaction struct {
	ID                   uuid.UUID
	TypeID               uuid.UUID
	Type                 string
	Reference            string
	SourceIP             string
	Request              map[string]interface{}
	Response             map[string]interface{}
	NotificationResponse *string
	StateID              uuid.UUID
	State                StateName
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
