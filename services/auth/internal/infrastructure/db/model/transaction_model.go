package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TransactionTypeModel 거래 유형 테이블
type TransactionTypeModel struct {
	Base
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// TableName 테이블 이름 지정
func (TransactionTypeModel) TableName() string {
	return "transaction_types"
}

// TransactionModel 거래 로그 테이블. request/response 는 JSON 컬럼입니다.
type TransactionModel struct {
	Base
	TransactionTypeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_type_id"`
	Reference            string         `gorm:"size:100;index" json:"reference"`
	SourceIP             string         `gorm:"size:50" json:"source_ip"`
	Request              datatypes.JSON `json:"request"`
	Response             datatypes.JSON `json:"response"`
	NotificationResponse *string        `gorm:"type:text" json:"notification_response"`
	StateID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"state_id"`

	TransactionType TransactionTypeModel `gorm:"foreignKey:TransactionTypeID" json:"transaction_type"`
	State           StateModel           `gorm:"foreignKey:StateID" json:"state"`
}

// TableName 테이블 이름 지정
func (TransactionModel) TableName() string {
	return "transactions"
}

// NotificationModel 알림 기록 테이블
type NotificationModel struct {
	Base
	Channel       string     `gorm:"size:20;not null" json:"channel"`
	Title         string     `gorm:"size:100" json:"title"`
	Message       string     `gorm:"type:text" json:"message"`
	Destination   string     `gorm:"size:250" json:"destination"`
	TransactionID *uuid.UUID `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	StateID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"state_id"`

	State StateModel `gorm:"foreignKey:StateID" json:"state"`
}

// TableName 테이블 이름 지정
func (NotificationModel) TableName() string {
	return "notifications"
}

// All AutoMigrate 대상 모델 (의존 순서)
func All() []interface{} {
	return []interface{}{
		&StateModel{},
		&RoleModel{},
		&UserModel{},
		&IdentityModel{},
		&TransactionTypeModel{},
		&TransactionModel{},
		&NotificationModel{},
	}
}
