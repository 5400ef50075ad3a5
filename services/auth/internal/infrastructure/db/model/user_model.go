package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel 데이터베이스 ORM 모델
type UserModel struct {
	Base
	Username       string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:250;not null" json:"email"`
	FirstName      string     `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName       string     `gorm:"size:150;not null;default:''" json:"last_name"`
	Password       string     `gorm:"size:250;not null" json:"-"`
	Salt           string     `gorm:"size:250;not null" json:"-"`
	RoleID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"role_id"`
	StateID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"state_id"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`

	Role  RoleModel  `gorm:"foreignKey:RoleID" json:"role"`
	State StateModel `gorm:"foreignKey:StateID" json:"state"`
}

// TableName 테이블 이름 지정
func (UserModel) TableName() string {
	return "users"
}
