package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel 로그인 세션 테이블. token 은 유니크 인덱스로 정확히 일치 조회합니다.
type IdentityModel struct {
	Base
	Token        string     `gorm:"size:200;not null;uniqueIndex" json:"-"`
	ExpiresAt    time.Time  `gorm:"not null;index" json:"expires_at"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	SourceIP     string     `gorm:"size:50" json:"source_ip"`
	TOTPSecret   *string    `gorm:"column:totp_secret;size:100" json:"-"`
	TOTPTimeStep *int64     `gorm:"column:totp_time_step" json:"-"`
	StateID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"state_id"`

	User  *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	State StateModel `gorm:"foreignKey:StateID" json:"state"`
}

// TableName 테이블 이름 지정
func (IdentityModel) TableName() string {
	return "identities"
}
