package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 모든 테이블 공통 컬럼 (UUID 기본키, 생성/수정 시각)
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate ID 가 비어 있으면 새 UUID 를 채웁니다
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
