package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
)

type txKey struct{}

// GormTransactor gorm 트랜잭션을 컨텍스트에 실어 저장소들이 공유하게 합니다.
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor 트랜잭터 생성
func NewTransactor(db *gorm.DB) repository.Transactor {
	return &GormTransactor{db: db}
}

// WithinTransaction fn 이 에러를 반환하면 롤백합니다. 이미 트랜잭션 안이면 그대로 참여합니다.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 컨텍스트에 트랜잭션이 있으면 그것을, 없으면 기본 연결을 사용합니다.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
