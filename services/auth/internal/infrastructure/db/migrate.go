package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// Migrate 스키마를 최신 모델에 맞춥니다
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("스키마 마이그레이션 실패: %w", err)
	}
	logger.Info("스키마 마이그레이션 완료", zap.Int("tables", len(model.All())))
	return nil
}
