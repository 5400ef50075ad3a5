package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/mapper"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// NewTransactionRepository 거래 로그 저장소 구현체 생성
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// FindOrCreateType 이름으로 거래 유형 조회, 없으면 생성
func (r *TransactionRepositoryImpl) FindOrCreateType(ctx context.Context, name string) (*entity.TransactionType, error) {
	var found model.TransactionTypeModel
	if err := findOrCreateByName(conn(ctx, r.db), name, &model.TransactionTypeModel{Name: name}, &found); err != nil {
		return nil, err
	}
	return &entity.TransactionType{ID: found.ID, Name: found.Name}, nil
}

// Create 거래 로그 생성
func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *entity.Transaction) error {
	m, err := mapper.TransactionToModel(tx)
	if err != nil {
		return err
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// Finish 최종 상태와 응답 기록
func (r *TransactionRepositoryImpl) Finish(ctx context.Context, id uuid.UUID, state *entity.State, response map[string]interface{}) error {
	raw, err := mapper.ToJSON(response)
	if err != nil {
		return err
	}
	return conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"state_id": state.ID, "response": raw}).Error
}

// AppendNotificationResponse 알림 결과를 원자적으로 이어 붙입니다
func (r *TransactionRepositoryImpl) AppendNotificationResponse(ctx context.Context, id uuid.UUID, response string) error {
	return conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Update("notification_response", gorm.Expr(
			"CASE WHEN notification_response IS NULL OR notification_response = '' THEN ? ELSE notification_response || '|' || ? END",
			response, response,
		)).Error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository 알림 저장소 구현체 생성
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Create 알림 기록 생성
func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *entity.Notification) error {
	m := mapper.NotificationToModel(n)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	n.ID = m.ID
	n.CreatedAt = m.CreatedAt
	return nil
}
