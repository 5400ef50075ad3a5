package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// TransactionRepository 거래 로그 저장소
type TransactionRepository interface {
	// FindOrCreateType 이름으로 거래 유형 조회, 없으면 생성
	FindOrCreateType(ctx context.Context, name string) (*entity.TransactionType, error)

	// Create 거래 로그 생성
	Create(ctx context.Context, tx *entity.Transaction) error

	// Finish 상태와 응답을 기록
	Finish(ctx context.Context, id uuid.UUID, state *entity.State, response map[string]interface{}) error

	// AppendNotificationResponse 알림 결과를 '|' 로 이어 붙입니다
	AppendNotificationResponse(ctx context.Context, id uuid.UUID, response string) error
}

// NotificationRepository 알림 기록 저장소
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
}

// NotificationBus 알림 버스 발행 인터페이스
type NotificationBus interface {
	// Publish 알림을 버스에 발행하고 확인 코드를 반환합니다
	Publish(ctx context.Context, notification *entity.Notification) (string, error)
}
