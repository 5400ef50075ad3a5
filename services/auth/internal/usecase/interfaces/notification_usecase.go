package interfaces

import (
	"context"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
)

// NotificationUseCase 알림 발송. 호출자를 실패시키지 않습니다.
type NotificationUseCase interface {
	Dispatch(ctx context.Context, req dto.NotificationRequest)

	// Wait 진행 중인 백그라운드 발송이 끝날 때까지 기다립니다
	Wait()
}

// TransactionLogUseCase 프로토콜 호출 감사 기록. 실패해도 호출자를 막지 않습니다.
type TransactionLogUseCase interface {
	Begin(ctx context.Context, typeName string, request map[string]interface{}, sourceIP string) *entity.Transaction
	Complete(ctx context.Context, tx *entity.Transaction, response map[string]interface{})
	Fail(ctx context.Context, tx *entity.Transaction, response map[string]interface{})
}
