package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// TransactionLogUseCase 프로토콜 호출을 거래 로그로 남깁니다.
// 기록 실패는 경고 로그만 남기고 nil 을 돌려줍니다.
type TransactionLogUseCase struct {
	logger *zap.Logger
	repo   repository.TransactionRepository
	states interfaces.StateRegistry
}

// NewTransactionLogUseCase 거래 로그 유스케이스 생성
func NewTransactionLogUseCase(
	logger *zap.Logger,
	repo repository.TransactionRepository,
	states interfaces.StateRegistry,
) interfaces.TransactionLogUseCase {
	return &TransactionLogUseCase{logger: logger, repo: repo, states: states}
}

// Begin Active 상태의 거래 로그를 만듭니다
func (uc *TransactionLogUseCase) Begin(
	ctx context.Context,
	typeName string,
	request map[string]interface{},
	sourceIP string,
) *entity.Transaction {
	txType, err := uc.repo.FindOrCreateType(ctx, typeName)
	if err != nil {
		uc.logger.Warn("거래 유형 조회 실패", zap.String("type", typeName), zap.Error(err))
		return nil
	}
	active, err := uc.states.Resolve(ctx, entity.StateActive)
	if err != nil {
		uc.logger.Warn("거래 상태 조회 실패", zap.Error(err))
		return nil
	}

	tx := &entity.Transaction{
		ID:        uuid.New(),
		TypeID:    txType.ID,
		Type:      txType.Name,
		Reference: NewReference(),
		SourceIP:  sourceIP,
		Request:   request,
		StateID:   active.ID,
		State:     active.Name,
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		uc.logger.Warn("거래 로그 생성 실패", zap.String("type", typeName), zap.Error(err))
		return nil
	}
	return tx
}

// Complete 거래를 Completed 로 마감합니다
func (uc *TransactionLogUseCase) Complete(ctx context.Context, tx *entity.Transaction, response map[string]interface{}) {
	uc.finish(ctx, tx, entity.StateCompleted, response)
}

// Fail 거래를 Failed 로 마감합니다
func (uc *TransactionLogUseCase) Fail(ctx context.Context, tx *entity.Transaction, response map[string]interface{}) {
	uc.finish(ctx, tx, entity.StateFailed, response)
}

func (uc *TransactionLogUseCase) finish(
	ctx context.Context,
	tx *entity.Transaction,
	name entity.StateName,
	response map[string]interface{},
) {
	if tx == nil {
		return
	}
	state, err := uc.states.Resolve(ctx, name)
	if err != nil {
		uc.logger.Warn("거래 상태 조회 실패", zap.Error(err))
		return
	}
	if err := uc.repo.Finish(ctx, tx.ID, state, response); err != nil {
		uc.logger.Warn("거래 로그 마감 실패",
			zap.String("reference", tx.Reference),
			zap.String("state", string(name)),
			zap.Error(err),
		)
		return
	}
	tx.StateID, tx.State, tx.Response = state.ID, state.Name, response
}
