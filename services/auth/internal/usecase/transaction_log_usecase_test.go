package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

func TestTransactionLog_BeginAndComplete(t *testing.T) {
	repo := new(MockTransactionRepository)
	txType := &entity.TransactionType{ID: uuid.New(), Name: entity.TransactionTypeLogin}
	repo.On("FindOrCreateType", mock.Anything, entity.TransactionTypeLogin).Return(txType, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.TypeID == txType.ID && tx.State == entity.StateActive && len(tx.Reference) == 12
	})).Return(nil)
	repo.On("Finish", mock.Anything, mock.Anything, mock.MatchedBy(func(s *entity.State) bool {
		return s.Name == entity.StateCompleted
	}), map[string]interface{}{"ok": true}).Return(nil)

	uc := NewTransactionLogUseCase(zap.NewNop(), repo, newFakeStates())
	tx := uc.Begin(context.Background(), entity.TransactionTypeLogin, map[string]interface{}{"username": "alice"}, "10.0.0.1")
	require.NotNil(t, tx)
	assert.Equal(t, "10.0.0.1", tx.SourceIP)

	uc.Complete(context.Background(), tx, map[string]interface{}{"ok": true})

	assert.Equal(t, entity.StateCompleted, tx.State)
	repo.AssertExpectations(t)
}

func TestTransactionLog_FailMarksFailed(t *testing.T) {
	repo := new(MockTransactionRepository)
	repo.On("FindOrCreateType", mock.Anything, mock.Anything).Return(&entity.TransactionType{ID: uuid.New()}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Finish", mock.Anything, mock.Anything, mock.MatchedBy(func(s *entity.State) bool {
		return s.Name == entity.StateFailed
	}), mock.Anything).Return(nil)

	uc := NewTransactionLogUseCase(zap.NewNop(), repo, newFakeStates())
	tx := uc.Begin(context.Background(), entity.TransactionTypeVerifyOTP, nil, "")
	uc.Fail(context.Background(), tx, map[string]interface{}{"error": "INVALID_OTP"})

	assert.Equal(t, entity.StateFailed, tx.State)
	repo.AssertExpectations(t)
}

func TestTransactionLog_StorageFailureNeverBlocks(t *testing.T) {
	repo := new(MockTransactionRepository)
	repo.On("FindOrCreateType", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	uc := NewTransactionLogUseCase(zap.NewNop(), repo, newFakeStates())
	tx := uc.Begin(context.Background(), entity.TransactionTypeLogout, nil, "")

	assert.Nil(t, tx)
	assert.NotPanics(t, func() { uc.Complete(context.Background(), tx, nil) })
	repo.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
