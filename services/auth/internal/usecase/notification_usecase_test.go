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
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
)

type notificationMocks struct {
	repo    *MockNotificationRepository
	tx      *MockTransactionRepository
	mail    *MockMailRepository
	bus     *MockNotificationBus
	usecase *NotificationUseCase
}

func newNotificationMocks(enabled bool) *notificationMocks {
	m := &notificationMocks{
		repo: new(MockNotificationRepository),
		tx:   new(MockTransactionRepository),
		mail: new(MockMailRepository),
		bus:  new(MockNotificationBus),
	}
	repos := &repository.Repositories{Notification: m.repo, Transaction: m.tx, Mail: m.mail, Bus: m.bus}
	m.usecase = NewNotificationUseCase(zap.NewNop(), repos, newFakeStates(), NotificationConfig{
		Enabled:      enabled,
		EmailSubject: "Your one-time password",
	})
	return m
}

func (m *notificationMocks) assert(t *testing.T) {
	m.repo.AssertExpectations(t)
	m.tx.AssertExpectations(t)
	m.mail.AssertExpectations(t)
	m.bus.AssertExpectations(t)
}

func otpRequest(txID *uuid.UUID) dto.NotificationRequest {
	return dto.NotificationRequest{
		MessageCode:   dto.MessageCodeOTP,
		Channel:       "email",
		Message:       "Welcome. Your OTP is 123456",
		StoredMessage: "Welcome. Your OTP is ******",
		Destination:   "alice@school.test",
		TransactionID: txID,
	}
}

func TestNotification_DispatchEmail(t *testing.T) {
	m := newNotificationMocks(true)
	txID := uuid.New()

	m.repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.Channel == entity.ChannelEmail && n.Title == dto.MessageCodeOTP && n.State == entity.StateSent
	})).Return(nil)
	m.mail.On("SendMail", mock.Anything, "alice@school.test", "Your one-time password", "Welcome. Your OTP is 123456").Return(nil)
	m.bus.On("Publish", mock.Anything, mock.Anything).Return("conf-1", nil)
	m.tx.On("AppendNotificationResponse", mock.Anything, txID, "EMAIL_SENT|conf-1").Return(nil)

	m.usecase.Dispatch(context.Background(), otpRequest(&txID))
	m.usecase.Wait()

	m.assert(t)
}

func TestNotification_DeliveryFailuresAreRecorded(t *testing.T) {
	m := newNotificationMocks(true)
	txID := uuid.New()

	m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.mail.On("SendMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	m.bus.On("Publish", mock.Anything, mock.Anything).Return("", errors.New("redis down"))
	m.tx.On("AppendNotificationResponse", mock.Anything, txID, "EMAIL_FAILED|BUS_FAILED").Return(nil)

	m.usecase.Dispatch(context.Background(), otpRequest(&txID))
	m.usecase.Wait()

	m.assert(t)
}

func TestNotification_SysChannelSkipsMail(t *testing.T) {
	m := newNotificationMocks(true)

	m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.bus.On("Publish", mock.Anything, mock.Anything).Return("conf-2", nil)

	req := otpRequest(nil)
	req.Channel = "SYS"
	m.usecase.Dispatch(context.Background(), req)
	m.usecase.Wait()

	m.assert(t)
	m.mail.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotification_DisabledOnlyRecords(t *testing.T) {
	m := newNotificationMocks(false)
	m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	m.usecase.Dispatch(context.Background(), otpRequest(nil))
	m.usecase.Wait()

	m.assert(t)
	m.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNotification_UnknownChannelIgnored(t *testing.T) {
	m := newNotificationMocks(true)

	req := otpRequest(nil)
	req.Channel = "PIGEON"
	m.usecase.Dispatch(context.Background(), req)
	m.usecase.Wait()

	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotification_RecordFailureStopsDelivery(t *testing.T) {
	m := newNotificationMocks(true)
	m.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	m.usecase.Dispatch(context.Background(), otpRequest(nil))
	m.usecase.Wait()

	m.mail.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNotification_StoredRowHasNoCode(t *testing.T) {
	m := newNotificationMocks(true)

	var stored *entity.Notification
	m.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entity.Notification)
	}).Return(nil)
	m.mail.On("SendMail", mock.Anything, "alice@school.test", "Your one-time password", "Welcome. Your OTP is 123456").Return(nil)
	m.bus.On("Publish", mock.Anything, mock.Anything).Return("conf-1", nil)

	m.usecase.Dispatch(context.Background(), otpRequest(nil))
	m.usecase.Wait()

	require.NotNil(t, stored)
	assert.Equal(t, "Welcome. Your OTP is ******", stored.Message)
	assert.NotRegexp(t, `[0-9]`, stored.Message)
	m.assert(t)
}
