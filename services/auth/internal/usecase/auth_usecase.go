package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/pkg/logger"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// 감사 기록에 남기는 비밀 값 자리 표시
const redacted = "[REDACTED]"

// otpMessageFormat OTP 안내 메일 본문
const otpMessageFormat = "Welcome. Your OTP is %s"

// 알림 기록에 남기는 OTP 자리
const maskedOTP = "******"

// AuthUseCase 로그인, OTP 검증, 로그아웃 프로토콜 구현
type AuthUseCase struct {
	logger       *zap.Logger
	users        repository.UserRepository
	identityRepo repository.IdentityRepository
	transactor   repository.Transactor
	identities   interfaces.IdentityUseCase
	totp         interfaces.TOTPEngine
	notifier     interfaces.NotificationUseCase
	txLog        interfaces.TransactionLogUseCase
	location     *time.Location
	now          func() time.Time
}

// NewAuthUseCase 인증 프로토콜 유스케이스 생성
func NewAuthUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	identities interfaces.IdentityUseCase,
	totp interfaces.TOTPEngine,
	notifier interfaces.NotificationUseCase,
	txLog interfaces.TransactionLogUseCase,
	location *time.Location,
) interfaces.AuthUseCase {
	if location == nil {
		location = time.UTC
	}
	return &AuthUseCase{
		logger:       logger,
		users:        repos.User,
		identityRepo: repos.Identity,
		transactor:   repos.Transactor,
		identities:   identities,
		totp:         totp,
		notifier:     notifier,
		txLog:        txLog,
		location:     location,
		now:          time.Now,
	}
}

// Login 자격 증명을 확인하고 세션을 재사용하거나 새로 발급합니다.
//
// Active 세션이 있으면 연장해서 돌려줍니다. 없으면 이전 대기 세션을 만료시키고
// ActivationPending 세션을 만듭니다. 같은 날 발급된 OTP 가 있으면 재사용하고,
// 새로 만든 경우에만 메일을 보냅니다.
func (uc *AuthUseCase) Login(ctx context.Context, params dto.LoginParams) (*dto.LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(params.Username))
	if username == "" {
		return nil, apperrors.NewInvalidArgument("username not provided")
	}
	if params.Password == "" {
		return nil, apperrors.NewInvalidArgument("password not provided")
	}

	txn := uc.txLog.Begin(ctx, entity.TransactionTypeLogin, map[string]interface{}{
		"username": username,
		"password": redacted,
	}, params.SourceIP)

	result, notification, err := uc.login(ctx, username, params.Password, params.SourceIP)
	if err != nil {
		uc.txLog.Fail(ctx, txn, failureResponse(err))
		return nil, err
	}

	uc.txLog.Complete(ctx, txn, map[string]interface{}{
		"user_id":    result.UserID.String(),
		"reused":     result.Reused,
		"expires_at": result.ExpiresAt.Unix(),
	})

	if notification != nil {
		if txn != nil {
			notification.TransactionID = &txn.ID
		}
		uc.notifier.Dispatch(ctx, *notification)
	}

	return result, nil
}

func (uc *AuthUseCase) login(ctx context.Context, username, password, sourceIP string) (*dto.LoginResult, *dto.NotificationRequest, error) {
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, apperrors.NewInternal("user lookup failed", err)
	}
	if user == nil {
		uc.logger.Info("로그인 실패: 사용자 없음", zap.String("username", username))
		return nil, nil, authFailed()
	}
	if !user.CheckPassword(password) {
		uc.logger.Info("로그인 실패: 비밀번호 불일치", zap.String("user_id", user.ID.String()))
		return nil, nil, authFailed()
	}
	if !user.IsActive() {
		uc.logger.Info("로그인 실패: 비활성 사용자",
			zap.String("user_id", user.ID.String()),
			zap.String("state", string(user.State)),
		)
		return nil, nil, authFailed()
	}

	var (
		identity *entity.Identity
		otpCode  string
		reused   bool
	)

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// 같은 사용자의 동시 로그인 직렬화
		if err := uc.users.LockByID(ctx, user.ID); err != nil {
			return err
		}
		if _, err := uc.identities.ExpireLapsed(ctx, user.ID); err != nil {
			return err
		}

		now := uc.now()
		active, err := uc.identityRepo.FindActiveByUser(ctx, user.ID, now)
		if err != nil {
			return err
		}
		if active != nil {
			err := uc.identities.Extend(ctx, active)
			if err == nil {
				identity, reused = active, true
				return uc.users.TouchLastActivity(ctx, user.ID, now)
			}
			// 읽은 뒤 다른 요청이 만료시킨 세션이면 새로 발급합니다
			if !apperrors.HasCode(err, apperrors.ErrUnauthenticated) {
				return err
			}
		}

		if _, err := uc.identities.ExpireForUser(ctx, user.ID, entity.StateActivationPending); err != nil {
			return err
		}

		identity, err = uc.identities.Issue(ctx, &user.ID, sourceIP)
		if err != nil {
			return err
		}

		from, to := dayBounds(now, uc.location)
		previous, err := uc.identityRepo.FindReusableOTP(ctx, user.ID, from, to)
		if err != nil {
			return err
		}
		if previous != nil && previous.HasOTP() {
			identity.AttachOTP(*previous.TOTPSecret, *previous.TOTPTimeStep)
		} else {
			code, secret, step, err := uc.totp.Generate(now)
			if err != nil {
				return err
			}
			identity.AttachOTP(secret, step)
			otpCode = code
		}

		if err := uc.identityRepo.Create(ctx, identity); err != nil {
			return err
		}
		return uc.users.TouchLastActivity(ctx, user.ID, now)
	})
	if err != nil {
		return nil, nil, internalUnlessCoded(err, "login failed")
	}

	uc.logger.Info("로그인 성공",
		zap.String("user_id", user.ID.String()),
		zap.String("token", logger.MaskSecret(identity.Token)),
		zap.Bool("reused", reused),
		zap.Bool("otp_sent", otpCode != ""),
	)

	result := &dto.LoginResult{
		Token:     identity.Token,
		UserID:    user.ID,
		ExpiresAt: identity.ExpiresAt,
		Reused:    reused,
	}
	if otpCode == "" {
		return result, nil, nil
	}
	return result, &dto.NotificationRequest{
		MessageCode:   dto.MessageCodeOTP,
		Channel:       string(entity.ChannelEmail),
		Message:       fmt.Sprintf(otpMessageFormat, otpCode),
		StoredMessage: fmt.Sprintf(otpMessageFormat, maskedOTP),
		Destination:   user.Email,
	}, nil
}

// VerifyOTP 대기 중인 세션의 OTP 를 검증하고 Active 로 전환합니다.
// 코드가 틀리면 세션 상태는 바뀌지 않습니다.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, params dto.VerifyParams) (*dto.VerifyResult, error) {
	token := strings.TrimSpace(params.Token)
	code := strings.TrimSpace(params.OTP)
	if token == "" {
		return nil, apperrors.NewInvalidArgument("token not provided")
	}
	if code == "" {
		return nil, apperrors.NewInvalidArgument("otp not provided")
	}

	txn := uc.txLog.Begin(ctx, entity.TransactionTypeVerifyOTP, map[string]interface{}{
		"token": logger.MaskSecret(token),
		"otp":   redacted,
	}, params.SourceIP)

	var result *dto.VerifyResult
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		identity, err := uc.identityRepo.FindByToken(ctx, token,
			[]entity.StateName{entity.StateActivationPending, entity.StateActive}, uc.now())
		if err != nil {
			return err
		}
		if identity == nil || identity.UserID == nil {
			return identityNotFound()
		}
		if !identity.HasOTP() || !uc.totp.Verify(*identity.TOTPSecret, code, *identity.TOTPTimeStep) {
			return apperrors.NewAppError(apperrors.ErrInvalidOTP, "invalid otp", nil)
		}
		if err := uc.identities.Activate(ctx, identity); err != nil {
			if apperrors.HasCode(err, apperrors.ErrUnauthenticated) {
				return identityNotFound()
			}
			return err
		}
		result = &dto.VerifyResult{Activated: true, ExpiresAt: identity.ExpiresAt}
		return nil
	})
	if err != nil {
		err = internalUnlessCoded(err, "otp verification failed")
		uc.txLog.Fail(ctx, txn, failureResponse(err))
		return nil, err
	}

	uc.txLog.Complete(ctx, txn, map[string]interface{}{"expires_at": result.ExpiresAt.Unix()})
	return result, nil
}

// Logout 사용자의 Active 세션을 모두 만료시킵니다. 여러 번 호출해도 같은 결과입니다.
func (uc *AuthUseCase) Logout(ctx context.Context, params dto.LogoutParams) error {
	_, err := uc.expireAll(ctx, entity.TransactionTypeLogout, params)
	return err
}

// Revoke 관리자 요청으로 대상 사용자의 Active 세션을 만료시키고 건수를 반환합니다
func (uc *AuthUseCase) Revoke(ctx context.Context, params dto.LogoutParams) (int64, error) {
	return uc.expireAll(ctx, entity.TransactionTypeRevoke, params)
}

func (uc *AuthUseCase) expireAll(ctx context.Context, typeName string, params dto.LogoutParams) (int64, error) {
	raw := strings.TrimSpace(params.UserID)
	if raw == "" {
		return 0, apperrors.NewInvalidArgument("user_id not provided")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return 0, apperrors.NewInvalidArgument("invalid user_id")
	}

	txn := uc.txLog.Begin(ctx, typeName, map[string]interface{}{"user_id": userID.String()}, params.SourceIP)

	expired, err := uc.expireActive(ctx, userID)
	if err != nil {
		uc.txLog.Fail(ctx, txn, failureResponse(err))
		return 0, err
	}

	uc.txLog.Complete(ctx, txn, map[string]interface{}{"expired": expired})
	uc.logger.Info("세션 만료 처리",
		zap.String("type", typeName),
		zap.String("user_id", userID.String()),
		zap.Int64("expired", expired),
	)
	return expired, nil
}

func (uc *AuthUseCase) expireActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return 0, apperrors.NewInternal("user lookup failed", err)
	}
	if user == nil || !user.IsActive() {
		return 0, apperrors.NewNotFound("user not found")
	}
	return uc.identities.ExpireForUser(ctx, userID, entity.StateActive)
}

func authFailed() error {
	return apperrors.NewAppError(apperrors.ErrAuthFailed, "invalid username or password", nil)
}

func failureResponse(err error) map[string]interface{} {
	return map[string]interface{}{
		"code":  apperrors.ToEnvelopeCode(err),
		"error": apperrors.CodeOf(err),
	}
}

// internalUnlessCoded 코드가 있는 에러는 그대로, 나머지는 INTERNAL 로 감쌉니다
func internalUnlessCoded(err error, message string) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return err
	}
	return apperrors.NewInternal(message, err)
}

// identityNotFound 검증 대상 세션이 없을 때의 단일 응답. 원인을 구분하지 않습니다.
func identityNotFound() error {
	return apperrors.NewNotFound("identity not found")
}
