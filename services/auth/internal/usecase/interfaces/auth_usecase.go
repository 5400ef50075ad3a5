package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/dto"
)

// AuthUseCase 로그인, OTP 검증, 로그아웃 프로토콜
type AuthUseCase interface {
	// Login 자격 증명 확인 후 세션을 재사용하거나 새로 만듭니다
	Login(ctx context.Context, params dto.LoginParams) (*dto.LoginResult, error)

	// VerifyOTP 세션의 OTP 를 검증하고 Active 로 전환합니다
	VerifyOTP(ctx context.Context, params dto.VerifyParams) (*dto.VerifyResult, error)

	// Logout 사용자의 Active 세션을 모두 만료시킵니다 (멱등)
	Logout(ctx context.Context, params dto.LogoutParams) error

	// Revoke 관리자가 대상 사용자의 Active 세션을 모두 만료시킵니다
	Revoke(ctx context.Context, params dto.LogoutParams) (int64, error)
}

// IdentityUseCase 세션 발급, 연장, 조회
type IdentityUseCase interface {
	// Issue 새 ActivationPending 세션 생성 (저장하지 않음)
	Issue(ctx context.Context, userID *uuid.UUID, sourceIP string) (*entity.Identity, error)

	// Extend 만료 시각을 앞으로 밀고 저장합니다
	Extend(ctx context.Context, identity *entity.Identity) error

	// Activate ActivationPending 또는 Active 세션을 Active 로 전환하고 연장합니다
	Activate(ctx context.Context, identity *entity.Identity) error

	// ExpireForUser 사용자의 from 상태 세션을 Expired 로 전환합니다
	ExpireForUser(ctx context.Context, userID uuid.UUID, from ...entity.StateName) (int64, error)

	// ExpireLapsed 만료 시각이 지난 Active 세션을 Expired 로 전환합니다
	ExpireLapsed(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListForUser 관리자 조회용 세션 목록
	ListForUser(ctx context.Context, userID uuid.UUID) ([]dto.IdentitySummary, error)
}

// GateUseCase 요청 인가 게이트
type GateUseCase interface {
	// Authenticate 토큰을 Active 이고 만료되지 않은 세션으로 해석하고 연장합니다
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)

	// AuthorizeRole 요청의 user_id 사용자가 허용 역할인지 확인합니다
	AuthorizeRole(ctx context.Context, identity *entity.Identity, userID string, allowed entity.RoleSet) (*entity.User, error)
}

// UserUseCase 인증된 사용자 조회
type UserUseCase interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.Profile, error)
}
