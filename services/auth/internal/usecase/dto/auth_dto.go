package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginParams 로그인 매개변수
type LoginParams struct {
	Username string
	Password string
	SourceIP string
}

// LoginResult 로그인 결과
type LoginResult struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	// Reused 기존 Active 세션을 재사용했는지 여부
	Reused bool
}

// VerifyParams OTP 검증 매개변수
type VerifyParams struct {
	Token    string
	OTP      string
	SourceIP string
}

// VerifyResult OTP 검증 결과
type VerifyResult struct {
	Activated bool
	ExpiresAt time.Time
}

// LogoutParams 로그아웃 매개변수
type LogoutParams struct {
	UserID   string
	SourceIP string
}

// IdentitySummary 관리자 조회용 세션 요약 (토큰은 가려짐)
type IdentitySummary struct {
	ID          uuid.UUID
	MaskedToken string
	State       string
	SourceIP    string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Profile 토큰 소유자 정보
type Profile struct {
	UserID         uuid.UUID
	Username       string
	Email          string
	FullName       string
	Role           string
	LastActivityAt *time.Time
}
