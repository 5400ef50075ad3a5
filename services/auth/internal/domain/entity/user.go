package entity

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User 학교 관리 시스템 사용자. 인증 코어는 조회와 비밀번호 확인만 사용합니다.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	FirstName      string
	LastName       string
	Password       string // bcrypt(password + salt)
	Salt           string
	RoleID         uuid.UUID
	Role           RoleName
	StateID        uuid.UUID
	State          StateName
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CheckPassword 평문 비밀번호가 저장된 해시와 일치하는지 확인
func (u *User) CheckPassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain+u.Salt)) == nil
}

// IsActive 계정이 활성 상태인지 확인
func (u *User) IsActive() bool {
	return u.State == StateActive
}

// FullName 표시용 이름
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
