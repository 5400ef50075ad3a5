package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoleName 사용자 역할 이름
type RoleName string

const (
	RoleSuperAdmin RoleName = "SuperAdmin"
	RoleAdmin      RoleName = "Admin"
	RoleClerk      RoleName = "Clerk"
	RoleStudent    RoleName = "Student"
	RoleTeacher    RoleName = "Teacher"
)

// AllRoles 시스템 역할 전체
var AllRoles = []RoleName{RoleSuperAdmin, RoleAdmin, RoleClerk, RoleStudent, RoleTeacher}

// Role 역할 테이블의 한 행
type Role struct {
	ID          uuid.UUID
	Name        RoleName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleSet 게이트가 허용하는 역할 집합
type RoleSet []RoleName

var (
	SuperAdminOnly = RoleSet{RoleSuperAdmin}
	AdminOrAbove   = RoleSet{RoleSuperAdmin, RoleAdmin}
)

// Contains 역할이 집합에 포함되는지 확인
func (s RoleSet) Contains(role RoleName) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}
