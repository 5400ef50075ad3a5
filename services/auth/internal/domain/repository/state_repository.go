package repository

import (
	"context"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// StateRepository 상태 레지스트리 저장소
type StateRepository interface {
	// FindOrCreate 이름으로 조회하고 없으면 생성 (멱등)
	FindOrCreate(ctx context.Context, name entity.StateName) (*entity.State, error)

	// List 저장된 상태 전체
	List(ctx context.Context) ([]*entity.State, error)
}

// RoleRepository 역할 저장소
type RoleRepository interface {
	// FindOrCreate 이름으로 조회하고 없으면 생성 (멱등)
	FindOrCreate(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
