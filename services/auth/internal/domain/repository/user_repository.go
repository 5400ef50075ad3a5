package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// UserRepository 사용자 엔티티 관련 저장소 인터페이스
type UserRepository interface {
	// FindByID ID로 사용자 조회
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername 사용자명으로 사용자 조회 (소문자 비교)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// LockByID 트랜잭션 안에서 사용자 행을 FOR UPDATE 로 잠급니다
	LockByID(ctx context.Context, id uuid.UUID) error

	// TouchLastActivity 마지막 활동 시각 갱신
	TouchLastActivity(ctx context.Context, id uuid.UUID, at time.Time) error

	// Create 새 사용자 생성
	Create(ctx context.Context, user *entity.User) error
}
