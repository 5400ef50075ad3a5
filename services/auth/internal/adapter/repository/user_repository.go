package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/mapper"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 사용자 저장소 구현체 생성
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) first(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	var m model.UserModel
	err := conn(ctx, r.db).Preload("Role").Preload("State").Where(query, args...).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.UserFromModel(&m), nil
}

// FindByID ID로 사용자 조회
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByUsername 사용자명으로 사용자 조회
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "LOWER(username) = ?", strings.ToLower(username))
}

// LockByID 사용자 행 잠금. 같은 사용자의 동시 로그인을 직렬화합니다.
func (r *UserRepositoryImpl) LockByID(ctx context.Context, id uuid.UUID) error {
	var m model.UserModel
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound("user not found")
	}
	return err
}

// TouchLastActivity 마지막 활동 시각 갱신
func (r *UserRepositoryImpl) TouchLastActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	return conn(ctx, r.db).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_activity_at", at).Error
}

// Create 새 사용자 생성
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := mapper.UserToModel(user)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}
