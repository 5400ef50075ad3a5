package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/mapper"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// findOrCreateByName name 유니크 컬럼 기준 get-or-create. 동시 생성은 ON CONFLICT 로 흡수합니다.
func findOrCreateByName(db *gorm.DB, name string, create, dest interface{}) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(create).Error
	if err != nil {
		return err
	}
	return db.Where("name = ?", name).First(dest).Error
}

type StateRepositoryImpl struct {
	db *gorm.DB
}

// NewStateRepository 상태 저장소 구현체 생성
func NewStateRepository(db *gorm.DB) repository.StateRepository {
	return &StateRepositoryImpl{db: db}
}

// FindOrCreate 이름으로 조회하고 없으면 생성
func (r *StateRepositoryImpl) FindOrCreate(ctx context.Context, name entity.StateName) (*entity.State, error) {
	var found model.StateModel
	create := &model.StateModel{Name: string(name), Description: string(name)}
	if err := findOrCreateByName(conn(ctx, r.db), string(name), create, &found); err != nil {
		return nil, err
	}
	return mapper.StateFromModel(&found), nil
}

// List 저장된 상태 전체
func (r *StateRepositoryImpl) List(ctx context.Context) ([]*entity.State, error) {
	var models []model.StateModel
	if err := conn(ctx, r.db).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	states := make([]*entity.State, len(models))
	for i := range models {
		states[i] = mapper.StateFromModel(&models[i])
	}
	return states, nil
}

type RoleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository 역할 저장소 구현체 생성
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// FindOrCreate 이름으로 조회하고 없으면 생성
func (r *RoleRepositoryImpl) FindOrCreate(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var found model.RoleModel
	create := &model.RoleModel{Name: string(name), Description: string(name)}
	if err := findOrCreateByName(conn(ctx, r.db), string(name), create, &found); err != nil {
		return nil, err
	}
	return mapper.RoleFromModel(&found), nil
}
