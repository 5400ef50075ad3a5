package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/adapter/mapper"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

type IdentityRepositoryImpl struct {
	db *gorm.DB
}

// NewIdentityRepository 세션 저장소 구현체 생성
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &IdentityRepositoryImpl{db: db}
}

// stateIDs 상태 이름 목록에 해당하는 id 서브쿼리
func stateIDs(db *gorm.DB, names []entity.StateName) *gorm.DB {
	values := make([]string, len(names))
	for i, n := range names {
		values[i] = string(n)
	}
	return db.Model(&model.StateModel{}).Select("id").Where("name IN ?", values)
}

func (r *IdentityRepositoryImpl) first(db *gorm.DB) (*entity.Identity, error) {
	var m model.IdentityModel
	if err := db.Preload("State").Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.IdentityFromModel(&m), nil
}

// Create 새 세션 저장
func (r *IdentityRepositoryImpl) Create(ctx context.Context, identity *entity.Identity) error {
	m := mapper.IdentityToModel(identity)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	identity.ID = m.ID
	identity.CreatedAt = m.CreatedAt
	identity.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateIfState 조건부 갱신. 읽은 뒤 로그아웃된 세션을 되살리지 않도록
// id, 상태, 만료 시각을 WHERE 에 함께 겁니다.
func (r *IdentityRepositoryImpl) UpdateIfState(ctx context.Context, identity *entity.Identity, from []entity.StateName, now time.Time) (bool, error) {
	db := conn(ctx, r.db)
	res := db.Model(&model.IdentityModel{}).
		Where("id = ? AND expires_at > ? AND state_id IN (?)", identity.ID, now, stateIDs(db, from)).
		Updates(map[string]interface{}{
			"expires_at": identity.ExpiresAt,
			"state_id":   identity.StateID,
			"updated_at": identity.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByToken 토큰 값으로 조회 (정확히 일치, 유니크 인덱스)
func (r *IdentityRepositoryImpl) FindByToken(ctx context.Context, token string, states []entity.StateName, now time.Time) (*entity.Identity, error) {
	db := conn(ctx, r.db)
	return r.first(db.Where("token = ? AND expires_at > ? AND state_id IN (?)", token, now, stateIDs(db, states)))
}

// FindActiveByUser 만료되지 않은 Active 세션
func (r *IdentityRepositoryImpl) FindActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.Identity, error) {
	db := conn(ctx, r.db)
	return r.first(db.Where("user_id = ? AND expires_at > ? AND state_id IN (?)",
		userID, now, stateIDs(db, []entity.StateName{entity.StateActive})))
}

// FindReusableOTP 같은 날 만료된 세션의 OTP
func (r *IdentityRepositoryImpl) FindReusableOTP(ctx context.Context, userID uuid.UUID, from, to time.Time) (*entity.Identity, error) {
	db := conn(ctx, r.db)
	return r.first(db.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Where("totp_secret IS NOT NULL AND totp_time_step IS NOT NULL").
		Where("state_id IN (?)", stateIDs(db, []entity.StateName{entity.StateExpired})))
}

// TransitionByUser 사용자 세션 일괄 상태 변경
func (r *IdentityRepositoryImpl) TransitionByUser(ctx context.Context, userID uuid.UUID, from []entity.StateName, to *entity.State, expiredBefore *time.Time) (int64, error) {
	db := conn(ctx, r.db)
	q := db.Model(&model.IdentityModel{}).
		Where("user_id = ? AND state_id IN (?)", userID, stateIDs(db, from))
	if expiredBefore != nil {
		q = q.Where("expires_at <= ?", *expiredBefore)
	}
	res := q.Update("state_id", to.ID)
	return res.RowsAffected, res.Error
}

// ExpireStale 만료 시각이 지난 세션 일괄 변경
func (r *IdentityRepositoryImpl) ExpireStale(ctx context.Context, from []entity.StateName, to *entity.State, now time.Time) (int64, error) {
	db := conn(ctx, r.db)
	res := db.Model(&model.IdentityModel{}).
		Where("expires_at <= ? AND state_id IN (?)", now, stateIDs(db, from)).
		Update("state_id", to.ID)
	return res.RowsAffected, res.Error
}

// ListByUser 사용자의 세션 목록
func (r *IdentityRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Identity, error) {
	var models []model.IdentityModel
	q := conn(ctx, r.db).Preload("State").Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return mapper.IdentitiesFromModels(models), nil
}
