package mapper

import (
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// IdentityToModel 세션 엔티티를 DB 모델로 변환
func IdentityToModel(identity *entity.Identity) *model.IdentityModel {
	if identity == nil {
		return nil
	}

	m := &model.IdentityModel{
		Token:        identity.Token,
		ExpiresAt:    identity.ExpiresAt,
		UserID:       identity.UserID,
		SourceIP:     identity.SourceIP,
		TOTPSecret:   identity.TOTPSecret,
		TOTPTimeStep: identity.TOTPTimeStep,
		StateID:      identity.StateID,
	}
	m.ID = identity.ID
	m.CreatedAt = identity.CreatedAt
	m.UpdatedAt = identity.UpdatedAt
	return m
}

// IdentityFromModel DB 모델을 세션 엔티티로 변환. State 는 preload 되어 있어야 합니다.
func IdentityFromModel(m *model.IdentityModel) *entity.Identity {
	if m == nil {
		return nil
	}

	return &entity.Identity{
		ID:           m.ID,
		Token:        m.Token,
		ExpiresAt:    m.ExpiresAt,
		UserID:       m.UserID,
		SourceIP:     m.SourceIP,
		TOTPSecret:   m.TOTPSecret,
		TOTPTimeStep: m.TOTPTimeStep,
		StateID:      m.StateID,
		State:        entity.StateName(m.State.Name),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// IdentitiesFromModels DB 모델 슬라이스를 엔티티 슬라이스로 변환
func IdentitiesFromModels(models []model.IdentityModel) []*entity.Identity {
	identities := make([]*entity.Identity, len(models))
	for i := range models {
		identities[i] = IdentityFromModel(&models[i])
	}
	return identities
}
