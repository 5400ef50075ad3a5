package mapper

import (
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// UserFromModel DB 모델을 사용자 엔티티로 변환. Role, State 는 preload 되어 있어야 합니다.
func UserFromModel(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Password:       m.Password,
		Salt:           m.Salt,
		RoleID:         m.RoleID,
		Role:           entity.RoleName(m.Role.Name),
		StateID:        m.StateID,
		State:          entity.StateName(m.State.Name),
		LastActivityAt: m.LastActivityAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// UserToModel 사용자 엔티티를 DB 모델로 변환
func UserToModel(user *entity.User) *model.UserModel {
	if user == nil {
		return nil
	}

	m := &model.UserModel{
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Password:       user.Password,
		Salt:           user.Salt,
		RoleID:         user.RoleID,
		StateID:        user.StateID,
		LastActivityAt: user.LastActivityAt,
	}
	m.ID = user.ID
	return m
}
