package mapper

import (
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// StateFromModel 상태 모델을 엔티티로 변환
func StateFromModel(m *model.StateModel) *entity.State {
	if m == nil {
		return nil
	}
	return &entity.State{
		ID:          m.ID,
		Name:        entity.StateName(m.Name),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RoleFromModel 역할 모델을 엔티티로 변환
func RoleFromModel(m *model.RoleModel) *entity.Role {
	if m == nil {
		return nil
	}
	return &entity.Role{
		ID:          m.ID,
		Name:        entity.RoleName(m.Name),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NotificationToModel 알림 엔티티를 DB 모델로 변환
func NotificationToModel(n *entity.Notification) *model.NotificationModel {
	if n == nil {
		return nil
	}
	m := &model.NotificationModel{
		Channel:       string(n.Channel),
		Title:         n.Title,
		Message:       n.Message,
		Destination:   n.Destination,
		TransactionID: n.TransactionID,
		StateID:       n.StateID,
	}
	m.ID = n.ID
	return m
}
