package model

// StateModel 상태 레지스트리 테이블
type StateModel struct {
	Base
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:100" json:"description"`
}

// TableName 테이블 이름 지정
func (StateModel) TableName() string {
	return "states"
}

// RoleModel 역할 테이블
type RoleModel struct {
	Base
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:100" json:"description"`
}

// TableName 테이블 이름 지정
func (RoleModel) TableName() string {
	return "roles"
}
