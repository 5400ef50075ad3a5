package repository

import (
	domainrepo "github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db"
)

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다
func InitRepositories(infra *db.Infrastructure) *domainrepo.Repositories {
	return &domainrepo.Repositories{
		State:        NewStateRepository(infra.DB),
		Role:         NewRoleRepository(infra.DB),
		User:         NewUserRepository(infra.DB),
		Identity:     NewIdentityRepository(infra.DB),
		Transaction:  NewTransactionRepository(infra.DB),
		Notification: NewNotificationRepository(infra.DB),
		Mail:         NewMailRepository(infra.SMTPClient),
		Bus:          infra.Bus,
		Transactor:   NewTransactor(infra.DB),
	}
}
