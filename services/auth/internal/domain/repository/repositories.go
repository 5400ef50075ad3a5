package repository

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	State        StateRepository
	Role         RoleRepository
	User         UserRepository
	Identity     IdentityRepository
	Transaction  TransactionRepository
	Notification NotificationRepository
	Mail         MailRepository
	Bus          NotificationBus
	Transactor   Transactor
}
