package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// BootstrapAdmin 최초 기동 시 만들 SuperAdmin 계정
type BootstrapAdmin struct {
	Username string
	Password string
	Email    string
}

// Bootstrapper 상태, 역할 시드와 초기 관리자 생성
type Bootstrapper struct {
	logger   *zap.Logger
	states   interfaces.StateRegistry
	roles    repository.RoleRepository
	users    repository.UserRepository
	hashCost int
}

// NewBootstrapper 부트스트래퍼 생성
func NewBootstrapper(
	logger *zap.Logger,
	repos *repository.Repositories,
	states interfaces.StateRegistry,
	hashCost int,
) *Bootstrapper {
	return &Bootstrapper{
		logger:   logger,
		states:   states,
		roles:    repos.Role,
		users:    repos.User,
		hashCost: hashCost,
	}
}

// Seed 상태와 역할을 만들고, admin 이 지정되면 없을 때만 생성합니다
func (b *Bootstrapper) Seed(ctx context.Context, admin BootstrapAdmin) error {
	if err := b.states.Warm(ctx); err != nil {
		return fmt.Errorf("상태 시드 실패: %w", err)
	}

	roles := make(map[entity.RoleName]*entity.Role, len(entity.AllRoles))
	for _, name := range entity.AllRoles {
		role, err := b.roles.FindOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("역할 시드 실패 (%s): %w", name, err)
		}
		roles[name] = role
	}

	username := strings.ToLower(strings.TrimSpace(admin.Username))
	if username == "" || admin.Password == "" {
		return nil
	}

	existing, err := b.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("관리자 조회 실패: %w", err)
	}
	if existing != nil {
		return nil
	}

	active, err := b.states.Resolve(ctx, entity.StateActive)
	if err != nil {
		return err
	}
	hash, salt, err := HashPassword(admin.Password, b.hashCost)
	if err != nil {
		return fmt.Errorf("비밀번호 해싱 실패: %w", err)
	}

	superAdmin := roles[entity.RoleSuperAdmin]
	user := &entity.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     admin.Email,
		FirstName: "System",
		LastName:  "Administrator",
		Password:  hash,
		Salt:      salt,
		RoleID:    superAdmin.ID,
		Role:      superAdmin.Name,
		StateID:   active.ID,
		State:     active.Name,
	}
	if err := b.users.Create(ctx, user); err != nil {
		return fmt.Errorf("관리자 생성 실패: %w", err)
	}

	b.logger.Info("초기 관리자 생성", zap.String("username", username))
	return nil
}
