package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/repository"
)

func newBootstrapMocks() (*MockRoleRepository, *MockUserRepository, *Bootstrapper) {
	roles := new(MockRoleRepository)
	for _, name := range entity.AllRoles {
		roles.On("FindOrCreate", mock.Anything, name).Return(&entity.Role{ID: uuid.New(), Name: name}, nil)
	}
	users := new(MockUserRepository)
	repos := &repository.Repositories{Role: roles, User: users}
	return roles, users, NewBootstrapper(zap.NewNop(), repos, newFakeStates(), bcrypt.MinCost)
}

func TestBootstrap_CreatesAdminWhenMissing(t *testing.T) {
	roles, users, b := newBootstrapMocks()
	users.On("FindByUsername", mock.Anything, "root").Return(nil, nil)

	var created *entity.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.User)
	}).Return(nil)

	err := b.Seed(context.Background(), BootstrapAdmin{Username: " Root ", Password: "s3cret", Email: "root@school.test"})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "root", created.Username)
	assert.Equal(t, entity.RoleSuperAdmin, created.Role)
	assert.True(t, created.IsActive())
	assert.True(t, created.CheckPassword("s3cret"))
	roles.AssertExpectations(t)
}

func TestBootstrap_SkipsExistingAdmin(t *testing.T) {
	_, users, b := newBootstrapMocks()
	users.On("FindByUsername", mock.Anything, "root").Return(&entity.User{Username: "root"}, nil)

	require.NoError(t, b.Seed(context.Background(), BootstrapAdmin{Username: "root", Password: "x"}))

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBootstrap_NoAdminConfigured(t *testing.T) {
	roles, users, b := newBootstrapMocks()

	require.NoError(t, b.Seed(context.Background(), BootstrapAdmin{}))

	roles.AssertExpectations(t)
	users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}
