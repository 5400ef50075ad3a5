package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wekeepgrowing/school-backend/pkg/logger"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	infradb "github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

const testTTL = 30 * time.Minute

// newTestDB 테스트마다 독립된 인메모리 SQLite 에 스키마를 만듭니다
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(zap.NewNop(), gormlogger.Silent, time.Second, true),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infradb.Migrate(db, zap.NewNop()))
	return db
}

type repoFixture struct {
	db         *gorm.DB
	identities *IdentityRepositoryImpl
	users      *UserRepositoryImpl
	states     map[entity.StateName]*entity.State
	user       *entity.User
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	stateRepo := NewStateRepository(db)
	states := make(map[entity.StateName]*entity.State, len(entity.AllStates))
	for _, name := range entity.AllStates {
		s, err := stateRepo.FindOrCreate(ctx, name)
		require.NoError(t, err)
		states[name] = s
	}
	role, err := NewRoleRepository(db).FindOrCreate(ctx, entity.RoleAdmin)
	require.NoError(t, err)

	users := NewUserRepository(db).(*UserRepositoryImpl)
	user := &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@school.test",
		Password: "hash",
		Salt:     "salt",
		RoleID:   role.ID,
		StateID:  states[entity.StateActive].ID,
	}
	require.NoError(t, users.Create(ctx, user))

	return &repoFixture{
		db:         db,
		identities: NewIdentityRepository(db).(*IdentityRepositoryImpl),
		users:      users,
		states:     states,
		user:       user,
	}
}

// store createdAt 에 생성된 세션을 state 로 저장합니다. otp 가 true 면 OTP 를 붙입니다.
func (f *repoFixture) store(t *testing.T, state entity.StateName, createdAt time.Time, otp bool) *entity.Identity {
	t.Helper()
	identity := entity.NewIdentity("tok-"+uuid.NewString(), &f.user.ID, "10.0.0.1", f.states[state], createdAt, testTTL)
	if otp {
		identity.AttachOTP("c2VjcmV0", createdAt.Unix())
	}
	require.NoError(t, f.identities.Create(context.Background(), identity))
	return identity
}

func (f *repoFixture) stateOf(t *testing.T, id uuid.UUID) entity.StateName {
	t.Helper()
	list, err := f.identities.ListByUser(context.Background(), f.user.ID, 0)
	require.NoError(t, err)
	for _, identity := range list {
		if identity.ID == id {
			return identity.State
		}
	}
	t.Fatalf("identity %s not stored", id)
	return ""
}
