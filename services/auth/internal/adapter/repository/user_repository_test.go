package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

func TestUserRepository_FindByUsernameIgnoresCase(t *testing.T) {
	f := newRepoFixture(t)

	got, err := f.users.FindByUsername(context.Background(), "ALICE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.user.ID, got.ID)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.Equal(t, entity.StateActive, got.State)

	missing, err := f.users.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_LockByIDInTransaction(t *testing.T) {
	f := newRepoFixture(t)
	tx := NewTransactor(f.db)

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := f.users.LockByID(ctx, f.user.ID); err != nil {
			return err
		}
		return f.users.TouchLastActivity(ctx, f.user.ID, baseTime)
	})
	require.NoError(t, err)

	got, err := f.users.FindByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastActivityAt)
	assert.True(t, got.LastActivityAt.Equal(baseTime))

	err = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return f.users.LockByID(ctx, uuid.New())
	})
	assert.ErrorIs(t, err, apperrors.NotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	f := newRepoFixture(t)
	boom := errors.New("boom")
	identity := entity.NewIdentity("tok-rollback", &f.user.ID, "", f.states[entity.StateActivationPending], baseTime, testTTL)

	err := NewTransactor(f.db).WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := f.identities.Create(ctx, identity); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.identities.FindByToken(context.Background(), "tok-rollback",
		[]entity.StateName{entity.StateActivationPending}, baseTime)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStateRepository_FindOrCreateIsIdempotent(t *testing.T) {
	f := newRepoFixture(t)
	repo := NewStateRepository(f.db)

	again, err := repo.FindOrCreate(context.Background(), entity.StateActive)
	require.NoError(t, err)
	assert.Equal(t, f.states[entity.StateActive].ID, again.ID)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(entity.AllStates))
}
