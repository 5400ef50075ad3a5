package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func state(name StateName) *State {
	return &State{ID: uuid.New(), Name: name}
}

func TestIdentity_ExtendMovesStrictlyForward(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	identity := NewIdentity("tok", nil, "10.0.0.1", state(StateActivationPending), now, 30*time.Minute)
	first := identity.ExpiresAt

	identity.Extend(now.Add(time.Minute), 30*time.Minute)
	assert.True(t, identity.ExpiresAt.After(first))

	// 같은 시각에 다시 연장해도 뒤로 가거나 멈추지 않음
	second := identity.ExpiresAt
	identity.Extend(now, 30*time.Minute)
	assert.True(t, identity.ExpiresAt.After(second))
}

func TestIdentity_IsExpired(t *testing.T) {
	now := time.Now()
	identity := &Identity{ExpiresAt: now, State: StateActive}

	assert.True(t, identity.IsExpired(now))
	assert.False(t, identity.IsExpired(now.Add(-time.Second)))
	assert.False(t, identity.IsUsable(now))
	assert.True(t, identity.IsUsable(now.Add(-time.Second)))
}

func TestIdentity_TransitionTo(t *testing.T) {
	cases := []struct {
		from, to StateName
		ok       bool
	}{
		{StateActivationPending, StateActive, true},
		{StateActivationPending, StateExpired, true},
		{StateActive, StateActive, true},
		{StateActive, StateExpired, true},
		{StateExpired, StateActive, false},
		{StateActive, StateActivationPending, false},
		{StateActivationPending, StateDeleted, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			identity := &Identity{State: tc.from}
			target := state(tc.to)
			err := identity.TransitionTo(target)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, identity.State)
				assert.Equal(t, target.ID, identity.StateID)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tc.from, identity.State)
		})
	}
}

func TestIdentity_OTP(t *testing.T) {
	identity := &Identity{}
	assert.False(t, identity.HasOTP())

	identity.AttachOTP("c2VjcmV0", 1700000000)
	assert.True(t, identity.HasOTP())
	assert.Equal(t, int64(1700000000), *identity.TOTPTimeStep)
}

func TestUser_CheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correctpw"+"salt"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Password: string(hash), Salt: "salt"}

	assert.True(t, user.CheckPassword("correctpw"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, (&User{}).CheckPassword(""))
}

func TestRoleSet_Contains(t *testing.T) {
	assert.True(t, AdminOrAbove.Contains(RoleAdmin))
	assert.True(t, AdminOrAbove.Contains(RoleSuperAdmin))
	assert.False(t, AdminOrAbove.Contains(RoleTeacher))
	assert.False(t, SuperAdminOnly.Contains(RoleAdmin))
}

func TestStateName_Valid(t *testing.T) {
	assert.True(t, StateReturned.Valid())
	assert.False(t, StateName("Archived").Valid())
}
