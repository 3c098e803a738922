package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/auth"
	"github.com/megaschedule/megaschedule/internal/model"
)

func TestUserService_ResolveOrProvision(t *testing.T) {
	env := newTestEnv(t)
	claims := &auth.Claims{Email: "alice@test.test", Name: "alice", GoogleID: "goog-1"}

	user, err := env.users.ResolveOrProvision(context.Background(), claims)
	require.NoError(t, err)

	assert.Equal(t, model.RoleTeacher, user.Role, "first-seen users default to teacher")
	assert.Equal(t, "alice@test.test", user.Email)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "goog-1", *user.GoogleID)

	// second resolve finds the same user instead of provisioning again
	again, err := env.users.ResolveOrProvision(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestUserService_ResolveOrProvision_BackfillsGoogleID(t *testing.T) {
	env := newTestEnv(t)
	existing := env.createUser(t, "alice", model.RoleDesk)
	require.Nil(t, existing.GoogleID)

	user, err := env.users.ResolveOrProvision(context.Background(), &auth.Claims{
		Email:    existing.Email,
		Name:     "alice",
		GoogleID: "goog-7",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, model.RoleDesk, user.Role, "provisioning never rewrites an assigned role")
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "goog-7", *user.GoogleID)
}

func TestUserService_SetRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", model.RoleTeacher)

	t.Run("valid role", func(t *testing.T) {
		updated, err := env.users.SetRole(context.Background(), user.ID, model.RoleDesk)
		require.NoError(t, err)
		assert.Equal(t, model.RoleDesk, updated.Role)
	})

	t.Run("outside the closed set", func(t *testing.T) {
		for _, role := range []model.Role{"admin", "", "Teacher"} {
			_, err := env.users.SetRole(context.Background(), user.ID, role)
			assert.Equal(t, apperr.CodeInvalidRole, apperr.CodeOf(err))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.users.SetRole(context.Background(), 9999, model.RoleTeacher)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})
}
