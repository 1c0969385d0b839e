package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoflow/backend/domain"
)

func TestUserDirectory_FindByUsername(t *testing.T) {
	t.Parallel()

	dir := NewUserDirectory(DemoUsers())

	user, err := dir.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "admin@todolist.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.Salt)
}

func TestUserDirectory_UnknownUser(t *testing.T) {
	t.Parallel()

	dir := NewUserDirectory(nil)

	_, err := dir.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDirectory_SanitizeStripsSecrets(t *testing.T) {
	t.Parallel()

	dir := NewUserDirectory(DemoUsers())

	user, err := dir.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)

	public := user.Sanitize()
	assert.Equal(t, "admin", public.Username)
	assert.Equal(t, "admin", public.Role)
	assert.Equal(t, "admin@todolist.com", public.Email)
}
