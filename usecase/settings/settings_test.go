package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/store"
)

func TestTheme_DefaultsToLight(t *testing.T) {
	t.Parallel()

	uc := New(store.NewMemory())

	theme, err := uc.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestSetTheme_Roundtrip(t *testing.T) {
	t.Parallel()

	uc := New(store.NewMemory())

	require.NoError(t, uc.SetTheme(context.Background(), ThemeDark))

	theme, err := uc.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestSetTheme_RejectsUnknownValue(t *testing.T) {
	t.Parallel()

	uc := New(store.NewMemory())

	err := uc.SetTheme(context.Background(), "solarized")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestTheme_UnrecognizedStoredValueCleared(t *testing.T) {
	t.Parallel()

	state := store.NewMemory()
	require.NoError(t, state.Set(context.Background(), "theme", "solarized"))

	uc := New(state)

	theme, err := uc.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	_, ok, err := state.Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.False(t, ok)
}
