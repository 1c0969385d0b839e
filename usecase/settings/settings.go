package settings

import (
	"context"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/store"
)

const themeKey = "theme"

// Themes the UI understands.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UseCase persists small user preferences.
type UseCase struct {
	state store.Store
}

func New(state store.Store) *UseCase {
	return &UseCase{state: state}
}

// Theme returns the persisted theme, defaulting to light. An unrecognized
// stored value is treated as absent and cleared.
func (uc *UseCase) Theme(ctx context.Context) (string, error) {
	value, ok, err := uc.state.Get(ctx, themeKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return ThemeLight, nil
	}
	if value != ThemeLight && value != ThemeDark {
		_ = uc.state.Delete(ctx, themeKey)
		return ThemeLight, nil
	}
	return value, nil
}

// SetTheme persists the theme preference.
func (uc *UseCase) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return domain.NewValidationError("theme", "must be light or dark")
	}
	return uc.state.Set(ctx, themeKey, theme)
}
