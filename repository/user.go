package repository

import (
	"context"

	"github.com/todoflow/backend/domain"
)

// UserDirectory is the single lookup capability the credential verifier
// needs. A real backend replaces the compiled-in directory by implementing
// this interface.
type UserDirectory interface {
	// FindByUsername performs a case-sensitive exact match and returns
	// domain.ErrUserNotFound when no record exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
