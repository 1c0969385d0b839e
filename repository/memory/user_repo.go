package memory

import (
	"context"
	"time"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type userDirectory struct {
	users map[string]domain.User
}

// NewUserDirectory builds an in-memory directory from a fixed set of
// records. Lookups are case-sensitive exact matches.
func NewUserDirectory(users []domain.User) repository.UserDirectory {
	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &userDirectory{users: byName}
}

func (d *userDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// DemoUsers returns the compiled-in demo directory. The digest is the
// SHA-256 of "admin" + pepper + salt, matching the default pepper.
func DemoUsers() []domain.User {
	return []domain.User{
		{
			ID:           1,
			Username:     "admin",
			PasswordHash: "fd83aa511d991ba2ef615b3df48d67b2bbf3a755e0739d918cd943f4bec0c864",
			Salt:         "a1b2c3d4e5f6g7h8",
			Role:         "admin",
			Email:        "admin@todolist.com",
			CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
