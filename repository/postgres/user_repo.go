package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type userDirectory struct {
	pool *pgxpool.Pool
}

// NewUserDirectory instantiates a Postgres-backed user directory. It
// implements the same lookup contract as the compiled-in one, so the
// verifier does not care which is wired.
func NewUserDirectory(pool *pgxpool.Pool) repository.UserDirectory {
	return &userDirectory{pool: pool}
}

func (d *userDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
		SELECT id, username, password_hash, salt, role, email, created_at
		FROM users
		WHERE username = $1
	`
	row := d.pool.QueryRow(ctx, query, username)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Salt,
		&user.Role,
		&user.Email,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
