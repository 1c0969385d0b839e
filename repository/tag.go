package repository

import (
	"context"

	"github.com/todoflow/backend/domain"
)

type TagRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}
