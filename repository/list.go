package repository

import (
	"context"

	"github.com/todoflow/backend/domain"
)

type ListRepository interface {
	GetByID(ctx context.Context, id string) (*domain.List, error)
	List(ctx context.Context) ([]domain.List, error)
	Create(ctx context.Context, list *domain.List) (*domain.List, error)
	Update(ctx context.Context, list *domain.List) error
	Delete(ctx context.Context, id string) error
}
