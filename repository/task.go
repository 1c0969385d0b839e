package repository

import (
	"context"

	"github.com/todoflow/backend/domain"
)

// TaskFilter narrows List results. Zero values mean "no restriction".
type TaskFilter struct {
	View   domain.View
	Query  string
	ListID string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	// ReplaceTag rewrites oldName to newName in every task's tag set;
	// newName == "" removes the tag instead. No task gains a duplicate.
	ReplaceTag(ctx context.Context, oldName, newName string) error
}
