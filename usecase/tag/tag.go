package tag

import (
	"context"

	"go.uber.org/zap"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type UseCase struct {
	tags   repository.TagRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tags repository.TagRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tags:   tags,
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) Tags(ctx context.Context) ([]domain.Tag, error) {
	return uc.tags.List(ctx)
}

func (uc *UseCase) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	name = domain.TagName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	return uc.tags.Create(ctx, &domain.Tag{Name: name, Color: color})
}

// RenameTag renames the tag and rewrites every task referencing the old
// name, without introducing duplicates in any task's tag set.
func (uc *UseCase) RenameTag(ctx context.Context, oldName, newName string) error {
	oldName = domain.TagName(oldName)
	newName = domain.TagName(newName)
	if newName == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if oldName == newName {
		return nil
	}

	if err := uc.tags.Rename(ctx, oldName, newName); err != nil {
		return err
	}
	if err := uc.tasks.ReplaceTag(ctx, oldName, newName); err != nil {
		return err
	}

	uc.logger.Info("tag renamed", zap.String("from", oldName), zap.String("to", newName))
	return nil
}

// DeleteTag removes the tag and strips it from every task's tag set.
func (uc *UseCase) DeleteTag(ctx context.Context, name string) error {
	name = domain.TagName(name)
	if err := uc.tags.Delete(ctx, name); err != nil {
		return err
	}
	return uc.tasks.ReplaceTag(ctx, name, "")
}
