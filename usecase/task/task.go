package task

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
	"github.com/todoflow/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	outbox usecase.OperationRecorder
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, outbox usecase.OperationRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		outbox: outbox,
		logger: logger,
		now:    time.Now,
	}
}

// ListTasks returns the tasks passing the filter, preserving the underlying
// collection's order.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	all, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, filter, uc.now()), nil
}

// Filter applies, in order: the list restriction, the view predicate, and a
// case-insensitive substring search over title and description. Unknown
// views behave like overview.
func Filter(tasks []domain.Task, filter repository.TaskFilter, now time.Time) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.ListID != "" && t.ListID != filter.ListID {
			continue
		}
		if !matchesView(t, filter.View, now) {
			continue
		}
		filtered = append(filtered, t)
	}

	if filter.Query == "" {
		return filtered
	}
	query := strings.ToLower(filter.Query)
	matched := filtered[:0]
	for _, t := range filtered {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matchesView(t domain.Task, view domain.View, now time.Time) bool {
	switch view {
	case domain.ViewToday:
		return !t.Completed && (t.DueOn(now) || t.DueDate == nil)
	case domain.ViewUpcoming:
		return !t.Completed && t.DueAfter(now)
	case domain.ViewCalendar:
		return t.DueDate != nil
	default:
		return true
	}
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, domain.NewValidationError("title", "must not be empty")
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, http.MethodPost, "/api/tasks", created)
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), task)
	return task, nil
}

// ToggleTask flips the completion flag in place.
func (uc *UseCase) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	return uc.UpdateTask(ctx, task)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil)
	return nil
}

// record captures the intended backend call; failures are logged and never
// surface to the caller.
func (uc *UseCase) record(ctx context.Context, method, path string, body interface{}) {
	if uc.outbox == nil {
		return
	}
	if err := uc.outbox.Record(ctx, method, path, body); err != nil {
		uc.logger.Warn("failed to record backend operation",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
	}
}
