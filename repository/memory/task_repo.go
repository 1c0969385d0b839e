package memory

import (
	"context"
	"sync"
	"time"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type taskRepository struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	lastID int64
	now    func() time.Time
}

// NewTaskRepository returns an in-memory TaskRepository preserving
// insertion order.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{now: time.Now}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := cloneTask(r.tasks[i])
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.ID == 0 {
		task.ID = r.nextID(now)
	} else if task.ID > r.lastID {
		r.lastID = task.ID
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	r.tasks = append(r.tasks, cloneTask(*task))
	created := cloneTask(*task)
	return &created, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			if task.CreatedAt.IsZero() {
				task.CreatedAt = r.tasks[i].CreatedAt
			}
			r.tasks[i] = cloneTask(*task)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *taskRepository) ReplaceTag(ctx context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		tags := r.tasks[i].Tags
		out := tags[:0]
		for _, tag := range tags {
			switch {
			case tag != oldName:
				out = append(out, tag)
			case newName != "" && !contains(out, newName):
				out = append(out, newName)
			}
		}
		// A later occurrence of newName may still follow a rewritten slot.
		r.tasks[i].Tags = dedupe(out)
	}
	return nil
}

// nextID derives a monotonic-ish identifier from the creation time,
// bumping past the previous one on same-millisecond creates.
func (r *taskRepository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func cloneTask(t domain.Task) domain.Task {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

func contains(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

func dedupe(tags []string) []string {
	out := tags[:0]
	for _, t := range tags {
		if !contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
