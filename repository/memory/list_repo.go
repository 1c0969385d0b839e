package memory

import (
	"context"
	"sync"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type listRepository struct {
	mu    sync.RWMutex
	lists []domain.List
}

// NewListRepository returns an in-memory ListRepository, optionally seeded.
func NewListRepository(seed ...domain.List) repository.ListRepository {
	r := &listRepository{}
	for _, l := range seed {
		r.lists = append(r.lists, cloneList(l))
	}
	return r
}

// DemoLists returns the two lists the application starts with.
func DemoLists() []domain.List {
	return []domain.List{
		{ID: "personal", Name: "Personal", Color: "#9b59b6"},
		{ID: "work", Name: "Work", Color: "#3498db"},
	}
}

func (r *listRepository) GetByID(ctx context.Context, id string) (*domain.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lists {
		if r.lists[i].ID == id {
			list := cloneList(r.lists[i])
			return &list, nil
		}
	}
	return nil, domain.ErrListNotFound
}

func (r *listRepository) List(ctx context.Context) ([]domain.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.List, 0, len(r.lists))
	for _, l := range r.lists {
		out = append(out, cloneList(l))
	}
	return out, nil
}

func (r *listRepository) Create(ctx context.Context, list *domain.List) (*domain.List, error) {
	if list == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lists {
		if r.lists[i].ID == list.ID {
			return nil, domain.ErrDuplicateList
		}
	}
	r.lists = append(r.lists, cloneList(*list))
	created := cloneList(*list)
	return &created, nil
}

func (r *listRepository) Update(ctx context.Context, list *domain.List) error {
	if list == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lists {
		if r.lists[i].ID == list.ID {
			r.lists[i] = cloneList(*list)
			return nil
		}
	}
	return domain.ErrListNotFound
}

func (r *listRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lists {
		if r.lists[i].ID == id {
			r.lists = append(r.lists[:i], r.lists[i+1:]...)
			return nil
		}
	}
	return domain.ErrListNotFound
}

func cloneList(l domain.List) domain.List {
	if l.Shares != nil {
		l.Shares = append([]domain.Share(nil), l.Shares...)
	}
	return l
}
