package memory

import (
	"context"
	"sync"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository"
)

type tagRepository struct {
	mu   sync.RWMutex
	tags []domain.Tag
}

// NewTagRepository returns an in-memory TagRepository, optionally seeded.
func NewTagRepository(seed ...domain.Tag) repository.TagRepository {
	r := &tagRepository{}
	r.tags = append(r.tags, seed...)
	return r
}

// DemoTags returns the tag set the application starts with.
func DemoTags() []domain.Tag {
	return []domain.Tag{
		{Name: "high", Color: "#e74c3c"},
		{Name: "medium", Color: "#f39c12"},
		{Name: "low", Color: "#2ecc71"},
	}
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tags {
		if r.tags[i].Name == name {
			tag := r.tags[i]
			return &tag, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Tag(nil), r.tags...), nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if tag == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tags {
		if r.tags[i].Name == tag.Name {
			return nil, domain.ErrDuplicateTag
		}
	}
	r.tags = append(r.tags, *tag)
	created := *tag
	return &created, nil
}

func (r *tagRepository) Rename(ctx context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tags {
		if r.tags[i].Name == newName && oldName != newName {
			return domain.ErrDuplicateTag
		}
	}
	for i := range r.tags {
		if r.tags[i].Name == oldName {
			r.tags[i].Name = newName
			return nil
		}
	}
	return domain.ErrTagNotFound
}

func (r *tagRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tags {
		if r.tags[i].Name == name {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return nil
		}
	}
	return domain.ErrTagNotFound
}
