package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic/internal/domain/catalog"
)

type catalogRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Entry
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{
		byID: make(map[string]catalog.Entry),
	}
}

func (r *catalogRepo) Create(ctx context.Context, e catalog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("service id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("service already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *catalogRepo) Update(ctx context.Context, e catalog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return catalog.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return catalog.Entry{}, catalog.ErrNotFound
	}
	return e, nil
}

func (r *catalogRepo) List(ctx context.Context) ([]catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *catalogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return catalog.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
