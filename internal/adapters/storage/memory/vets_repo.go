package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic/internal/domain/vets"
)

type vetRepo struct {
	mu      sync.RWMutex
	byEmail map[string]vets.Vet
}

func NewVetRepo() vets.Repository {
	return &vetRepo{
		byEmail: make(map[string]vets.Vet),
	}
}

func (r *vetRepo) Create(ctx context.Context, v vets.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.Email) == "" {
		return errors.New("vet email required")
	}
	if _, exists := r.byEmail[v.Email]; exists {
		return vets.ErrEmailTaken
	}
	r.byEmail[v.Email] = v
	return nil
}

func (r *vetRepo) Update(ctx context.Context, v vets.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[v.Email]; !exists {
		return vets.ErrNotFound
	}
	r.byEmail[v.Email] = v
	return nil
}

func (r *vetRepo) GetByEmail(ctx context.Context, email string) (vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, nil
}

func (r *vetRepo) List(ctx context.Context) ([]vets.Vet, error) {
	return r.list(func(vets.Vet) bool { return true }), nil
}

func (r *vetRepo) ListActive(ctx context.Context) ([]vets.Vet, error) {
	return r.list(func(v vets.Vet) bool { return v.Status == vets.StatusActive }), nil
}

func (r *vetRepo) list(keep func(vets.Vet) bool) []vets.Vet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.byEmail))
	for _, v := range r.byEmail {
		if keep(v) {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

func (r *vetRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; !exists {
		return vets.ErrNotFound
	}
	delete(r.byEmail, email)
	return nil
}
