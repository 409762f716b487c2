package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic/internal/domain/accounts"
)

type accountRepo struct {
	mu      sync.RWMutex
	byEmail map[string]accounts.Account
}

func NewAccountRepo() accounts.Repository {
	return &accountRepo{
		byEmail: make(map[string]accounts.Account),
	}
}

func (r *accountRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.Email) == "" {
		return errors.New("account email required")
	}
	if _, exists := r.byEmail[a.Email]; exists {
		return accounts.ErrEmailTaken
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *accountRepo) Update(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[a.Email]; !exists {
		return accounts.ErrNotFound
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return accounts.Account{}, accounts.ErrNotFound
	}
	return a, nil
}

func (r *accountRepo) List(ctx context.Context) ([]accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accounts.Account, 0, len(r.byEmail))
	for _, a := range r.byEmail {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *accountRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; !exists {
		return accounts.ErrNotFound
	}
	delete(r.byEmail, email)
	return nil
}
