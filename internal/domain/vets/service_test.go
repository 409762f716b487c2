package vets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byEmail map[string]Vet
}

func newTestRepo() *testRepo {
	return &testRepo{byEmail: map[string]Vet{}}
}

func (r *testRepo) Create(ctx context.Context, v Vet) error {
	if _, ok := r.byEmail[v.Email]; ok {
		return ErrEmailTaken
	}
	r.byEmail[v.Email] = v
	return nil
}

func (r *testRepo) Update(ctx context.Context, v Vet) error {
	if _, ok := r.byEmail[v.Email]; !ok {
		return ErrNotFound
	}
	r.byEmail[v.Email] = v
	return nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Vet, error) {
	v, ok := r.byEmail[email]
	if !ok {
		return Vet{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) List(ctx context.Context) ([]Vet, error) {
	out := make([]Vet, 0, len(r.byEmail))
	for _, v := range r.byEmail {
		out = append(out, v)
	}
	return out, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]Vet, error) {
	out := make([]Vet, 0)
	for _, v := range r.byEmail {
		if v.Status == StatusActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, email string) error {
	if _, ok := r.byEmail[email]; !ok {
		return ErrNotFound
	}
	delete(r.byEmail, email)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate_DefaultsToActive(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.Create(context.Background(), CreateInput{
		Email:    "Dra@Clinic.cl",
		Name:     "Dra. Queveque",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "dra@clinic.cl", v.Email)
	assert.Equal(t, StatusActive, v.Status)
	assert.NotEqual(t, "secret123", v.PasswordHash)
}

func TestCreate_RequiredFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{Name: "X", Password: "p"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateInput{Email: "a@b.cl", Password: "p"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateInput{Email: "a@b.cl", Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate_InactiveVet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		Email:    "dra@clinic.cl",
		Name:     "Dra. Queveque",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Activa entra
	_, err = svc.Authenticate(ctx, "dra@clinic.cl", "secret123")
	require.NoError(t, err)

	// Desactivada no, aunque la password sea correcta
	inactive := string(StatusInactive)
	_, err = svc.Update(ctx, "dra@clinic.cl", UpdateInput{Status: &inactive})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "dra@clinic.cl", "secret123")
	assert.ErrorIs(t, err, ErrInactive)

	// Password mala sigue siendo credenciales inválidas
	_, err = svc.Authenticate(ctx, "dra@clinic.cl", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		Email:    "dra@clinic.cl",
		Name:     "Dra. Queveque",
		Password: "secret123",
	})
	require.NoError(t, err)

	bogus := "vacation"
	_, err = svc.Update(ctx, "dra@clinic.cl", UpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListActive_FiltersInactive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Email: "a@clinic.cl", Name: "A", Password: "p1234"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Email: "b@clinic.cl", Name: "B", Password: "p1234"})
	require.NoError(t, err)

	inactive := string(StatusInactive)
	_, err = svc.Update(ctx, "b@clinic.cl", UpdateInput{Status: &inactive})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a@clinic.cl", active[0].Email)
}
