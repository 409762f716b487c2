package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	byEmail map[string]Account
}

func newTestRepo() *testRepo {
	return &testRepo{byEmail: map[string]Account{}}
}

func (r *testRepo) Create(ctx context.Context, a Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrEmailTaken
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Account) error {
	if _, ok := r.byEmail[a.Email]; !ok {
		return ErrNotFound
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Account, error) {
	out := make([]Account, 0, len(r.byEmail))
	for _, a := range r.byEmail {
		out = append(out, a)
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

func TestRegister_HashesAndLowercases(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Register(context.Background(), RegisterInput{
		Email:    " Maria@Example.com ",
		Password: "secret123",
		Name:     "Maria Perez",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", a.Email)
	assert.NotEqual(t, "secret123", a.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret123")))

	_, ok := repo.byEmail["maria@example.com"]
	assert.True(t, ok)
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.cl"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Mismo email con otra capitalización sigue siendo duplicado
	_, err = svc.Register(ctx, RegisterInput{Email: "MARIA@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate_DoesNotLeakWhichPartFailed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Password mala y cuenta inexistente devuelven el mismo error
	_, errBadPass := svc.Authenticate(ctx, "maria@example.com", "wrong")
	_, errNoUser := svc.Authenticate(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, errBadPass, ErrBadCredentials)
	assert.ErrorIs(t, errNoUser, ErrBadCredentials)

	a, err := svc.Authenticate(ctx, "Maria@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", a.Email)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "maria@example.com", "wrong", "newpass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, "maria@example.com", "secret123", "newpass")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "maria@example.com", "newpass")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "maria@example.com", "secret123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSetPassword_AdminReset(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Sin pedir la actual
	_, err = svc.SetPassword(ctx, "maria@example.com", "resetpass")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "maria@example.com", "resetpass")
	assert.NoError(t, err)

	_, err = svc.SetPassword(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}
