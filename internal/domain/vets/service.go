package vets

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("vet not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrInactive       = errors.New("vet is inactive")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Email     string
	Name      string
	Specialty string
	Password  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Vet, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Password) == "" {
		return Vet{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Vet{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Vet{}, err
	}

	now := s.now()
	v := Vet{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Specialty:    strings.TrimSpace(in.Specialty),
		Status:       StatusActive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

type UpdateInput struct {
	Name      *string
	Specialty *string
	Status    *string
	Password  *string
}

func (s *Service) Update(ctx context.Context, email string, in UpdateInput) (Vet, error) {
	v, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Vet{}, ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Vet{}, ErrInvalidInput
		}
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specialty != nil {
		v.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if st != StatusActive && st != StatusInactive {
			return Vet{}, ErrInvalidInput
		}
		v.Status = st
	}
	if in.Password != nil {
		if strings.TrimSpace(*in.Password) == "" {
			return Vet{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return Vet{}, err
		}
		v.PasswordHash = string(hash)
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

// Authenticate valida credenciales de veterinario. Un veterinario
// inactivo no puede iniciar sesión aunque la password sea correcta.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Vet, error) {
	v, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Vet{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) != nil {
		return Vet{}, ErrBadCredentials
	}
	if v.Status != StatusActive {
		return Vet{}, ErrInactive
	}
	return v, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Vet, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Vet{}, ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]Vet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Vet, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Delete(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, email)
}
