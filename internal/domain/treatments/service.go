package treatments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("treatment not found")
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
	InvoiceID   string
	Date        string
	Description string
	Medications string
	Therapy     string
	Diagnosis   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Treatment, error) {
	if strings.TrimSpace(in.InvoiceID) == "" {
		return Treatment{}, ErrInvalidInput
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return Treatment{}, err
	}

	now := s.now()
	t := Treatment{
		ID:          uuid.NewString(),
		InvoiceID:   strings.TrimSpace(in.InvoiceID),
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Medications: strings.TrimSpace(in.Medications),
		Therapy:     strings.TrimSpace(in.Therapy),
		Diagnosis:   strings.TrimSpace(in.Diagnosis),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

type UpdateInput struct {
	Date        *string
	Description *string
	Medications *string
	Therapy     *string
	Diagnosis   *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Treatment, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}

	if in.Date != nil {
		date, err := normalizeDate(*in.Date)
		if err != nil {
			return Treatment{}, err
		}
		t.Date = date
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Medications != nil {
		t.Medications = strings.TrimSpace(*in.Medications)
	}
	if in.Therapy != nil {
		t.Therapy = strings.TrimSpace(*in.Therapy)
	}
	if in.Diagnosis != nil {
		t.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List con invoiceID vacío devuelve todos los tratamientos.
func (s *Service) List(ctx context.Context, invoiceID string) ([]Treatment, error) {
	return s.repo.List(ctx, strings.TrimSpace(invoiceID))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", ErrInvalidInput
	}
	return t.Format("2006-01-02"), nil
}
