package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")

	// ErrSlotTaken: el veterinario ya tiene una reserva no cancelada en
	// esa fecha y hora.
	ErrSlotTaken = errors.New("slot already taken")
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
	ClientID  string
	PetID     string
	VetEmail  string
	ServiceID string
	Date      string
	Time      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(in.ClientID) == "" ||
		strings.TrimSpace(in.PetID) == "" ||
		strings.TrimSpace(in.VetEmail) == "" ||
		strings.TrimSpace(in.ServiceID) == "" {
		return Appointment{}, ErrInvalidInput
	}

	date, err := normalizeDate(in.Date)
	if err != nil {
		return Appointment{}, err
	}
	hour, err := NormalizeTime(in.Time)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		ClientID:  strings.TrimSpace(in.ClientID),
		PetID:     strings.TrimSpace(in.PetID),
		VetEmail:  strings.ToLower(strings.TrimSpace(in.VetEmail)),
		ServiceID: strings.TrimSpace(in.ServiceID),
		Date:      date,
		Time:      hour,
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// El repo resuelve el conflicto de cupo de forma atómica.
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

type UpdateInput struct {
	PetID     *string
	VetEmail  *string
	ServiceID *string
	Date      *string
	Time      *string
	Status    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.PetID != nil {
		if strings.TrimSpace(*in.PetID) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.PetID = strings.TrimSpace(*in.PetID)
	}
	if in.VetEmail != nil {
		if strings.TrimSpace(*in.VetEmail) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.VetEmail = strings.ToLower(strings.TrimSpace(*in.VetEmail))
	}
	if in.ServiceID != nil {
		if strings.TrimSpace(*in.ServiceID) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.ServiceID = strings.TrimSpace(*in.ServiceID)
	}
	if in.Date != nil {
		date, err := normalizeDate(*in.Date)
		if err != nil {
			return Appointment{}, err
		}
		a.Date = date
	}
	if in.Time != nil {
		hour, err := NormalizeTime(*in.Time)
		if err != nil {
			return Appointment{}, err
		}
		a.Time = hour
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if st != StatusScheduled && st != StatusCancelled && st != StatusCompleted {
			return Appointment{}, ErrInvalidInput
		}
		a.Status = st
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Cancel marca la reserva como cancelada; el cupo del veterinario queda
// libre para otra reserva.
func (s *Service) Cancel(ctx context.Context, id string) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	// Idempotente
	if a.Status == StatusCancelled {
		return a, nil
	}

	a.Status = StatusCancelled
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve reservas ordenadas por (fecha, hora); ese orden alimenta
// directo la grilla del calendario.
func (s *Service) List(ctx context.Context, f Filter) ([]Appointment, error) {
	if f.Date != "" {
		date, err := normalizeDate(f.Date)
		if err != nil {
			return nil, err
		}
		f.Date = date
	}
	f.VetEmail = strings.ToLower(strings.TrimSpace(f.VetEmail))
	return s.repo.List(ctx, f)
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

// NormalizeTime acepta "HH:MM" o "HH:MM:SS" y devuelve siempre "HH:MM".
// El original comparaba a veces con segundos y a veces sin, lo que
// producía falsos negativos; acá hay un solo formato canónico.
func NormalizeTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("15:04", raw); err == nil {
		return t.Format("15:04"), nil
	}
	if t, err := time.Parse("15:04:05", raw); err == nil {
		return t.Format("15:04"), nil
	}
	return "", ErrInvalidInput
}
