package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.Mutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

// Create chequea el cupo y escribe bajo el mismo lock: dos creates
// concurrentes para el mismo (veterinario, fecha, hora) dejan
// exactamente uno adentro, igual que el índice único en Postgres.
func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	if r.slotTakenLocked(a) {
		return appointments.ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	if r.slotTakenLocked(a) {
		return appointments.ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if f.ClientID != "" && a.ClientID != f.ClientID {
			continue
		}
		if f.VetEmail != "" && a.VetEmail != f.VetEmail {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	return out, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// slotTakenLocked asume r.mu tomado. Las canceladas no bloquean cupo.
func (r *appointmentRepo) slotTakenLocked(a appointments.Appointment) bool {
	if a.Status == appointments.StatusCancelled {
		return false
	}
	for _, other := range r.byID {
		if other.ID == a.ID || other.Status == appointments.StatusCancelled {
			continue
		}
		if other.VetEmail == a.VetEmail && other.Date == a.Date && other.Time == a.Time {
			return true
		}
	}
	return false
}
