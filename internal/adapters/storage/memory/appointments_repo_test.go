package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vetclinic/internal/domain/appointments"
)

func baseAppointment(id string) appointments.Appointment {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return appointments.Appointment{
		ID:        id,
		ClientID:  "client-1",
		PetID:     "pet-1",
		VetEmail:  "vet@clinic.cl",
		ServiceID: "svc-1",
		Date:      "2026-09-10",
		Time:      "10:00",
		Status:    appointments.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreate_ConcurrentSameSlot_ExactlyOneWins(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, baseAppointment(fmt.Sprintf("appt-%d", i)))
		}(i)
	}
	wg.Wait()

	var ok, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, appointments.ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if ok != 1 {
		t.Fatalf("expected exactly one winner, got %d", ok)
	}
	if taken != n-1 {
		t.Fatalf("expected %d slot conflicts, got %d", n-1, taken)
	}
}

func TestCreate_CancelledDoesNotBlockSlot(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	cancelled := baseAppointment("appt-1")
	cancelled.Status = appointments.StatusCancelled
	if err := repo.Create(ctx, cancelled); err != nil {
		t.Fatalf("create cancelled: %v", err)
	}

	if err := repo.Create(ctx, baseAppointment("appt-2")); err != nil {
		t.Fatalf("cancelled appointment should not block the slot: %v", err)
	}

	// Pero la viva sí bloquea
	err := repo.Create(ctx, baseAppointment("appt-3"))
	if !errors.Is(err, appointments.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestUpdate_CancelThenRebook(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	first := baseAppointment("appt-1")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	first.Status = appointments.StatusCancelled
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if err := repo.Create(ctx, baseAppointment("appt-2")); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	late := baseAppointment("appt-1")
	late.Time = "15:00"
	early := baseAppointment("appt-2")
	early.Time = "09:00"
	otherDay := baseAppointment("appt-3")
	otherDay.Date = "2026-09-11"

	for _, a := range []appointments.Appointment{late, early, otherDay} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	out, err := repo.List(ctx, appointments.Filter{Date: "2026-09-10"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(out))
	}
	if out[0].Time != "09:00" || out[1].Time != "15:00" {
		t.Fatalf("expected sorted by time, got %s then %s", out[0].Time, out[1].Time)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewAppointmentRepo()

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
