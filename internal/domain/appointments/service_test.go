package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	if r.slotTaken(a) {
		return ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	if r.slotTaken(a) {
		return ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Appointment, error) {
	out := make([]Appointment, 0)
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
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) slotTaken(a Appointment) bool {
	if a.Status == StatusCancelled {
		return false
	}
	for _, other := range r.byID {
		if other.ID == a.ID || other.Status == StatusCancelled {
			continue
		}
		if other.VetEmail == a.VetEmail && other.Date == a.Date && other.Time == a.Time {
			return true
		}
	}
	return false
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		ClientID:  "client-1",
		PetID:     "pet-1",
		VetEmail:  "Vet@Clinic.cl",
		ServiceID: "svc-1",
		Date:      "2026-09-10",
		Time:      "10:00",
	}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_NormalizesFields(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "vet@clinic.cl", a.VetEmail)
	assert.Equal(t, "2026-09-10", a.Date)
	assert.Equal(t, "10:00", a.Time)
	assert.Equal(t, StatusScheduled, a.Status)
}

func TestCreate_MissingRefs(t *testing.T) {
	svc, _ := newTestService()

	for _, mutate := range []func(*CreateInput){
		func(in *CreateInput) { in.ClientID = "" },
		func(in *CreateInput) { in.PetID = " " },
		func(in *CreateInput) { in.VetEmail = "" },
		func(in *CreateInput) { in.ServiceID = "" },
	} {
		in := validInput()
		mutate(&in)
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreate_BadDateOrTime(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.Date = "10-09-2026"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = validInput()
	in.Time = "25:00"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_SlotConflict_IgnoresSecondsFormat(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// El mismo cupo escrito con segundos sigue siendo el mismo cupo
	in := validInput()
	in.Time = "10:00:00"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Otro veterinario a la misma hora no choca
	in = validInput()
	in.VetEmail = "otro@clinic.cl"
	_, err = svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCancel_FreesSlotAndIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Segunda cancelación no es error
	again, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)

	// El cupo quedó libre
	_, err = svc.Create(ctx, validInput())
	assert.NoError(t, err)
}

func TestUpdate_MoveIntoTakenSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	_ = first

	in := validInput()
	in.Time = "11:00"
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	// Mover la segunda encima de la primera choca
	taken := "10:00"
	_, err = svc.Update(ctx, second.ID, UpdateInput{Time: &taken})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Y a una hora libre funciona
	free := "12:00"
	moved, err := svc.Update(ctx, second.ID, UpdateInput{Time: &free})
	require.NoError(t, err)
	assert.Equal(t, "12:00", moved.Time)
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	bogus := "paused"
	_, err = svc.Update(ctx, a.ID, UpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10:00", want: "10:00"},
		{in: "10:00:00", want: "10:00"},
		{in: "10:00:59", want: "10:00"},
		{in: " 09:30 ", want: "09:30"},
		{in: "9:30", want: "09:30"},
		{in: "25:00", wantErr: true},
		{in: "", wantErr: true},
		{in: "10h00", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeTime(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidInput, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestList_NormalizesFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	items, err := svc.List(ctx, Filter{VetEmail: " Vet@Clinic.cl "})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.List(ctx, Filter{Date: "not-a-date"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
