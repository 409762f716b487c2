package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"vetclinic/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// Create inserta la reserva. El índice único parcial
// appointments_vet_slot_key (vet_email, date, time WHERE status <>
// 'cancelled') hace del chequeo de cupo y la inserción una sola
// operación: dos inserts concurrentes para el mismo cupo dejan
// exactamente uno adentro.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, client_id, pet_id, vet_email, service_id,
			date, time, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID, a.ClientID, a.PetID, a.VetEmail, a.ServiceID,
		a.Date, a.Time, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	if isUniqueViolation(err, "appointments_vet_slot_key") {
		return appointments.ErrSlotTaken
	}
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET client_id = $2, pet_id = $3, vet_email = $4, service_id = $5,
			date = $6, time = $7, status = $8, updated_at = $9
		WHERE id = $1
	`,
		a.ID, a.ClientID, a.PetID, a.VetEmail, a.ServiceID,
		a.Date, a.Time, string(a.Status), a.UpdatedAt,
	)
	if isUniqueViolation(err, "appointments_vet_slot_key") {
		return appointments.ErrSlotTaken
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, pet_id, vet_email, service_id,
			to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
			status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	query := `
		SELECT id, client_id, pet_id, vet_email, service_id,
			to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
			status, created_at, updated_at
		FROM appointments
		WHERE 1=1`
	args := []any{}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.VetEmail != "" {
		args = append(args, f.VetEmail)
		query += fmt.Sprintf(" AND vet_email = $%d", len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		query += fmt.Sprintf(" AND date = $%d::date", len(args))
	}
	query += " ORDER BY date ASC, time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func scanAppointment(row interface{ Scan(...any) error }) (appointments.Appointment, error) {
	var (
		a      appointments.Appointment
		status string
	)
	if err := row.Scan(
		&a.ID, &a.ClientID, &a.PetID, &a.VetEmail, &a.ServiceID,
		&a.Date, &a.Time, &status, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	a.Status = appointments.Status(status)
	return a, nil
}
