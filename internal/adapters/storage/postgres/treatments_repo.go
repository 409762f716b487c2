package postgres

import (
	"context"
	"database/sql"

	"vetclinic/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, invoice_id, date, description, medications, therapy,
			diagnosis, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID, t.InvoiceID, t.Date, t.Description, t.Medications, t.Therapy,
		t.Diagnosis, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET invoice_id = $2, date = $3, description = $4, medications = $5,
			therapy = $6, diagnosis = $7, updated_at = $8
		WHERE id = $1
	`,
		t.ID, t.InvoiceID, t.Date, t.Description, t.Medications, t.Therapy,
		t.Diagnosis, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, invoice_id, to_char(date, 'YYYY-MM-DD'), description,
			medications, therapy, diagnosis, created_at, updated_at
		FROM treatments
		WHERE id = $1
	`, id)

	var t treatments.Treatment
	if err := row.Scan(
		&t.ID, &t.InvoiceID, &t.Date, &t.Description, &t.Medications,
		&t.Therapy, &t.Diagnosis, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) List(ctx context.Context, invoiceID string) ([]treatments.Treatment, error) {
	query := `
		SELECT id, invoice_id, to_char(date, 'YYYY-MM-DD'), description,
			medications, therapy, diagnosis, created_at, updated_at
		FROM treatments`
	args := []any{}
	if invoiceID != "" {
		query += " WHERE invoice_id = $1"
		args = append(args, invoiceID)
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		var t treatments.Treatment
		if err := rows.Scan(
			&t.ID, &t.InvoiceID, &t.Date, &t.Description, &t.Medications,
			&t.Therapy, &t.Diagnosis, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}
