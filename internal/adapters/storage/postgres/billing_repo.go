package postgres

import (
	"context"
	"database/sql"

	"vetclinic/internal/domain/billing"
)

type BillingRepo struct {
	db *sql.DB
}

func NewBillingRepo(db *sql.DB) *BillingRepo {
	return &BillingRepo{db: db}
}

func (r *BillingRepo) CreateDetail(ctx context.Context, d billing.Detail) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointment_details (
			id, appointment_id, service_id, price, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, d.ID, d.AppointmentID, d.ServiceID, d.Price, d.Notes, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *BillingRepo) UpdateDetail(ctx context.Context, d billing.Detail) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointment_details
		SET appointment_id = $2, service_id = $3, price = $4, notes = $5,
			updated_at = $6
		WHERE id = $1
	`, d.ID, d.AppointmentID, d.ServiceID, d.Price, d.Notes, d.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return billing.ErrDetailNotFound
	}
	return nil
}

func (r *BillingRepo) GetDetailByID(ctx context.Context, id string) (billing.Detail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, appointment_id, service_id, price, notes, created_at, updated_at
		FROM appointment_details
		WHERE id = $1
	`, id)

	var d billing.Detail
	if err := row.Scan(
		&d.ID, &d.AppointmentID, &d.ServiceID, &d.Price, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return billing.Detail{}, billing.ErrDetailNotFound
		}
		return billing.Detail{}, err
	}
	return d, nil
}

func (r *BillingRepo) ListDetails(ctx context.Context, appointmentID string) ([]billing.Detail, error) {
	query := `
		SELECT id, appointment_id, service_id, price, notes, created_at, updated_at
		FROM appointment_details`
	args := []any{}
	if appointmentID != "" {
		query += " WHERE appointment_id = $1"
		args = append(args, appointmentID)
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]billing.Detail, 0)
	for rows.Next() {
		var d billing.Detail
		if err := rows.Scan(
			&d.ID, &d.AppointmentID, &d.ServiceID, &d.Price, &d.Notes,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *BillingRepo) DeleteDetail(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointment_details WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return billing.ErrDetailNotFound
	}
	return nil
}

// CreateInvoice inserta la boleta. invoices_detail_id_key garantiza a
// lo más una boleta por detalle.
func (r *BillingRepo) CreateInvoice(ctx context.Context, inv billing.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, detail_id, payment_date, total, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, inv.ID, inv.DetailID, inv.PaymentDate, inv.Total, inv.CreatedAt, inv.UpdatedAt)
	if isUniqueViolation(err, "invoices_detail_id_key") {
		return billing.ErrDetailInvoiced
	}
	return err
}

func (r *BillingRepo) UpdateInvoice(ctx context.Context, inv billing.Invoice) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET detail_id = $2, payment_date = $3, total = $4, updated_at = $5
		WHERE id = $1
	`, inv.ID, inv.DetailID, inv.PaymentDate, inv.Total, inv.UpdatedAt)
	if isUniqueViolation(err, "invoices_detail_id_key") {
		return billing.ErrDetailInvoiced
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return billing.ErrInvoiceNotFound
	}
	return nil
}

func (r *BillingRepo) GetInvoiceByID(ctx context.Context, id string) (billing.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, detail_id, to_char(payment_date, 'YYYY-MM-DD'), total,
			created_at, updated_at
		FROM invoices
		WHERE id = $1
	`, id)

	var inv billing.Invoice
	if err := row.Scan(
		&inv.ID, &inv.DetailID, &inv.PaymentDate, &inv.Total,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return billing.Invoice{}, billing.ErrInvoiceNotFound
		}
		return billing.Invoice{}, err
	}
	return inv, nil
}

func (r *BillingRepo) ListInvoices(ctx context.Context) ([]billing.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, detail_id, to_char(payment_date, 'YYYY-MM-DD'), total,
			created_at, updated_at
		FROM invoices
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]billing.Invoice, 0)
	for rows.Next() {
		var inv billing.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.DetailID, &inv.PaymentDate, &inv.Total,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *BillingRepo) DeleteInvoice(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return billing.ErrInvoiceNotFound
	}
	return nil
}
