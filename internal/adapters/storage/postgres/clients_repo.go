package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (
			id, rut, name, address, phone, email,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID, c.RUT, c.Name, c.Address, c.Phone, c.Email,
		c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err, "clients_rut_key") {
		return clients.ErrDuplicateRUT
	}
	return err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET rut = $2, name = $3, address = $4, phone = $5, email = $6,
			updated_at = $7
		WHERE id = $1
	`,
		c.ID, c.RUT, c.Name, c.Address, c.Phone, c.Email, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "clients_rut_key") {
			return clients.ErrDuplicateRUT
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	return r.getWhere(ctx, "id = $1", strings.TrimSpace(id))
}

func (r *ClientsRepo) GetByEmail(ctx context.Context, email string) (clients.Client, error) {
	return r.getWhere(ctx, "email = $1", strings.TrimSpace(email))
}

func (r *ClientsRepo) getWhere(ctx context.Context, where, arg string) (clients.Client, error) {
	if arg == "" {
		return clients.Client{}, clients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, rut, name, address, phone, email, created_at, updated_at
		FROM clients
		WHERE `+where, arg)

	var c clients.Client
	if err := row.Scan(
		&c.ID, &c.RUT, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return clients.Client{}, clients.ErrNotFound
		}
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, rut, name, address, phone, email, created_at, updated_at
		FROM clients
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		var c clients.Client
		if err := rows.Scan(
			&c.ID, &c.RUT, &c.Name, &c.Address, &c.Phone, &c.Email,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}
