package postgres

import (
	"context"
	"database/sql"

	"vetclinic/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Create(ctx context.Context, e catalog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, name, description, price, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.Name, e.Description, e.Price, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *CatalogRepo) Update(ctx context.Context, e catalog.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET name = $2, description = $3, price = $4, updated_at = $5
		WHERE id = $1
	`, e.ID, e.Name, e.Description, e.Price, e.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)

	var e catalog.Entry
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Price, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Entry{}, catalog.ErrNotFound
		}
		return catalog.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepo) List(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Entry, 0)
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Price, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
