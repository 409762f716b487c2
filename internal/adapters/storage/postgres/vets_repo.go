package postgres

import (
	"context"
	"database/sql"

	"vetclinic/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

func (r *VetsRepo) Create(ctx context.Context, v vets.Vet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vets (
			email, name, specialty, status, password_hash,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		v.Email, v.Name, v.Specialty, string(v.Status), v.PasswordHash,
		v.CreatedAt, v.UpdatedAt,
	)
	// El service pre-chequea el email, pero dos altas simultáneas
	// igual pueden chocar contra la pk.
	if isUniqueViolation(err, "") {
		return vets.ErrEmailTaken
	}
	return err
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Vet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vets
		SET name = $2, specialty = $3, status = $4, password_hash = $5,
			updated_at = $6
		WHERE email = $1
	`,
		v.Email, v.Name, v.Specialty, string(v.Status), v.PasswordHash, v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) GetByEmail(ctx context.Context, email string) (vets.Vet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, name, specialty, status, password_hash, created_at, updated_at
		FROM vets
		WHERE email = $1
	`, email)

	v, err := scanVet(row)
	if err == sql.ErrNoRows {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, err
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Vet, error) {
	return r.listWhere(ctx, "")
}

func (r *VetsRepo) ListActive(ctx context.Context) ([]vets.Vet, error) {
	return r.listWhere(ctx, "WHERE status = 'active'")
}

func (r *VetsRepo) listWhere(ctx context.Context, where string) ([]vets.Vet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email, name, specialty, status, password_hash, created_at, updated_at
		FROM vets
		`+where+`
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	for rows.Next() {
		v, err := scanVet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VetsRepo) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vets WHERE email = $1`, email)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func scanVet(row interface{ Scan(...any) error }) (vets.Vet, error) {
	var (
		v      vets.Vet
		status string
	)
	if err := row.Scan(
		&v.Email, &v.Name, &v.Specialty, &status, &v.PasswordHash,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return vets.Vet{}, err
	}
	v.Status = vets.Status(status)
	return v, nil
}
