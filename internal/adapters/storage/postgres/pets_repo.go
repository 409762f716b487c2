package postgres

import (
	"context"
	"database/sql"

	"vetclinic/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, client_id, vet_email, name, species, breed, sex,
			age, weight, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID, p.ClientID, toNullString(p.VetEmail), p.Name, p.Species, p.Breed,
		string(p.Sex), toNullInt(p.Age), toNullFloat(p.Weight),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET client_id = $2, vet_email = $3, name = $4, species = $5,
			breed = $6, sex = $7, age = $8, weight = $9, updated_at = $10
		WHERE id = $1
	`,
		p.ID, p.ClientID, toNullString(p.VetEmail), p.Name, p.Species,
		p.Breed, string(p.Sex), toNullInt(p.Age), toNullFloat(p.Weight),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, vet_email, name, species, breed, sex,
			age, weight, created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err == sql.ErrNoRows {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, "", nil)
}

func (r *PetsRepo) ListByClient(ctx context.Context, clientID string) ([]pets.Pet, error) {
	return r.list(ctx, "WHERE client_id = $1", []any{clientID})
}

func (r *PetsRepo) list(ctx context.Context, where string, args []any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, vet_email, name, species, breed, sex,
			age, weight, created_at, updated_at
		FROM pets
		`+where+`
		ORDER BY created_at ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(row interface{ Scan(...any) error }) (pets.Pet, error) {
	var (
		p        pets.Pet
		vetEmail sql.NullString
		sex      string
		age      sql.NullInt64
		weight   sql.NullFloat64
	)
	if err := row.Scan(
		&p.ID, &p.ClientID, &vetEmail, &p.Name, &p.Species, &p.Breed, &sex,
		&age, &weight, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.VetEmail = vetEmail.String
	p.Sex = pets.Sex(sex)
	if age.Valid {
		n := int(age.Int64)
		p.Age = &n
	}
	if weight.Valid {
		w := weight.Float64
		p.Weight = &w
	}
	return p, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
