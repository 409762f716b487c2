package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic/internal/domain/accounts"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			email, password_hash, rut, name, address, phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.Email, a.PasswordHash, a.RUT, a.Name, a.Address, a.Phone,
		a.CreatedAt, a.UpdatedAt,
	)
	// El service pre-chequea el email, pero dos registros simultáneos
	// igual pueden chocar contra la pk.
	if isUniqueViolation(err, "") {
		return accounts.ErrEmailTaken
	}
	return err
}

func (r *AccountsRepo) Update(ctx context.Context, a accounts.Account) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET password_hash = $2, rut = $3, name = $4, address = $5, phone = $6,
			updated_at = $7
		WHERE email = $1
	`,
		a.Email, a.PasswordHash, a.RUT, a.Name, a.Address, a.Phone, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return accounts.Account{}, accounts.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT email, password_hash, rut, name, address, phone, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`, email)

	var a accounts.Account
	if err := row.Scan(
		&a.Email, &a.PasswordHash, &a.RUT, &a.Name, &a.Address, &a.Phone,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}

func (r *AccountsRepo) List(ctx context.Context) ([]accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email, password_hash, rut, name, address, phone, created_at, updated_at
		FROM accounts
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accounts.Account, 0)
	for rows.Next() {
		var a accounts.Account
		if err := rows.Scan(
			&a.Email, &a.PasswordHash, &a.RUT, &a.Name, &a.Address, &a.Phone,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountsRepo) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE email = $1`, email)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}
