package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "vets_pkey"}

	if !isUniqueViolation(dup, "") {
		t.Error("23505 con constraint vacía debería matchear")
	}
	if !isUniqueViolation(dup, "vets_pkey") {
		t.Error("23505 con la constraint exacta debería matchear")
	}
	if isUniqueViolation(dup, "appointments_vet_slot_key") {
		t.Error("constraint distinta no debería matchear")
	}

	wrapped := fmt.Errorf("insert vets: %w", dup)
	if !isUniqueViolation(wrapped, "vets_pkey") {
		t.Error("el error envuelto debería matchear vía errors.As")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("otros SQLSTATE no son violación de unicidad")
	}
	if isUniqueViolation(errors.New("boom"), "") {
		t.Error("un error cualquiera no debería matchear")
	}
	if isUniqueViolation(nil, "") {
		t.Error("nil no debería matchear")
	}
}
