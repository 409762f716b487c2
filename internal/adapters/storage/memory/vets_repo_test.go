package memory

import (
	"context"
	"errors"
	"testing"

	"vetclinic/internal/domain/vets"
)

func TestVetRepo_CreateDuplicateEmail(t *testing.T) {
	repo := NewVetRepo()
	ctx := context.Background()

	v := vets.Vet{Email: "dra@clinic.cl", Name: "Dra. Queveque", Status: vets.StatusActive}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("primer create: %v", err)
	}

	err := repo.Create(ctx, v)
	if !errors.Is(err, vets.ErrEmailTaken) {
		t.Fatalf("duplicado: quería ErrEmailTaken, vino %v", err)
	}
}
