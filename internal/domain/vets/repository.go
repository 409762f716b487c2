package vets

import "context"

type Repository interface {
	Create(ctx context.Context, v Vet) error
	Update(ctx context.Context, v Vet) error
	GetByEmail(ctx context.Context, email string) (Vet, error)
	List(ctx context.Context) ([]Vet, error)
	ListActive(ctx context.Context) ([]Vet, error)
	Delete(ctx context.Context, email string) error
}
