package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	Update(ctx context.Context, t Treatment) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	List(ctx context.Context, invoiceID string) ([]Treatment, error)
	Delete(ctx context.Context, id string) error
}
