package billing

import "context"

// Repository persiste detalles y boletas. CreateInvoice devuelve
// ErrDetailInvoiced si el detalle ya tiene boleta.
type Repository interface {
	CreateDetail(ctx context.Context, d Detail) error
	UpdateDetail(ctx context.Context, d Detail) error
	GetDetailByID(ctx context.Context, id string) (Detail, error)
	ListDetails(ctx context.Context, appointmentID string) ([]Detail, error)
	DeleteDetail(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, inv Invoice) error
	UpdateInvoice(ctx context.Context, inv Invoice) error
	GetInvoiceByID(ctx context.Context, id string) (Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}
