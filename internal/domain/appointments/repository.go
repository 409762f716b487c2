package appointments

import "context"

// Filter acota List. Campos vacíos no filtran.
type Filter struct {
	ClientID string
	VetEmail string
	Date     string
}

// Repository persiste reservas. Create y Update deben devolver
// ErrSlotTaken cuando otra reserva no cancelada del mismo veterinario ya
// ocupa (fecha, hora); el chequeo y la escritura son una sola unidad
// atómica en cada implementación (índice único en Postgres, sección
// crítica en memoria), nunca un read-then-write separado.
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, f Filter) ([]Appointment, error)
	Delete(ctx context.Context, id string) error
}
