package billing

import "time"

// Detail es el detalle de una reserva atendida: qué servicio se cobró,
// a qué precio, con observaciones libres.
type Detail struct {
	ID            string
	AppointmentID string
	ServiceID     string

	Price int
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Invoice (boleta) cierra un detalle de reserva. Un detalle admite a lo
// más una boleta.
type Invoice struct {
	ID       string
	DetailID string

	PaymentDate string // YYYY-MM-DD
	Total       int

	CreatedAt time.Time
	UpdatedAt time.Time
}
