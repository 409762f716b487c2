package treatments

import "time"

// Treatment es el registro clínico asociado a una boleta: diagnóstico,
// medicamentos e indicaciones de la atención.
type Treatment struct {
	ID        string
	InvoiceID string

	Date        string // YYYY-MM-DD
	Description string
	Medications string
	Therapy     string
	Diagnosis   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
