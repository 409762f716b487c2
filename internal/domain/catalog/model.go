package catalog

import "time"

// Entry es un servicio del catálogo de la clínica (consulta, vacuna,
// peluquería, etc). El precio va en pesos, sin decimales.
type Entry struct {
	ID          string
	Name        string
	Description string
	Price       int

	CreatedAt time.Time
	UpdatedAt time.Time
}
