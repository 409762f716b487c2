package appointments

import "time"

// Status del ciclo de vida de una reserva. Solo las reservas no
// canceladas bloquean el cupo del veterinario.
// @Enum scheduled, cancelled, completed
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Appointment es una reserva: una mascota atendida por un veterinario
// para un servicio, en una fecha y hora puntual.
//
// Date va normalizada "YYYY-MM-DD" y Time "HH:MM" (sin segundos); la
// normalización ocurre al entrar al servicio, así la comparación de
// cupos es siempre exacta.
type Appointment struct {
	ID string

	ClientID  string
	PetID     string
	VetEmail  string
	ServiceID string

	Date string
	Time string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
