package vets

import "time"

// Status indica si el veterinario atiende actualmente.
// @Enum active, inactive
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Vet es un veterinario de la clínica, con email como clave.
// Las cuentas de veterinario son también las cuentas de administración.
type Vet struct {
	Email        string
	Name         string
	Specialty    string
	Status       Status
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
