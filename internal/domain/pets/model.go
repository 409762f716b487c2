package pets

import "time"

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es una mascota registrada. Pertenece a exactamente un cliente y
// puede tener un veterinario asignado.
type Pet struct {
	ID       string
	ClientID string
	VetEmail string

	Name    string
	Species string
	Breed   string
	Sex     Sex

	Age    *int
	Weight *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
