package clients

import "time"

// Client es la ficha de un dueño de mascotas.
// RUT es opcional pero único cuando viene (se usa solo como dato de
// identificación, nunca como clave foránea).
type Client struct {
	ID string

	RUT     string
	Name    string
	Address string
	Phone   string
	Email   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
