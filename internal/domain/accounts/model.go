package accounts

import "time"

// Account es la cuenta de acceso de un cliente, con email como clave.
// El perfil (rut, nombre, etc.) es opcional; la ficha de cliente vive
// en el módulo clients y se asocia por email.
type Account struct {
	Email        string
	PasswordHash string

	RUT     string
	Name    string
	Address string
	Phone   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
