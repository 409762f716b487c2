package auth

// Role distingue cuentas de clientes de cuentas de administración
// (veterinarios).
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	Email string
	Role  Role

	// ClientID viene solo en tokens de clientes con ficha de cliente
	// asociada (misma dirección de email).
	ClientID string
}
