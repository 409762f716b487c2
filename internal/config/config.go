package config

import (
	"os"
	"strings"
	"time"
)

// Config agrupa todo lo que el proceso lee del entorno al arrancar.
// No hay hot reload: lo que se lee acá es lo que corre.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigin string

	AppName  string
	Env      string
	LogLevel string
}

func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    parseTTL(os.Getenv("TOKEN_TTL")),
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
		AppName:     getenv("APP_NAME", "vetclinic-api"),
		Env:         getenv("APP_ENV", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// parseTTL acepta duraciones Go ("24h", "90m"). Vacío o inválido => 0,
// y el issuer aplica su default.
func parseTTL(s string) time.Duration {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
