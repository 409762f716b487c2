package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vetclinic/internal/adapters/auth/jwtauth"
	"vetclinic/internal/adapters/storage/postgres"
	"vetclinic/internal/config"
	"vetclinic/internal/platform/logger"
	"vetclinic/internal/router"
)

// @title Vet Clinic API
// @version 1.0
// @description Backend de gestión de clínica veterinaria: clientes, mascotas, reservas y boletas.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.Env, cfg.LogLevel)

	opts := router.Options{CORSOrigin: cfg.CORSOrigin}

	// Sin JWT_SECRET el gate queda en modo dev (headers X-Debug-*).
	if cfg.JWTSecret != "" {
		j := jwtauth.New(cfg.JWTSecret, cfg.TokenTTL)
		opts.AuthVerifier = j
		opts.TokenIssuer = j
	} else {
		log.Warn().Msg("JWT_SECRET no seteado: auth en modo dev")
	}

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer db.Close()
		opts.DB = db
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
