package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vetclinic/internal/adapters/storage/postgres"
	"vetclinic/internal/config"
	"vetclinic/internal/platform/logger"
	"vetclinic/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.Env, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL requerido")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	if _, err := db.Exec(migrations.Schema); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Msg("schema applied")
}
