package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"vetclinic/internal/adapters/storage/postgres"
	"vetclinic/internal/config"
	"vetclinic/internal/domain/catalog"
	"vetclinic/internal/domain/vets"
	"vetclinic/internal/platform/logger"
)

// Carga datos mínimos para levantar un ambiente: el catálogo base y un
// veterinario admin. Corre después de migrate y es re-ejecutable.
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

	ctx := context.Background()
	now := time.Now().UTC()

	catalogRepo := postgres.NewCatalogRepo(db)
	existing, err := catalogRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing services failed")
	}
	if len(existing) == 0 {
		base := []catalog.Entry{
			{Name: "Consulta general", Description: "Consulta médica general", Price: 15000},
			{Name: "Vacunación", Description: "Aplicación de vacuna", Price: 12000},
			{Name: "Peluquería", Description: "Baño y corte", Price: 18000},
			{Name: "Control sano", Description: "Control preventivo", Price: 10000},
		}
		for _, e := range base {
			e.ID = uuid.NewString()
			e.CreatedAt = now
			e.UpdatedAt = now
			if err := catalogRepo.Create(ctx, e); err != nil {
				log.Fatal().Err(err).Str("service", e.Name).Msg("seeding service failed")
			}
		}
		log.Info().Int("count", len(base)).Msg("catalog seeded")
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no seteados, se omite el admin")
		return
	}

	vetRepo := postgres.NewVetsRepo(db)
	if _, err := vetRepo.GetByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("email", adminEmail).Msg("admin ya existe")
		return
	} else if !errors.Is(err, vets.ErrNotFound) {
		log.Fatal().Err(err).Msg("looking up admin failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashing admin password failed")
	}

	admin := vets.Vet{
		Email:        adminEmail,
		Name:         "Administrador",
		Status:       vets.StatusActive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := vetRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("seeding admin failed")
	}

	log.Info().Str("email", adminEmail).Msg("admin seeded")
}
