package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "vetclinic/internal/adapters/storage/memory"
	pg "vetclinic/internal/adapters/storage/postgres"
	"vetclinic/internal/domain/accounts"
	"vetclinic/internal/domain/appointments"
	"vetclinic/internal/domain/billing"
	"vetclinic/internal/domain/catalog"
	"vetclinic/internal/domain/clients"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/treatments"
	"vetclinic/internal/domain/vets"
	"vetclinic/internal/middleware"
	"vetclinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vetclinic/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	CORSOrigin string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)

	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		accountRepo     accounts.Repository
		clientRepo      clients.Repository
		vetRepo         vets.Repository
		petRepo         pets.Repository
		catalogRepo     catalog.Repository
		appointmentRepo appointments.Repository
		billingRepo     billing.Repository
		treatmentRepo   treatments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		accountRepo = pg.NewAccountsRepo(db)
		clientRepo = pg.NewClientsRepo(db)
		vetRepo = pg.NewVetsRepo(db)
		petRepo = pg.NewPetsRepo(db)
		catalogRepo = pg.NewCatalogRepo(db)
		appointmentRepo = pg.NewAppointmentsRepo(db)
		billingRepo = pg.NewBillingRepo(db)
		treatmentRepo = pg.NewTreatmentsRepo(db)
	} else {
		accountRepo = mem.NewAccountRepo()
		clientRepo = mem.NewClientRepo()
		vetRepo = mem.NewVetRepo()
		petRepo = mem.NewPetRepo()
		catalogRepo = mem.NewCatalogRepo()
		appointmentRepo = mem.NewAppointmentRepo()
		billingRepo = mem.NewBillingRepo()
		treatmentRepo = mem.NewTreatmentRepo()
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountRepo)
	clientsSvc := clients.NewService(clientRepo)
	vetsSvc := vets.NewService(vetRepo)
	petsSvc := pets.NewService(petRepo)
	catalogSvc := catalog.NewService(catalogRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo)
	billingSvc := billing.NewService(billingRepo)
	treatmentsSvc := treatments.NewService(treatmentRepo)

	r.Route("/api", func(api chi.Router) {
		// Rutas públicas: registro, logins y lo que consume la página
		// sin sesión. catalog y vets cortan por ruta adentro.
		accounts.RegisterPublicRoutes(api, accountsSvc, clientsSvc, opts.TokenIssuer)
		vets.RegisterPublicRoutes(api, vetsSvc, opts.TokenIssuer)
		catalog.RegisterRoutes(api, catalogSvc)
		vets.RegisterRoutes(api, vetsSvc)

		// Rutas protegidas
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)

			accounts.RegisterRoutes(pr, accountsSvc)
			clients.RegisterRoutes(pr, clientsSvc)
			pets.RegisterRoutes(pr, petsSvc)
			appointments.RegisterRoutes(pr, appointmentsSvc, appointments.Deps{
				Pets:    petsSvc,
				Vets:    vetsSvc,
				Clients: clientsSvc,
				Catalog: catalogSvc,
			})
			billing.RegisterRoutes(pr, billingSvc)
			treatments.RegisterRoutes(pr, treatmentsSvc)
		})
	})

	return r
}
