package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "medication-adherence/docs"
	"medication-adherence/internal/adapters/objectstore/memstore"
	mem "medication-adherence/internal/adapters/storage/memory"
	pg "medication-adherence/internal/adapters/storage/postgres"
	"medication-adherence/internal/adapters/vision"
	"medication-adherence/internal/domain/alerts"
	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"
	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/objectstore"
	"medication-adherence/internal/ports/verification"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: repo de usuarios ya poblado (tests, seeds). Tiene prioridad sobre DB.
	Users users.Repository

	Logger   logger.Logger
	Oracle   verification.Oracle // default vision.Static
	Store    objectstore.Store   // default memstore
	Location *time.Location      // día calendario de referencia; default time.Local

	VerifyRatePerMinute int // default 6
	PanelConcurrency    int // default 8
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo   users.Repository
		medRepo    medications.Repository
		intakeRepo intake.Repository
		moodRepo   mood.Repository
	)

	if db := opts.DB; db != nil {
		userRepo = pg.NewUsersRepo(db)
		medRepo = pg.NewMedicationsRepo(db)
		intakeRepo = pg.NewIntakeRepo(db)
		moodRepo = pg.NewMoodRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		medRepo = mem.NewMedicationRepo()
		intakeRepo = mem.NewIntakeRepo()
		moodRepo = mem.NewMoodRepo()
	}
	if opts.Users != nil {
		userRepo = opts.Users
	}

	oracle := opts.Oracle
	if oracle == nil {
		oracle = vision.NewStatic()
	}
	store := opts.Store
	if store == nil {
		store = memstore.New()
	}
	rate := opts.VerifyRatePerMinute
	if rate <= 0 {
		rate = 6
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	medsSvc := medications.NewService(medRepo, intakeRepo, opts.Location)
	intakeSvc := intake.NewService(intake.Deps{
		Repo:        intakeRepo,
		Medications: medsSvc,
		Oracle:      oracle,
		Store:       store,
		Logger:      log,
		Location:    opts.Location,
	})
	moodSvc := mood.NewService(moodRepo, log)
	alertsSvc := alerts.NewService(alerts.Deps{
		Patients:    usersSvc,
		Intakes:     intakeRepo,
		Moods:       moodRepo,
		Logger:      log,
		Concurrency: opts.PanelConcurrency,
	})

	verifyLimiter := middleware.NewRateLimiter(rate)

	// Rutas por módulo
	r.Route("/api/v1", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc)
		medications.RegisterRoutes(api, medsSvc)
		intake.RegisterRoutes(api, intakeSvc, verifyLimiter.Middleware)
		mood.RegisterRoutes(api, moodSvc)
		alerts.RegisterRoutes(api, alertsSvc)
	})

	return r
}
