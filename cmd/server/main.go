package main

import (
	"database/sql"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/AmeliaCVPS/amelia/internal/config"
	"github.com/AmeliaCVPS/amelia/internal/encounter"
	"github.com/AmeliaCVPS/amelia/internal/patient"
	"github.com/AmeliaCVPS/amelia/internal/platform/auth"
	"github.com/AmeliaCVPS/amelia/internal/platform/httplog"
	"github.com/AmeliaCVPS/amelia/internal/platform/telegram"
	"github.com/AmeliaCVPS/amelia/internal/report"
	"github.com/AmeliaCVPS/amelia/internal/triage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("config load failed")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		logger.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	logger.Info().Msg("connected to database")

	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration init failed")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("migration up failed")
	}
	logger.Info().Msg("migrations applied")

	// 2. Clients
	authManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	tgClient := telegram.NewClient(cfg.TelegramToken)
	if !tgClient.Enabled() {
		logger.Warn().Msg("TELEGRAM_BOT_TOKEN not set, urgent-triage alerts disabled")
	}

	// 3. Services
	patientRepo := patient.NewRepository(db)
	patientSvc := patient.NewService(patientRepo, authManager)
	patientHandler := patient.NewHandler(patientSvc)

	encounterRepo := encounter.NewRepository(db)
	encounterSvc := encounter.NewService(encounterRepo)
	encounterHandler := encounter.NewHandler(encounterSvc)

	reportSvc := report.NewService(tgClient, cfg.StaffChatID)
	reportHandler := report.NewHandler(reportSvc, patientSvc, encounterSvc)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	machine := triage.NewMachine(triage.NewMemoryStore(), encounterSvc, reportSvc, rng, logger)
	triageHandler := triage.NewHandler(machine)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.Middleware(logger))
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		patient.RegisterPublicRoutes(r, patientHandler)

		r.Group(func(r chi.Router) {
			r.Use(authManager.Middleware)
			patient.RegisterRoutes(r, patientHandler)
			triage.RegisterRoutes(r, triageHandler)
			encounter.RegisterPatientRoutes(r, encounterHandler)
			report.RegisterRoutes(r, reportHandler)
		})

		// The staff panel runs on the clinic intranet; it has no
		// patient login of its own.
		encounter.RegisterPanelRoutes(r, encounterHandler)
	})

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
