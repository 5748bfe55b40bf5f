package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"concesionaria/internal/api"
	"concesionaria/internal/config"
	"concesionaria/internal/repository"
	"concesionaria/internal/service"
)

func main() {
	godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	hours, err := cfg.Hours()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse dealership hours")
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up booking store")
	}

	sender := service.NewSenderService(log.Logger)
	svc := service.NewBookingService(store, sender, log.Logger, hours)

	if cfg.Reminders.Enabled {
		jobs := service.NewJobService(svc, sender, log.Logger)
		c := cron.New()
		if _, err := c.AddFunc(cfg.Reminders.Schedule, func() {
			if err := jobs.SendDailyReminders(); err != nil {
				log.Error().Err(err).Msg("Reminder job failed")
			}
		}); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Reminders.Schedule).Msg("Invalid reminder schedule")
		}
		c.Start()
	}

	bookingHandler := api.NewBookingHandler(svc)
	adminHandler := api.NewAdminHandler(svc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.GetBookingsByDay).Methods("GET")
	r.HandleFunc("/api/bookings/vin/{vin}", bookingHandler.GetBookingsByVIN).Methods("GET")

	// Admin endpoints
	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/capacity", adminHandler.GetCapacity).Methods("GET")
	admin.HandleFunc("/capacity", adminHandler.SetCapacity).Methods("PUT")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("Server running")
	log.Fatal().Err(http.ListenAndServe(addr, cors(r))).Msg("Server stopped")
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open DB: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		return repository.NewPostgresStore(db, cfg.Dealership.Capacity)
	default:
		return repository.NewMemoryStore(cfg.Dealership.Capacity), nil
	}
}
