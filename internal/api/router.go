package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campushours/officehours/internal/identity"
	"github.com/campushours/officehours/internal/scheduling"
	"github.com/campushours/officehours/internal/user"
)

type RouterConfig struct {
	Scheduling *scheduling.Service
	Users      *user.Service
	Tokens     *identity.TokenManager
	Logger     *zap.Logger
	PgPool     *pgxpool.Pool
	Redis      *redis.Client
	Env        string
	Version    string
}

func NewRouter(cfg RouterConfig) http.Handler {
	validate := validator.New()

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public auth endpoints
	r.Post("/register", registerHandler(cfg.Users, validate))
	r.Post("/login", loginHandler(cfg.Users, validate))

	// Authenticated scheduling endpoints
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(cfg.Tokens))

		r.Post("/availability", createWindowHandler(cfg.Scheduling, validate))
		r.Get("/professors/{id}/availability", listWindowsHandler(cfg.Scheduling))

		r.Post("/appointments", bookAppointmentHandler(cfg.Scheduling, validate))
		r.Get("/appointments", listAppointmentsHandler(cfg.Scheduling))
		r.Put("/appointments/{id}", cancelAppointmentHandler(cfg.Scheduling))
	})

	return r
}
