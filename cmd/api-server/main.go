package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campushours/officehours/internal/api"
	"github.com/campushours/officehours/internal/config"
	"github.com/campushours/officehours/internal/db"
	"github.com/campushours/officehours/internal/identity"
	"github.com/campushours/officehours/internal/logging"
	redisclient "github.com/campushours/officehours/internal/redis"
	"github.com/campushours/officehours/internal/scheduling"
	"github.com/campushours/officehours/internal/user"
)

const version = "0.2.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load error: " + err.Error())
	}

	log, err := logging.NewLogger(cfg.Env)
	if err != nil {
		panic("logger init error: " + err.Error())
	}
	defer log.Sync()

	log.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("version", version),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	log.Info("connected to Postgres")

	migCtx, cancelMig := context.WithTimeout(rootCtx, 30*time.Second)
	err = db.Migrate(migCtx, pgPool)
	cancelMig()
	if err != nil {
		log.Fatal("migration error", zap.Error(err))
	}
	log.Info("migrations applied")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("error closing redis", zap.Error(err))
		}
	}()
	log.Info("connected to Redis")

	tokens := identity.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	userRepo := user.NewPgRepository(pgPool)
	userSvc := user.NewService(userRepo, tokens)

	locker := redisclient.NewRedisProfessorLocker(rdb, cfg.LockTTL)
	schedRepo := scheduling.NewPgRepository(pgPool)
	schedSvc := scheduling.NewService(schedRepo, userRepo, locker)

	router := api.NewRouter(api.RouterConfig{
		Scheduling: schedSvc,
		Users:      userSvc,
		Tokens:     tokens,
		Logger:     log,
		PgPool:     pgPool,
		Redis:      rdb,
		Env:        cfg.Env,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("http server started", zap.String("addr", srv.Addr))

	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server stopped with error", zap.Error(err))
		}
	}

	log.Info("api-server stopped")
}
