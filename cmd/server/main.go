package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/addisco/consulting-api/internal/api"
	"github.com/addisco/consulting-api/internal/infrastructure/config"
	mongodb "github.com/addisco/consulting-api/internal/infrastructure/db/mongo"
	redisdb "github.com/addisco/consulting-api/internal/infrastructure/db/redis"
	"github.com/addisco/consulting-api/internal/infrastructure/notify"
	"github.com/addisco/consulting-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Addisco Consulting API
// @version      1.0
// @description  Lead management backend for a consulting firm: public intake, staff triage, reporting.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})
	log := logger.Get()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis (rate limiting) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		// The limiter falls back to an in-process bucket, so a Redis outage at
		// boot is not fatal.
		log.Warn().Err(err).Msg("redis connection failed, rate limiting degrades to local")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Notifications ---
	emailChannel := notify.NewEmailChannel(cfg.SMTP, log)
	whatsappChannel := notify.NewWhatsAppChannel(cfg.Twilio, log)
	dispatcher := notify.NewDispatcher(0, emailChannel, whatsappChannel, cfg.AdminEmail, cfg.AdminWhatsApp, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
