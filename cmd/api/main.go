package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gongcha/admin-api/internal/api"
	"github.com/gongcha/admin-api/internal/core/service"
	"github.com/gongcha/admin-api/internal/infrastructure/config"
	mongodb "github.com/gongcha/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gongcha/admin-api/internal/infrastructure/db/redis"
	"github.com/gongcha/admin-api/internal/infrastructure/queue"
	"github.com/gongcha/admin-api/pkg/logger"
)

const auditWorkers = 4

// @title        Gong Cha Admin API
// @version      1.0
// @description  Administrative API for the Gong Cha loyalty and store-management system.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- External clients, constructed once and injected everywhere ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Index bootstrap ---
	if err := mongodb.NewCredentialRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("credential indexes failed")
	}
	if err := mongodb.NewMemberRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("member indexes failed")
	}
	if err := mongodb.NewStaffRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("staff indexes failed")
	}

	// --- Async audit pipeline ---
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(auditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("admin api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("admin api stopped")
}
