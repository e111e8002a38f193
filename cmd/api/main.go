package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/api"
	"github.com/stmarks-parish/parish-cms/internal/infrastructure/calendar"
	mongodb "github.com/stmarks-parish/parish-cms/internal/infrastructure/db/mongo"
	redisinfra "github.com/stmarks-parish/parish-cms/internal/infrastructure/db/redis"
	"github.com/stmarks-parish/parish-cms/internal/infrastructure/storage"
	"github.com/stmarks-parish/parish-cms/internal/pkg/config"
	"github.com/stmarks-parish/parish-cms/pkg/logger"
)

// @title        Parish CMS API
// @version      1.0
// @description  Backend for the St. Mark's parish website: announcements, weekly bulletins, events and member accounts.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is the one place stderr is used directly.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() { _ = rdb.Close() }()

	// --- Object storage ---
	files, err := storage.NewObjectStore(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store")
	}

	// --- External calendar ---
	feed := calendar.New(calendar.Config{
		FeedURL: cfg.Calendar.FeedURL,
		Token:   cfg.Calendar.Token,
	})

	e := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    rdb,
		Files:    files,
		Calendar: feed,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
