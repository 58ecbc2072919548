package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/config"
	dbpkg "github.com/pro-master/backend/internal/db"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/infra/tokenstore"
	"github.com/pro-master/backend/internal/logger"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/routes"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// TOKEN STORE
	// ======================================================
	var tokens tokenstore.Store = tokenstore.NewNoop(zl)
	if cfg.RedisURL != "" {
		client, err := tokenstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("redis unavailable", zap.Error(err))
		}
		defer client.Close()
		tokens = tokenstore.NewRedisStore(client)
	}

	// ======================================================
	// IMAGE STORAGE
	// ======================================================
	var images storage.ImageStorage
	if cfg.S3Bucket != "" {
		images = storage.NewS3Storage(storage.NewS3Client(cfg), cfg, zl)
	} else {
		zl.Warn("S3_BUCKET is empty, images are kept in memory")
		images = storage.NewMemory(cfg.ImageMaxBytes)
	}

	dispatcher := audit.NewDispatcher(audit.New(db), zl)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zl), middleware.CORS(cfg))

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     zl,
		Storage: images,
		Tokens:  tokens,
		Audit:   dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
	dispatcher.Close()
}
