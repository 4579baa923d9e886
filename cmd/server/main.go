package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"proofflow-backend/internal/access"
	httpapi "proofflow-backend/internal/api/http"
	"proofflow-backend/internal/config"
	"proofflow-backend/internal/imaging"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository/postgres"
	"proofflow-backend/internal/security"
	"proofflow-backend/internal/service"
	"proofflow-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ProofFlow backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "public_base_url", cfg.Server.PublicBaseURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Ingest configuration", "workers", cfg.Ingest.Workers, "queue_size", cfg.Ingest.QueueSize, "max_pixels", cfg.Ingest.MaxPixels)

	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(shutdownCtx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(shutdownCtx, db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Media Storage
	media, err := storage.NewLocalMediaStore(storage.Config{Root: cfg.Storage.Path})
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	if err := media.EnsureLayout(); err != nil {
		logger.Error("Failed to create media directories", "root", media.Root(), "error", err)
		log.Fatalf("Failed to create media directories: %v", err)
	}
	logger.Info("Media storage ready", "root", media.Root())

	// Initialize Security
	tokens := security.NewShareTokenCodec(cfg.Auth.JWTSecret)
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)
	authorizer := access.NewAuthorizer(store.ShareRepository, tokens)

	// Initialize image pipeline; the pool outlives request contexts
	pipeline := imaging.NewPipeline(context.Background(), imaging.Config{
		Workers:   cfg.Ingest.Workers,
		QueueSize: cfg.Ingest.QueueSize,
		MaxPixels: cfg.Ingest.MaxPixels,
	})

	// Initialize Services
	albumSvc := service.NewAlbumService(store.AlbumRepository, store.SubfolderRepository, store.ImageRepository)
	uploadSvc := service.NewImageStorageService(
		store.AlbumRepository,
		store.SubfolderRepository,
		store.ImageRepository,
		media,
		pipeline,
	)
	shareSvc := service.NewShareService(service.ShareServiceConfig{
		AlbumRepo:     store.AlbumRepository,
		SubfolderRepo: store.SubfolderRepository,
		ShareRepo:     store.ShareRepository,
		ImageRepo:     store.ImageRepository,
		Authorizer:    authorizer,
		Hasher:        hasher,
		Tokens:        tokens,
		ShareURL:      cfg.AbsoluteShareURL,
	})
	mediaSvc := service.NewMediaService(store.ImageRepository, media)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		AlbumService:   albumSvc,
		UploadService:  uploadSvc,
		ShareService:   shareSvc,
		MediaService:   mediaSvc,
		Authorizer:     authorizer,
		AdminToken:     cfg.Auth.AdminToken,
		MaxUploadBytes: cfg.Storage.MaxUploadMB << 20,
		CORSOrigins:    cfg.Server.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			pipeline.Stop()
			log.Fatalf("Failed to serve: %v", err)
		}
	case <-shutdownCtx.Done():
	}

	// Graceful shutdown: stop accepting requests, then drain ingestion
	logger.Info("Shutting down...")
	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	pipeline.Stop()
	logger.Info("Server stopped")
}
