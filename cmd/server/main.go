package main

import (
	"alcyxob/workout-builder/internal/api"
	"alcyxob/workout-builder/internal/catalog"
	"alcyxob/workout-builder/internal/config"
	"alcyxob/workout-builder/internal/logging"
	"alcyxob/workout-builder/internal/metrics"
	"alcyxob/workout-builder/internal/repository"
	"alcyxob/workout-builder/internal/repository/mongo"
	"alcyxob/workout-builder/internal/repository/objectstore"
	"alcyxob/workout-builder/internal/service"
	"alcyxob/workout-builder/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// backend bundles the persistence chosen by storage.backend.
type backend struct {
	workoutRepo repository.WorkoutRepository
	catalogRepo repository.CatalogRepository
	fileStorage storage.FileStorage // nil disables exports
	close       func() error
}

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	logging.Setup(cfg.Log)
	log.Infof("Starting Workout Builder Server (storage backend: %s)...", cfg.Storage.Backend)

	ctx := context.Background()

	// --- Persistence ---
	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize %s backend: %v", cfg.Storage.Backend, err)
	}

	// --- Catalog ---
	catalogService := catalog.NewService(be.catalogRepo, cfg.Catalog.CacheTTL)
	if cfg.Catalog.SeedFile != "" {
		entries, err := catalog.LoadSeedFile(cfg.Catalog.SeedFile)
		if err != nil {
			log.Fatalf("FATAL: Could not read catalog seed file: %v", err)
		}
		if _, err := catalogService.Seed(ctx, entries); err != nil {
			log.Fatalf("FATAL: Could not seed catalog: %v", err)
		}
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("workouts", "server", registry)

	// --- Services ---
	sessionService := service.NewSessionService(be.workoutRepo, catalogService, be.fileStorage, metricsManager,
		service.SessionServiceOptions{
			TickInterval:    cfg.Session.TickInterval,
			ExportURLExpiry: cfg.Storage.ExportURLExpiry,
		})

	// --- Initialize Gin Engine ---
	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, sessionService, catalogService, metricsManager, registry)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	err = server.Shutdown(ctxShutdown)
	sessionService.Shutdown()
	err = multierr.Append(err, be.close())
	if err != nil {
		log.Errorf("Shutdown finished with errors: %v", err)
		os.Exit(1)
	}
	log.Info("Server exiting.")
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, err
		}
		appDB := dbClient.Database(cfg.Database.Name)
		log.Info("Database connection established.")

		go func() {
			indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(indexCtx, appDB)
		}()

		be := &backend{
			workoutRepo: mongo.NewMongoWorkoutRepository(appDB),
			catalogRepo: mongo.NewMongoCatalogRepository(appDB),
			close:       func() error { return mongo.DisconnectDB(dbClient) },
		}
		// Exports need a bucket; without credentials they stay disabled.
		if cfg.S3.AccessKeyID != "" {
			fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
			if err != nil {
				return nil, multierr.Append(err, be.close())
			}
			be.fileStorage = fileStorage
		}
		return be, nil

	case config.BackendS3:
		fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &backend{
			workoutRepo: objectstore.NewWorkoutRepository(fileStorage),
			catalogRepo: catalog.NewMemoryRepository(),
			fileStorage: fileStorage,
			close:       func() error { return nil },
		}, nil

	default:
		log.Warn("Using in-memory storage: workouts are lost on restart")
		fileStorage := storage.NewMemoryStorage(cfg.S3.BucketName)
		return &backend{
			workoutRepo: objectstore.NewWorkoutRepository(fileStorage),
			catalogRepo: catalog.NewMemoryRepository(),
			fileStorage: fileStorage,
			close:       func() error { return nil },
		}, nil
	}
}
