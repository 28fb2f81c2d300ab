package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logbook-service/internal/infrastructure/config"
	"logbook-service/internal/infrastructure/persistence"
	"logbook-service/internal/interface/httpapi"
	repo "logbook-service/internal/interface/repository"
	"logbook-service/internal/usecase"
	"logbook-service/pkg/backup"
	"logbook-service/pkg/logger"
	"logbook-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Logbook Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection for the import audit history
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	mongoDB := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up repositories
	aircraftRepository := repo.NewGormAircraftRepository(gormDB)
	crewRepository := repo.NewGormCrewMemberRepository(gormDB)
	flightRepository := repo.NewGormFlightRepository(gormDB)
	flightCrewRepository := repo.NewGormFlightCrewRepository(gormDB)
	historyRepository := repo.NewMongoImportHistoryRepository(mongoDB)

	// Set up the backup engine
	m := metrics.NewMetrics("logbook")
	validator := backup.NewValidator(cfg.MaxBackupBytes)
	importService := usecase.NewImportService(
		aircraftRepository,
		crewRepository,
		flightRepository,
		flightCrewRepository,
		historyRepository,
		validator,
		cfg.PreviewFlightSample,
		log,
		m,
	)

	// Set up HTTP server
	backupHandler := httpapi.NewBackupHandler(importService, cfg.MaxBackupBytes, log)
	router := httpapi.NewRouter(backupHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Logbook Service stopped")
}
