package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "voltpark-backend/internal/api/http"
	"voltpark-backend/internal/config"
	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/repository/postgres"
	"voltpark-backend/internal/security"
	"voltpark-backend/internal/service"
	"voltpark-backend/internal/utils"

	_ "github.com/lib/pq"
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
	logger.Info("Starting VoltPark Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Ensure schema
	if err := postgres.InitSchema(db); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	notifierSvc := service.NewNotifierService(
		store.NotificationRepository,
		store.VendorRepository,
		emailSvc,
	)
	aggregator := service.NewAggregator(
		store.TransactionRepository,
		store.OrderRepository,
		store.VendorRepository,
		cfg.Billing.FixedFeeCents,
		cfg.Billing.PlatformFeePercent,
	)
	settlementSvc := service.NewSettlementService(
		store.SettlementRepository,
		store.TransactionRepository,
		store.OrderRepository,
		store.VendorRepository,
		aggregator,
		notifierSvc,
		utils.NewRealClock(),
		cfg.Billing.FixedFeeCents,
	)
	stationSvc := service.NewStationService(store.StationRepository, store.VendorRepository)
	vendorSvc := service.NewVendorService(store.VendorRepository)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(settlementSvc, stationSvc, vendorSvc, notificationSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
