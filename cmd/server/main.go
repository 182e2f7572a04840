// Package main is the entry point for the ledgerpro API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerpro/internal/config"
	"ledgerpro/internal/domain/audit"
	"ledgerpro/internal/domain/auth"
	"ledgerpro/internal/domain/backup"
	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/domain/catalogs/products"
	"ledgerpro/internal/domain/reports"
	"ledgerpro/internal/domain/transactions"
	v1 "ledgerpro/internal/infrastructure/http/v1"
	"ledgerpro/internal/infrastructure/storage/postgres"
	"ledgerpro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting ledgerpro server")

	poolCfg := postgres.DefaultPoolConfig(cfg.ConnectionString())
	poolCfg.MaxConns = cfg.DB.MaxConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// Repositories.
	entityRepo := postgres.NewEntityRepo(txm)
	productRepo := postgres.NewProductRepo(txm)
	txRepo := postgres.NewTransactionRepo(txm)
	billRepo := postgres.NewBillRepo(txm)
	auditRepo := postgres.NewAuditRepo(txm)
	userRepo := postgres.NewUserRepo(txm)
	sessionRepo := postgres.NewSessionRepo(txm)

	// Domain services. Bills satisfy the delete cascade the transaction
	// service needs, entities and products back its lookups.
	entityLookup := postgres.NewEntityLookupAdapter(entityRepo)
	productLookup := postgres.NewProductLookupAdapter(productRepo)

	billService := bills.NewService(billRepo, postgres.NewBillEntitySource(entityRepo), txRepo)
	txService := transactions.NewService(txRepo, entityLookup, productLookup, billService)
	entityService := entities.NewService(entityRepo, txRepo)
	productService := products.NewService(productRepo, txRepo)
	reportService := reports.NewService(txRepo, entityLookup, billRepo)
	authService := auth.NewService(userRepo, sessionRepo)

	auditService, err := audit.NewService(auditRepo)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	backupStore := postgres.NewBackupStore(txm, entityRepo, productRepo, txRepo, billRepo)
	backupService, err := backup.NewService(backupStore)
	if err != nil {
		log.Fatalw("failed to initialize backup service", "error", err)
	}

	router := v1.NewRouter(v1.RouterConfig{
		Pool:               pool.Pool,
		Logger:             log,
		Version:            cfg.App.Version,
		AuthService:        authService,
		EntityService:      entityService,
		ProductService:     productService,
		TransactionService: txService,
		BillService:        billService,
		ReportService:      reportService,
		AuditService:       auditService,
		BackupService:      backupService,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}
	log.Info("server stopped")
}
