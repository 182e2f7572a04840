// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerpro/internal/domain/audit"
	"ledgerpro/internal/domain/auth"
	"ledgerpro/internal/domain/backup"
	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/domain/catalogs/products"
	"ledgerpro/internal/domain/reports"
	"ledgerpro/internal/domain/transactions"
	"ledgerpro/internal/infrastructure/http/v1/handlers"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
	"ledgerpro/pkg/logger"
)

// RouterConfig holds everything the router needs wired in.
type RouterConfig struct {
	Pool    *pgxpool.Pool
	Logger  *logger.Logger
	Version string

	AuthService        *auth.Service
	EntityService      *entities.Service
	ProductService     *products.Service
	TransactionService *transactions.Service
	BillService        *bills.Service
	ReportService      *reports.Service
	AuditService       *audit.Service
	BackupService      *backup.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Order matters: recovery first, error handler renders last.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))
		protected.Use(middleware.Audit(cfg.AuditService))

		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/profile", authHandler.Profile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		entityHandler := handlers.NewEntityHandler(base, cfg.EntityService)
		protected.GET("/entities", entityHandler.List)
		protected.POST("/entities", entityHandler.Create)
		protected.GET("/entities/:id", entityHandler.Get)
		protected.PUT("/entities/:id", entityHandler.Update)
		protected.DELETE("/entities/:id", entityHandler.Delete)
		protected.GET("/entities/:id/passbook", entityHandler.Passbook)

		productHandler := handlers.NewProductHandler(base, cfg.ProductService)
		protected.GET("/products", productHandler.List)
		protected.POST("/products", productHandler.Create)
		protected.GET("/products/:id", productHandler.Get)
		protected.PUT("/products/:id", productHandler.Update)
		protected.DELETE("/products/:id", productHandler.Delete)
		protected.GET("/products/:id/stock", productHandler.StockLedger)
		protected.GET("/products/:id/batches", productHandler.BatchOptions)

		txHandler := handlers.NewTransactionHandler(base, cfg.TransactionService)
		protected.GET("/transactions", txHandler.List)
		protected.POST("/transactions", txHandler.Create)
		protected.POST("/transactions/import", txHandler.ImportCSV)
		protected.GET("/transactions/:id", txHandler.Get)
		protected.PUT("/transactions/:id", txHandler.Update)
		protected.DELETE("/transactions/:id", txHandler.Delete)
		protected.POST("/transactions/:id/payments", txHandler.AddPayment)
		protected.GET("/reminders", txHandler.Reminders)

		billHandler := handlers.NewBillHandler(base, cfg.BillService)
		protected.GET("/bills", billHandler.List)
		protected.POST("/bills", billHandler.Create)
		protected.GET("/bills/:id", billHandler.Get)
		protected.DELETE("/bills/:id", billHandler.Delete)

		reportHandler := handlers.NewReportHandler(base, cfg.ReportService)
		protected.GET("/reports/summary", reportHandler.Summary)
		protected.GET("/reports/aging", reportHandler.Aging)

		auditHandler := handlers.NewAuditHandler(base, cfg.AuditService)
		protected.GET("/audit", auditHandler.List)

		backupHandler := handlers.NewBackupHandler(base, cfg.BackupService)
		protected.GET("/backup/export", backupHandler.Export)
		protected.POST("/backup/restore", backupHandler.Restore)
	}

	return router
}
