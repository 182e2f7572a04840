// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"ledgerpro/internal/config"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/auth"
	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/domain/catalogs/products"
	"ledgerpro/internal/domain/transactions"
	"ledgerpro/internal/infrastructure/storage/postgres"
	"ledgerpro/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.ConnectionString()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)

	entityRepo := postgres.NewEntityRepo(txm)
	productRepo := postgres.NewProductRepo(txm)
	txRepo := postgres.NewTransactionRepo(txm)
	billRepo := postgres.NewBillRepo(txm)
	userRepo := postgres.NewUserRepo(txm)
	sessionRepo := postgres.NewSessionRepo(txm)

	authService := auth.NewService(userRepo, sessionRepo)
	entityService := entities.NewService(entityRepo, txRepo)
	productService := products.NewService(productRepo, txRepo)
	billService := bills.NewService(billRepo, postgres.NewBillEntitySource(entityRepo), txRepo)
	txService := transactions.NewService(txRepo,
		postgres.NewEntityLookupAdapter(entityRepo),
		postgres.NewProductLookupAdapter(productRepo),
		billService,
	)

	result, err := authService.Register(ctx, auth.RegisterRequest{
		Email:        "demo@ledgerpro.local",
		Password:     "demo1234",
		Name:         "Demo User",
		BusinessName: "Demo Traders",
	})
	if err != nil {
		log.Fatalw("failed to seed demo user", "error", err)
	}
	userID := result.User.ID
	log.Infow("demo user created", "email", result.User.Email)

	customer, err := entityService.Create(ctx, userID, entities.Input{
		Name:     "Sharma Retail",
		Category: "Customer",
		GSTIN:    "27AABCS1429B1Z1",
		Phone:    "+91 98200 00001",
	})
	if err != nil {
		log.Fatalw("failed to seed customer", "error", err)
	}

	supplier, err := entityService.Create(ctx, userID, entities.Input{
		Name:     "Patel Wholesale",
		Category: "Supplier",
		GSTIN:    "24AABCP3518C1Z4",
	})
	if err != nil {
		log.Fatalw("failed to seed supplier", "error", err)
	}

	product, err := productService.Create(ctx, userID, products.Input{
		Name:            "Paracetamol 500mg",
		Unit:            "strip",
		BatchingEnabled: true,
		InitialBatchNo:  "PCM-2406",
		InitialMfgDate:  "2026-06-01",
		InitialExpDate:  "2028-06-01",
		SalePrice:       types.NewMoney(30),
		PurchasePrice:   types.NewMoney(22),
		GSTRate:         types.NewMoney(12),
		StockQty:        types.NewMoney(100),
	})
	if err != nil {
		log.Fatalw("failed to seed product", "error", err)
	}

	purchase, err := txService.Create(ctx, userID, transactions.Input{
		EntityID:        supplier.ID.String(),
		ProductID:       product.ID.String(),
		Type:            "purchase",
		Date:            types.TodayISO(),
		Qty:             types.NewMoney(50),
		UnitAmount:      types.NewMoney(22),
		GSTRate:         types.NewMoney(12),
		BatchingEnabled: true,
		BatchNo:         "PCM-2407",
		MfgDate:         "2026-07-01",
		ExpDate:         "2028-07-01",
	})
	if err != nil {
		log.Fatalw("failed to seed purchase", "error", err)
	}

	sale, err := txService.Create(ctx, userID, transactions.Input{
		EntityID:   customer.ID.String(),
		ProductID:  product.ID.String(),
		Type:       "sale",
		Date:       types.TodayISO(),
		Qty:        types.NewMoney(20),
		UnitAmount: types.NewMoney(30),
		GSTRate:    types.NewMoney(12),
		DueDate:    types.DateAddDays(15),
	})
	if err != nil {
		log.Fatalw("failed to seed sale", "error", err)
	}

	bill, err := billService.Create(ctx, userID, bills.Input{
		EntityID:       customer.ID.String(),
		TransactionIDs: []string{sale.ID.String()},
		Date:           types.TodayISO(),
		Prefix:         "INV",
	})
	if err != nil {
		log.Fatalw("failed to seed bill", "error", err)
	}

	log.Infow("seed complete",
		"purchase", purchase.ID,
		"sale", sale.ID,
		"bill", bill.BillNo,
	)
}
