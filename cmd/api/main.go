package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novapos/novapos-api/internal/application/service"
	"github.com/novapos/novapos-api/internal/config"
	"github.com/novapos/novapos-api/internal/infrastructure/database"
	"github.com/novapos/novapos-api/internal/infrastructure/migration"
	infraRepo "github.com/novapos/novapos-api/internal/infrastructure/repository"
	"github.com/novapos/novapos-api/internal/presentation/http/handler"
	"github.com/novapos/novapos-api/internal/presentation/http/routes"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Schema repair runs before anything else touches the store. A failure
	// here is fatal: serving requests over a half-migrated schema corrupts
	// data.
	guard := migration.NewGuard(db, log)
	if err := guard.Run(context.Background()); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	txManager := infraRepo.NewTxManager(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	lineRepo := infraRepo.NewOrderLineRepository(db)
	stockUnitRepo := infraRepo.NewStockUnitRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	installmentRepo := infraRepo.NewInstallmentRepository(db)
	ledgerRepo := infraRepo.NewLedgerRepository(db)

	ledgerService := service.NewLedgerService(ledgerRepo)
	installmentService := service.NewInstallmentService(installmentRepo, ledgerService, txManager, cfg.Finance)
	orderService := service.NewOrderService(txManager, orderRepo, lineRepo, stockUnitRepo, productRepo,
		customerRepo, installmentRepo, ledgerService, installmentService, log)
	customerService := service.NewCustomerService(customerRepo, ledgerService)
	stockService := service.NewStockService(stockUnitRepo, productRepo)

	router := routes.Setup(cfg, log, &routes.Handlers{
		Order:       handler.NewOrderHandler(orderService),
		Customer:    handler.NewCustomerHandler(customerService, ledgerService),
		Stock:       handler.NewStockHandler(stockService),
		Installment: handler.NewInstallmentHandler(installmentService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
