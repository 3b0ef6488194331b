package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/novapos/novapos-api/internal/config"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	infraRepo "github.com/novapos/novapos-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires the full service graph over an in-memory store so the tests
// exercise real transactions and real guarded updates, not mocks.
type testEnv struct {
	db           *gorm.DB
	orders       *OrderService
	customers    *CustomerService
	stock        *StockService
	ledger       *LedgerService
	installments *InstallmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Customer{},
		&entity.Product{},
		&entity.StockUnit{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.LedgerEntry{},
		&entity.InstallmentPlan{},
		&entity.InstallmentPeriod{},
	))

	txManager := infraRepo.NewTxManager(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	lineRepo := infraRepo.NewOrderLineRepository(db)
	stockUnitRepo := infraRepo.NewStockUnitRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	installmentRepo := infraRepo.NewInstallmentRepository(db)
	ledgerRepo := infraRepo.NewLedgerRepository(db)

	financeCfg := config.FinanceConfig{Granularity: 100_000, ToleranceFloor: 100_000}
	ledgerService := NewLedgerService(ledgerRepo)
	installmentService := NewInstallmentService(installmentRepo, ledgerService, txManager, financeCfg)
	orderService := NewOrderService(txManager, orderRepo, lineRepo, stockUnitRepo, productRepo,
		customerRepo, installmentRepo, ledgerService, installmentService, zap.NewNop())
	customerService := NewCustomerService(customerRepo, ledgerService)
	stockService := NewStockService(stockUnitRepo, productRepo)

	return &testEnv{
		db:           db,
		orders:       orderService,
		customers:    customerService,
		stock:        stockService,
		ledger:       ledgerService,
		installments: installmentService,
	}
}

func (e *testEnv) createCustomer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	customer, err := e.customers.CreateCustomer(context.Background(), &CreateCustomerInput{Name: name})
	require.NoError(t, err)
	return customer
}

func (e *testEnv) createStockUnit(t *testing.T, serial string, sellingPrice int64) *entity.StockUnit {
	t.Helper()
	unit, err := e.stock.RegisterStockUnit(context.Background(), &RegisterStockUnitInput{
		Serial:        serial,
		Name:          "Yamaha Mio " + serial,
		PurchasePrice: sellingPrice - 2_000_000,
		SellingPrice:  sellingPrice,
	})
	require.NoError(t, err)
	return unit
}

func (e *testEnv) createProduct(t *testing.T, code string, quantity int, unitPrice int64) *entity.Product {
	t.Helper()
	product, err := e.stock.RegisterProduct(context.Background(), &RegisterProductInput{
		Name:      "Helmet " + code,
		Code:      code,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) reloadUnit(t *testing.T, unit *entity.StockUnit) *entity.StockUnit {
	t.Helper()
	fresh, err := e.stock.GetStockUnit(context.Background(), unit.ID)
	require.NoError(t, err)
	return fresh
}

func (e *testEnv) reloadProduct(t *testing.T, product *entity.Product) *entity.Product {
	t.Helper()
	fresh, err := e.stock.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	return fresh
}

func trackedLine(unit *entity.StockUnit) OrderLineInput {
	return OrderLineInput{
		ItemType:    enum.ItemTypeTrackedUnit,
		ItemID:      &unit.ID,
		Description: unit.Name,
		Quantity:    1,
		UnitPrice:   unit.SellingPrice,
	}
}

func productLine(product *entity.Product, qty int) OrderLineInput {
	return OrderLineInput{
		ItemType:    enum.ItemTypeFungibleProduct,
		ItemID:      &product.ID,
		Description: product.Name,
		Quantity:    qty,
		UnitPrice:   product.UnitPrice,
	}
}

func testDate() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}
