package migration

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	return db
}

func TestGuard_FreshStore(t *testing.T) {
	db := newTestDB(t)
	guard := NewGuard(db, zap.NewNop())

	require.NoError(t, guard.Run(context.Background()))

	for _, table := range []string{"customers", "products", "stock_units", "orders", "order_lines", "ledger_entries", "installment_plans", "installment_periods", "schema_versions"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	var steps int64
	require.NoError(t, db.Model(&entity.SchemaVersion{}).Count(&steps).Error)
	assert.Equal(t, int64(len(rebuildSteps)), steps)
}

func TestGuard_RunTwiceIsNoOp(t *testing.T) {
	db := newTestDB(t)
	guard := NewGuard(db, zap.NewNop())

	require.NoError(t, guard.Run(context.Background()))

	// Seed a row between runs so the second run would lose data if it ever
	// rebuilt again carelessly.
	customer := entity.Customer{Name: "Roya"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&entity.LedgerEntry{
		CustomerID:  customer.ID,
		Description: "opening balance",
		Debit:       500_000,
		Balance:     500_000,
		EntryDate:   customer.CreatedAt,
	}).Error)

	require.NoError(t, guard.Run(context.Background()))

	var steps, rows int64
	require.NoError(t, db.Model(&entity.SchemaVersion{}).Count(&steps).Error)
	assert.Equal(t, int64(len(rebuildSteps)), steps)
	require.NoError(t, db.Model(&entity.LedgerEntry{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	// Integrity checking is back on after the guard finishes.
	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestGuard_ReenablesChecksAfterFailedRebuild(t *testing.T) {
	db := newTestDB(t)

	// A leftover aside table makes the rename collide and the rebuild fail.
	require.NoError(t, db.Exec(`CREATE TABLE orders_rebuild (id TEXT PRIMARY KEY)`).Error)

	guard := NewGuard(db, zap.NewNop())
	require.Error(t, guard.Run(context.Background()))

	// Even on the failure path the guard must not leave the connection with
	// integrity checking switched off.
	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestGuard_RebuildsOverStrictOrdersTable(t *testing.T) {
	db := newTestDB(t)

	// Legacy shape: mandatory customer column blocks cash sales without a
	// customer reference.
	require.NoError(t, db.Exec(`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		order_date DATETIME,
		status INTEGER DEFAULT 0,
		invoice_no TEXT,
		grand_total INTEGER DEFAULT 0
	)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO orders (id, customer_id, order_date, status, invoice_no, grand_total)
		 VALUES ('ord-1', 'cus-1', '2024-01-10 00:00:00', 0, 'INV-1', 2500000)`,
	).Error)

	guard := NewGuard(db, zap.NewNop())
	require.NoError(t, guard.Run(context.Background()))

	// Existing rows survived the rebuild.
	var rows int64
	require.NoError(t, db.Table("orders").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	var invoice string
	require.NoError(t, db.Table("orders").Where("id = ?", "ord-1").Select("invoice_no").Scan(&invoice).Error)
	assert.Equal(t, "INV-1", invoice)

	// The aside table is gone.
	assert.False(t, db.Migrator().HasTable("orders_rebuild"))

	// And the corrected table accepts an order without a customer.
	err := db.Exec(
		`INSERT INTO orders (id, order_date, status, invoice_no, grand_total)
		 VALUES ('ord-2', '2024-02-01 00:00:00', 0, 'INV-2', 100000)`,
	).Error
	assert.NoError(t, err)
}

func TestGuard_RebuildsStaleLedgerForeignKey(t *testing.T) {
	db := newTestDB(t)

	// Legacy shape: ledger rows still reference the long-renamed clients
	// table, so inserts against current customers are blocked.
	require.NoError(t, db.Exec(`CREATE TABLE clients (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE ledger_entries (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES clients(id),
		entry_date DATETIME,
		description TEXT,
		debit INTEGER DEFAULT 0,
		credit INTEGER DEFAULT 0,
		balance INTEGER NOT NULL,
		created_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO clients (id) VALUES ('cli-1')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO ledger_entries (id, customer_id, entry_date, description, debit, credit, balance, created_at)
		 VALUES ('led-1', 'cli-1', '2024-01-05 00:00:00', 'legacy sale', 900000, 0, 900000, '2024-01-05 00:00:00')`,
	).Error)

	guard := NewGuard(db, zap.NewNop())
	require.NoError(t, guard.Run(context.Background()))

	var rows int64
	require.NoError(t, db.Table("ledger_entries").Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "legacy ledger row must survive the rebuild")

	// The rebuilt table references customers, not the stale clients table.
	var ddl string
	require.NoError(t, db.Raw(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'ledger_entries'",
	).Scan(&ddl).Error)
	assert.NotContains(t, ddl, "clients")

	customer := entity.Customer{Name: "Sahar"}
	require.NoError(t, db.Create(&customer).Error)
	assert.NoError(t, db.Create(&entity.LedgerEntry{
		CustomerID:  customer.ID,
		Description: "post-migration row",
		Debit:       100_000,
		Balance:     100_000,
		EntryDate:   customer.CreatedAt,
	}).Error)
}
