package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// LedgerRepository is the append-only access to customer ledger rows.
// There is deliberately no update or delete: corrections are new reversing
// rows.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// Latest returns the newest row for the customer, or nil when none exist
	Latest(ctx context.Context, customerID uuid.UUID) (*entity.LedgerEntry, error)
	// LatestAsOf returns the newest row at/before the given date, or nil
	LatestAsOf(ctx context.Context, customerID uuid.UUID, asOf time.Time) (*entity.LedgerEntry, error)
	// FindByOrder returns every row posted for an order, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.LedgerEntry, error)
	List(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error)
}
