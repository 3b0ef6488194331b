package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// StockUnitRepository accesses uniquely tracked stock units. Status writes go
// through Transition only, which re-checks the source state in the same
// statement so concurrent requests cannot race a unit into an illegal state.
type StockUnitRepository interface {
	Create(ctx context.Context, unit *entity.StockUnit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockUnit, error)
	// Transition moves a unit from any of the given source states to target,
	// maintaining SaleDate/ReturnDate. Returns false with no side effect when
	// the unit is not currently in one of the source states.
	Transition(ctx context.Context, id uuid.UUID, from []enum.StockStatus, to enum.StockStatus, at time.Time) (bool, error)
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.StockStatus, search string) ([]entity.StockUnit, int64, error)
}

// ProductRepository accesses fungible, quantity-counted products
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// DecrementQuantity subtracts qty atomically, guarded by quantity >= qty.
	// Returns false with no side effect when stock would go negative.
	DecrementQuantity(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementQuantity adds qty back (order cancellation)
	IncrementQuantity(ctx context.Context, id uuid.UUID, qty int) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
}
