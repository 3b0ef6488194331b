package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// OrderFilterParams filters the order listing
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID returns the order or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetActiveWithLines re-reads an active order with its lines. Inside a
	// transaction this is the post-condition read cancel relies on: a second
	// cancel of the same id observes nil here, not a stale pre-check.
	GetActiveWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// MarkCanceled flips an active order to canceled with cancel metadata.
	// Returns false when the order was not active anymore.
	MarkCanceled(ctx context.Context, id uuid.UUID, canceledAt time.Time, reason *string) (bool, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderLineRepository defines the interface for order line data operations
type OrderLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.OrderLine) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error)
}
