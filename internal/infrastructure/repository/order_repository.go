package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	domainRepo "github.com/novapos/novapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Customer").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetActiveWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ? AND status = ?", id, enum.OrderStatusActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Customer").
		Preload("Lines").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkCanceled(ctx context.Context, id uuid.UUID, canceledAt time.Time, reason *string) (bool, error) {
	// The status guard in the WHERE clause makes cancellation idempotent at
	// the row level: a second cancel matches zero rows.
	res := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, enum.OrderStatusActive).
		Updates(map[string]interface{}{
			"status":        enum.OrderStatusCanceled,
			"canceled_at":   canceledAt,
			"cancel_reason": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("invoice_no LIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy == "order_date" || params.SortBy == "grand_total" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

type orderLineRepository struct {
	db *gorm.DB
}

// NewOrderLineRepository creates a new order line repository
func NewOrderLineRepository(db *gorm.DB) domainRepo.OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) CreateBatch(ctx context.Context, lines []entity.OrderLine) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(&lines).Error
}

func (r *orderLineRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}
