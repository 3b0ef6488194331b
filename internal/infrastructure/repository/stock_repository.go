package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	domainRepo "github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type stockUnitRepository struct {
	db *gorm.DB
}

// NewStockUnitRepository creates a new stock unit repository
func NewStockUnitRepository(db *gorm.DB) domainRepo.StockUnitRepository {
	return &stockUnitRepository{db: db}
}

func (r *stockUnitRepository) Create(ctx context.Context, unit *entity.StockUnit) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(unit).Error
}

func (r *stockUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockUnit, error) {
	var unit entity.StockUnit
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// Transition applies a guarded status update. The source states sit in the
// WHERE clause, so the check and the write are one statement: zero affected
// rows means the unit was not in a permitted source state and nothing moved.
func (r *stockUnitRepository) Transition(ctx context.Context, id uuid.UUID, from []enum.StockStatus, to enum.StockStatus, at time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	switch to {
	case enum.StockStatusSold:
		updates["sale_date"] = at
		updates["return_date"] = nil
	case enum.StockStatusReturned, enum.StockStatusReturnedInstallment:
		updates["sale_date"] = nil
		updates["return_date"] = at
	}

	res := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.StockUnit{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *stockUnitRepository) List(ctx context.Context, params *pagination.PaginationParams, status *enum.StockStatus, search string) ([]entity.StockUnit, int64, error) {
	var units []entity.StockUnit
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.StockUnit{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if search != "" {
		query = query.Where("serial LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&units).Error

	return units, total, err
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFromContext(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// DecrementQuantity is the race-safe fungible decrement: the quantity guard
// in the WHERE clause rejects an update that would go negative before any
// side effect runs.
func (r *productRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *productRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Product{})
	if search != "" {
		query = query.Where("name LIKE ? OR code LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}
