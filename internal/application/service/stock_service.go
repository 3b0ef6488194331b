package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// StockService registers and lists stock. Sale and return transitions are
// owned by the order lifecycle; this service never moves a unit's status.
type StockService struct {
	stockUnitRepo repository.StockUnitRepository
	productRepo   repository.ProductRepository
}

// NewStockService creates a new stock service
func NewStockService(stockUnitRepo repository.StockUnitRepository, productRepo repository.ProductRepository) *StockService {
	return &StockService{
		stockUnitRepo: stockUnitRepo,
		productRepo:   productRepo,
	}
}

// RegisterStockUnitInput represents input for registering a tracked unit
type RegisterStockUnitInput struct {
	Serial        string
	Name          string
	ProductID     *uuid.UUID
	PurchasePrice int64
	SellingPrice  int64
}

// RegisterProductInput represents input for registering a fungible product
type RegisterProductInput struct {
	Name      string
	Code      string
	Quantity  int
	UnitPrice int64
}

// RegisterStockUnit registers a new tracked unit as in-stock
func (s *StockService) RegisterStockUnit(ctx context.Context, input *RegisterStockUnitInput) (*entity.StockUnit, error) {
	var fieldErrors []apperror.FieldError
	if input.Serial == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "serial", Message: "serial is required"})
	}
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.PurchasePrice < 0 || input.SellingPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "prices cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	unit := &entity.StockUnit{
		Serial:        input.Serial,
		Name:          input.Name,
		ProductID:     input.ProductID,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		Status:        enum.StockStatusInStock,
	}
	if err := s.stockUnitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// GetStockUnit retrieves a tracked unit by ID
func (s *StockService) GetStockUnit(ctx context.Context, id uuid.UUID) (*entity.StockUnit, error) {
	unit, err := s.stockUnitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Stock unit")
	}
	return unit, nil
}

// ListStockUnits lists tracked units, optionally filtered by status
func (s *StockService) ListStockUnits(ctx context.Context, params *pagination.PaginationParams, status *enum.StockStatus, search string) (*pagination.PaginatedResult[entity.StockUnit], error) {
	units, total, err := s.stockUnitRepo.List(ctx, params, status, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, pag), nil
}

// RegisterProduct registers a new fungible product
func (s *StockService) RegisterProduct(ctx context.Context, input *RegisterProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Code == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if input.Quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if input.UnitPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "unit price cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	product := &entity.Product{
		Name:      input.Name,
		Code:      input.Code,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *StockService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists fungible products
func (s *StockService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// RestockProduct increases a product's quantity on hand
func (s *StockService) RestockProduct(ctx context.Context, id uuid.UUID, qty int) (*entity.Product, error) {
	if qty <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "quantity must be positive"},
		})
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.IncrementQuantity(ctx, id, qty); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}
