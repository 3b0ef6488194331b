package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo  repository.CustomerRepository
	ledgerService *LedgerService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, ledgerService *LedgerService) *CustomerService {
	return &CustomerService{
		customerRepo:  customerRepo,
		ledgerService: ledgerService,
	}
}

// CreateCustomerInput represents input for creating a customer
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateCustomerInput represents input for updating a customer
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Address *string
	Notes   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer updates a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "name", Message: "name cannot be empty"},
			})
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// GetBalance returns a customer's outstanding debt, optionally as of a date
func (s *CustomerService) GetBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (int64, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, apperror.NewNotFoundError("Customer")
	}
	return s.ledgerService.BalanceAsOf(ctx, id, asOf)
}
