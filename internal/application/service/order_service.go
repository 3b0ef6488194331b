package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/internal/domain/finance"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/novapos/novapos-api/pkg/pagination"
	"go.uber.org/zap"
)

// OrderService is the lifecycle manager for sales transactions. Every
// create/cancel runs inside one transaction: stock transitions, ledger rows
// and header/lines become visible together or not at all.
type OrderService struct {
	txManager       repository.TxManager
	orderRepo       repository.OrderRepository
	lineRepo        repository.OrderLineRepository
	stockUnitRepo   repository.StockUnitRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	installmentRepo repository.InstallmentRepository
	ledgerService   *LedgerService
	installments    *InstallmentService
	log             *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	stockUnitRepo repository.StockUnitRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	installmentRepo repository.InstallmentRepository,
	ledgerService *LedgerService,
	installments *InstallmentService,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		lineRepo:        lineRepo,
		stockUnitRepo:   stockUnitRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		installmentRepo: installmentRepo,
		ledgerService:   ledgerService,
		installments:    installments,
		log:             log,
	}
}

// OrderLineInput is one line of a draft order
type OrderLineInput struct {
	ItemType    enum.ItemType
	ItemID      *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   int64
	Discount    int64
}

// InstallmentInput carries the optional schedule parameters for a credit sale
type InstallmentInput struct {
	PeriodCount  int
	PeriodAmount int64
	// MonthlyRate is a fraction, e.g. 0.02 for 2% per month
	MonthlyRate float64
	DownPayment int64
	// Override accepts a schedule whose drift exceeds the tolerance bound
	Override bool
}

// CreateOrderInput is the parsed, validated draft of an order. Raw request
// payloads are converted into this strict record before any calculation.
type CreateOrderInput struct {
	CustomerID     *uuid.UUID
	PaymentMode    enum.PaymentMode
	OrderDate      time.Time
	GlobalDiscount int64
	TaxPercent     float64
	Notes          *string
	Lines          []OrderLineInput
	Installment    *InstallmentInput
}

func (s *OrderService) validateDraft(input *CreateOrderInput) error {
	if len(input.Lines) == 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "lines", Message: "order must contain at least one line"},
		})
	}
	if !input.PaymentMode.Valid() {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_mode", Message: "unknown payment mode"},
		})
	}
	for i, line := range input.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if !line.ItemType.Valid() {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: "unknown item type"},
			})
		}
		if line.Quantity <= 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: "quantity must be positive"},
			})
		}
		if line.ItemType == enum.ItemTypeTrackedUnit && line.Quantity != 1 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: "tracked units sell one at a time"},
			})
		}
		if line.UnitPrice < 0 || line.Discount < 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: "negative amounts are not allowed"},
			})
		}
		if line.ItemType.RequiresItemRef() && line.ItemID == nil {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: field, Message: "item reference is required"},
			})
		}
	}
	if input.PaymentMode == enum.PaymentModeCredit && input.CustomerID == nil {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_id", Message: "credit sales require a customer"},
		})
	}
	if input.Installment != nil && input.PaymentMode != enum.PaymentModeCredit {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "installment", Message: "installment schedules require credit payment"},
		})
	}
	return nil
}

// PreviewTotals computes order totals without side effects. It shares the
// calculator with CreateOrder, so previewed and persisted figures always
// agree.
func (s *OrderService) PreviewTotals(lines []OrderLineInput, globalDiscount int64, taxPercent float64) finance.Summary {
	return finance.ComputeSummary(summaryLines(lines), globalDiscount, taxPercent)
}

func summaryLines(lines []OrderLineInput) []finance.SummaryLine {
	out := make([]finance.SummaryLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, finance.SummaryLine{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
		})
	}
	return out
}

// CreateOrder atomically persists a draft: header, lines, stock transitions,
// the ledger debit of a credit sale, and the installment plan when one is
// requested. Any failure rolls the whole transaction back.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := s.validateDraft(input); err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	summary := finance.ComputeSummary(summaryLines(input.Lines), input.GlobalDiscount, input.TaxPercent)

	order := &entity.Order{
		CustomerID:     input.CustomerID,
		OrderDate:      input.OrderDate,
		Status:         enum.OrderStatusActive,
		PaymentMode:    input.PaymentMode,
		SubTotal:       summary.SubTotal,
		ItemsDiscount:  summary.ItemsDiscount,
		GlobalDiscount: input.GlobalDiscount,
		TaxPercent:     input.TaxPercent,
		TaxableAmount:  summary.TaxableAmount,
		TaxAmount:      summary.TaxAmount,
		GrandTotal:     summary.GrandTotal,
		InvoiceNo:      fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		Notes:          input.Notes,
	}

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.applyStockForSale(txCtx, input.Lines, input.OrderDate); err != nil {
			return err
		}

		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}

		lines := make([]entity.OrderLine, 0, len(input.Lines))
		for _, l := range input.Lines {
			lines = append(lines, entity.OrderLine{
				OrderID:     order.ID,
				ItemType:    l.ItemType,
				ItemID:      l.ItemID,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Discount:    l.Discount,
				TotalPrice:  int64(l.Quantity) * l.UnitPrice,
			})
		}
		if err := s.lineRepo.CreateBatch(txCtx, lines); err != nil {
			return err
		}

		if order.IsCreditBacked() {
			if _, err := s.ledgerService.Append(txCtx, *order.CustomerID, &order.ID,
				fmt.Sprintf("Credit sale %s", order.InvoiceNo),
				order.GrandTotal, 0, order.OrderDate); err != nil {
				return err
			}

			if input.Installment != nil {
				if err := s.createInstallmentPlan(txCtx, order, input.Installment); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("invoice_no", order.InvoiceNo),
		zap.Int64("grand_total", order.GrandTotal))

	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// applyStockForSale moves every referenced stock record into its sold state.
// Both paths are guarded single-statement updates, so a non-sellable unit or
// a quantity that would go negative fails before any other side effect.
func (s *OrderService) applyStockForSale(ctx context.Context, lines []OrderLineInput, at time.Time) error {
	for _, line := range lines {
		switch line.ItemType {
		case enum.ItemTypeTrackedUnit:
			ok, err := s.stockUnitRepo.Transition(ctx, *line.ItemID, enum.SellableStatuses(), enum.StockStatusSold, at)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(line.ItemID.String(), "unit is not sellable")
			}
		case enum.ItemTypeFungibleProduct:
			ok, err := s.productRepo.DecrementQuantity(ctx, *line.ItemID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(line.ItemID.String(), "not enough quantity on hand")
			}
		}
	}
	return nil
}

func (s *OrderService) createInstallmentPlan(ctx context.Context, order *entity.Order, in *InstallmentInput) error {
	amortIn := finance.AmortizationInput{
		Principal:    order.GrandTotal,
		DownPayment:  in.DownPayment,
		MonthlyRate:  in.MonthlyRate,
		PeriodCount:  in.PeriodCount,
		PeriodAmount: in.PeriodAmount,
	}
	plan, err := s.installments.ComputePlan(amortIn)
	if err != nil {
		if apperror.IsToleranceExceeded(err) && in.Override {
			s.log.Warn("installment tolerance overridden",
				zap.String("order_id", order.ID.String()),
				zap.Int64("drift", plan.Drift),
				zap.Int64("tolerance", plan.Tolerance))
		} else {
			return err
		}
	}

	row := BuildPlanRows(order.ID, *order.CustomerID, amortIn, plan, order.OrderDate)
	return s.installmentRepo.CreatePlan(ctx, row)
}

// CancelOrder atomically reverses an order: tracked units return, fungible
// quantities restore, the credit sale's debit gets a reversing credit row,
// and the header is soft-canceled. The order is re-read inside the
// transaction, so a second cancel of the same id observes NotFound instead
// of double-reversing.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, reason *string) error {
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.GetActiveWithLines(txCtx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		plan, err := s.installmentRepo.GetPlanByOrder(txCtx, orderID)
		if err != nil {
			return err
		}
		// Units from an installment-backed sale come back in their own
		// state; neither path ever resets a unit to in-stock.
		returnStatus := enum.StockStatusReturned
		if plan != nil {
			returnStatus = enum.StockStatusReturnedInstallment
		}

		now := time.Now().UTC()
		for _, line := range order.Lines {
			switch line.ItemType {
			case enum.ItemTypeTrackedUnit:
				ok, err := s.stockUnitRepo.Transition(txCtx, *line.ItemID,
					[]enum.StockStatus{enum.StockStatusSold}, returnStatus, now)
				if err != nil {
					return err
				}
				if !ok {
					return apperror.NewConflictError(
						fmt.Sprintf("stock unit %s is no longer in sold state", line.ItemID))
				}
			case enum.ItemTypeFungibleProduct:
				if err := s.productRepo.IncrementQuantity(txCtx, *line.ItemID, line.Quantity); err != nil {
					return err
				}
			}
		}

		if order.IsCreditBacked() {
			// The reversing credit equals the original debit exactly; the
			// original row is never edited.
			if _, err := s.ledgerService.Append(txCtx, *order.CustomerID, &order.ID,
				fmt.Sprintf("Cancellation of %s", order.InvoiceNo),
				0, order.GrandTotal, now); err != nil {
				return err
			}
		}

		ok, err := s.orderRepo.MarkCanceled(txCtx, orderID, now, reason)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewNotFoundError("Order")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order canceled", zap.String("order_id", orderID.String()))
	return nil
}

// GetOrder retrieves an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
