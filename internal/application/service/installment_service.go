package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/config"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/internal/domain/finance"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/apperror"
)

// InstallmentService wraps the amortization engine with persistence:
// computing plans, expanding them into period rows and settling periods.
type InstallmentService struct {
	installmentRepo repository.InstallmentRepository
	ledgerService   *LedgerService
	txManager       repository.TxManager
	finance         config.FinanceConfig
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(
	installmentRepo repository.InstallmentRepository,
	ledgerService *LedgerService,
	txManager repository.TxManager,
	financeCfg config.FinanceConfig,
) *InstallmentService {
	return &InstallmentService{
		installmentRepo: installmentRepo,
		ledgerService:   ledgerService,
		txManager:       txManager,
		finance:         financeCfg,
	}
}

// ComputePlan runs the amortization engine under the configured granularity
// and tolerance floor. The ToleranceExceededError it may return is advisory.
func (s *InstallmentService) ComputePlan(in finance.AmortizationInput) (*finance.AmortizationPlan, error) {
	return finance.ComputeAmortization(in, s.finance.Granularity, s.finance.ToleranceFloor)
}

// BuildPlanRows expands a computed plan into the persistable plan with
// monthly period rows, first due one month after the start date.
func BuildPlanRows(orderID, customerID uuid.UUID, in finance.AmortizationInput, plan *finance.AmortizationPlan, startDate time.Time) *entity.InstallmentPlan {
	row := &entity.InstallmentPlan{
		OrderID:       orderID,
		CustomerID:    customerID,
		Principal:     in.Principal,
		DownPayment:   in.DownPayment,
		MonthlyRate:   in.MonthlyRate,
		PeriodCount:   plan.PeriodCount,
		PeriodAmount:  plan.PeriodAmount,
		FinancedTotal: plan.FinancedTotal,
		StartDate:     startDate,
	}
	for i := 1; i <= plan.PeriodCount; i++ {
		row.Periods = append(row.Periods, entity.InstallmentPeriod{
			Sequence:  i,
			DueDate:   startDate.AddDate(0, i, 0),
			AmountDue: plan.PeriodAmount,
			Status:    enum.PeriodStatusUnpaid,
		})
	}
	return row
}

// GetPlanByOrder returns the plan for an order with its periods
func (s *InstallmentService) GetPlanByOrder(ctx context.Context, orderID uuid.UUID) (*entity.InstallmentPlan, error) {
	plan, err := s.installmentRepo.GetPlanByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Installment plan")
	}
	return plan, nil
}

// PayPeriod settles one period and posts the matching ledger credit in the
// same transaction, so the schedule and the debt can never disagree.
func (s *InstallmentService) PayPeriod(ctx context.Context, periodID uuid.UUID, paidAt time.Time) error {
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		period, err := s.installmentRepo.GetPeriod(txCtx, periodID)
		if err != nil {
			return err
		}
		if period == nil {
			return apperror.NewNotFoundError("Installment period")
		}

		ok, err := s.installmentRepo.MarkPeriodPaid(txCtx, periodID, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError("Installment period is already paid")
		}

		plan, err := s.installmentRepo.GetPlanByID(txCtx, period.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return apperror.NewNotFoundError("Installment plan")
		}

		_, err = s.ledgerService.Append(txCtx, plan.CustomerID, &plan.OrderID,
			fmt.Sprintf("Installment %d/%d payment", period.Sequence, plan.PeriodCount),
			0, period.AmountDue, paidAt)
		return err
	})
}
