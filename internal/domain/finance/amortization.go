package finance

import (
	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// AmortizationInput describes a requested installment schedule. Exactly one
// of PeriodCount or PeriodAmount must be positive; the other is derived.
// Interest is simple and non-compounding: totalInterest = P * rate * N.
type AmortizationInput struct {
	Principal   int64
	DownPayment int64
	// MonthlyRate is a fraction, e.g. 0.02 for 2% per month
	MonthlyRate  float64
	PeriodCount  int
	PeriodAmount int64
}

// AmortizationPlan is the computed per-period schedule
type AmortizationPlan struct {
	FinancedTotal int64 `json:"financed_total"`
	PeriodCount   int   `json:"period_count"`
	PeriodAmount  int64 `json:"period_amount"`
	// Remaining is the financed debt after the down payment
	Remaining int64 `json:"remaining"`
	// Tolerance is the accepted bound on |PeriodCount*PeriodAmount - Remaining|
	Tolerance       int64 `json:"tolerance"`
	Drift           int64 `json:"drift"`
	WithinTolerance bool  `json:"within_tolerance"`
}

// RoundUpTo rounds v up to the next multiple of granularity
func RoundUpTo(v, granularity int64) int64 {
	if granularity <= 1 {
		return v
	}
	rem := v % granularity
	if rem == 0 {
		return v
	}
	return v + granularity - rem
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// derivePeriodCount finds the N consistent with a fixed per-period amount.
// FinancedTotal depends on N through the interest term, so the count is
// settled by fixpoint iteration; the sequence is monotonic and short.
func derivePeriodCount(in AmortizationInput, granularity int64) (int, error) {
	n := 1
	for i := 0; i < 64; i++ {
		financed := financedTotal(in.Principal, in.MonthlyRate, n, granularity)
		remaining := financed - in.DownPayment
		if remaining <= 0 {
			return n, nil
		}
		next := int(ceilDiv(remaining, in.PeriodAmount))
		if next <= n {
			return n, nil
		}
		n = next
	}
	return 0, apperror.NewBadRequestError("period amount too small to ever settle the financed debt")
}

func financedTotal(principal int64, rate float64, periods int, granularity int64) int64 {
	interest := decimal.NewFromInt(principal).
		Mul(decimal.NewFromFloat(rate)).
		Mul(decimal.NewFromInt(int64(periods)))
	raw := decimal.NewFromInt(principal).Add(interest).Ceil().IntPart()
	return RoundUpTo(raw, granularity)
}

// ComputeAmortization expands an input into a full plan under the given
// rounding granularity and tolerance floor.
//
// The per-period amount always rounds up, so the schedule sum never falls
// short of the debt. The schedule is accepted when the drift between
// N*periodAmount and the remaining debt stays within
// max(toleranceFloor, roundUp(remaining/100, granularity)); outside that
// bound a ToleranceExceededError names both figures and the bound. That
// failure is advisory, callers may override it.
func ComputeAmortization(in AmortizationInput, granularity, toleranceFloor int64) (*AmortizationPlan, error) {
	if in.Principal <= 0 {
		return nil, apperror.NewBadRequestError("principal must be positive")
	}
	if in.MonthlyRate < 0 {
		return nil, apperror.NewBadRequestError("monthly rate cannot be negative")
	}
	if in.DownPayment < 0 {
		return nil, apperror.NewBadRequestError("down payment cannot be negative")
	}
	if in.PeriodCount <= 0 && in.PeriodAmount <= 0 {
		return nil, apperror.NewBadRequestError("either period count or period amount must be positive")
	}

	n := in.PeriodCount
	if n <= 0 {
		derived, err := derivePeriodCount(in, granularity)
		if err != nil {
			return nil, err
		}
		n = derived
	}

	financed := financedTotal(in.Principal, in.MonthlyRate, n, granularity)
	remaining := financed - in.DownPayment
	if remaining < 0 {
		return nil, apperror.NewBadRequestError("down payment exceeds financed total")
	}

	// A caller-pinned amount is honored even when the count is also given;
	// that is the case the tolerance bound exists for.
	amount := in.PeriodAmount
	if amount <= 0 {
		amount = ceilDiv(remaining, int64(n))
	}

	tolerance := RoundUpTo(ceilDiv(remaining, 100), granularity)
	if tolerance < toleranceFloor {
		tolerance = toleranceFloor
	}

	scheduleSum := int64(n) * amount
	drift := scheduleSum - remaining
	if drift < 0 {
		drift = -drift
	}

	plan := &AmortizationPlan{
		FinancedTotal:   financed,
		PeriodCount:     n,
		PeriodAmount:    amount,
		Remaining:       remaining,
		Tolerance:       tolerance,
		Drift:           drift,
		WithinTolerance: drift <= tolerance,
	}

	if !plan.WithinTolerance {
		return plan, apperror.NewToleranceExceededError(scheduleSum, remaining, tolerance)
	}
	return plan, nil
}
