package finance

import (
	"testing"

	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGranularity    = int64(100_000)
	testToleranceFloor = int64(100_000)
)

func TestRoundUpTo(t *testing.T) {
	assert.Equal(t, int64(14_900_000), RoundUpTo(14_880_000, testGranularity))
	assert.Equal(t, int64(14_900_000), RoundUpTo(14_900_000, testGranularity))
	assert.Equal(t, int64(100_000), RoundUpTo(1, testGranularity))
	assert.Equal(t, int64(42), RoundUpTo(42, 1))
}

func TestComputeAmortization_FixedPeriodCount(t *testing.T) {
	plan, err := ComputeAmortization(AmortizationInput{
		Principal:   12_000_000,
		DownPayment: 2_000_000,
		MonthlyRate: 0.02,
		PeriodCount: 12,
	}, testGranularity, testToleranceFloor)

	require.NoError(t, err)
	// 12,000,000 + 12,000,000*0.02*12 = 14,880,000 rounded up to 14,900,000
	assert.Equal(t, int64(14_900_000), plan.FinancedTotal)
	assert.Equal(t, int64(0), plan.FinancedTotal%testGranularity)
	assert.Equal(t, 12, plan.PeriodCount)
	assert.Equal(t, int64(12_900_000), plan.Remaining)
	assert.Equal(t, int64(1_075_000), plan.PeriodAmount)
	assert.True(t, plan.WithinTolerance)

	drift := int64(plan.PeriodCount)*plan.PeriodAmount - plan.Remaining
	if drift < 0 {
		drift = -drift
	}
	assert.LessOrEqual(t, drift, plan.Tolerance)
}

func TestComputeAmortization_PeriodAmountNeverFallsShort(t *testing.T) {
	plan, err := ComputeAmortization(AmortizationInput{
		Principal:   7_777_777,
		DownPayment: 1_000_000,
		MonthlyRate: 0.015,
		PeriodCount: 10,
	}, testGranularity, testToleranceFloor)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, int64(plan.PeriodCount)*plan.PeriodAmount, plan.Remaining)
}

func TestComputeAmortization_DerivePeriodCount(t *testing.T) {
	plan, err := ComputeAmortization(AmortizationInput{
		Principal:    12_000_000,
		DownPayment:  2_000_000,
		MonthlyRate:  0.02,
		PeriodAmount: 1_075_000,
	}, testGranularity, testToleranceFloor)

	require.NoError(t, err)
	assert.Equal(t, 12, plan.PeriodCount)
	assert.Equal(t, int64(14_900_000), plan.FinancedTotal)
	assert.True(t, plan.WithinTolerance)
}

func TestComputeAmortization_ToleranceExceededIsAdvisory(t *testing.T) {
	plan, err := ComputeAmortization(AmortizationInput{
		Principal:    12_000_000,
		DownPayment:  2_000_000,
		MonthlyRate:  0.02,
		PeriodAmount: 5_000_000,
	}, testGranularity, testToleranceFloor)

	require.Error(t, err)
	assert.True(t, apperror.IsToleranceExceeded(err))

	tolErr := err.(*apperror.ToleranceExceededError)
	assert.Equal(t, plan.Remaining, tolErr.Remaining)
	assert.Equal(t, int64(plan.PeriodCount)*plan.PeriodAmount, tolErr.ScheduleSum)
	assert.Equal(t, plan.Tolerance, tolErr.Tolerance)

	// The plan still comes back so a caller may accept it with an override.
	require.NotNil(t, plan)
	assert.False(t, plan.WithinTolerance)
}

func TestComputeAmortization_RejectsBadInput(t *testing.T) {
	_, err := ComputeAmortization(AmortizationInput{Principal: 0, PeriodCount: 12}, testGranularity, testToleranceFloor)
	assert.Error(t, err)

	_, err = ComputeAmortization(AmortizationInput{Principal: 1_000_000, MonthlyRate: -0.01, PeriodCount: 12}, testGranularity, testToleranceFloor)
	assert.Error(t, err)

	_, err = ComputeAmortization(AmortizationInput{Principal: 1_000_000, MonthlyRate: 0.02}, testGranularity, testToleranceFloor)
	assert.Error(t, err)

	_, err = ComputeAmortization(AmortizationInput{
		Principal:   1_000_000,
		DownPayment: 5_000_000,
		MonthlyRate: 0.02,
		PeriodCount: 6,
	}, testGranularity, testToleranceFloor)
	assert.Error(t, err)
}
