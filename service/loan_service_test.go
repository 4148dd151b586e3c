package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
)

func TestCalculateLoan_WithInterest(t *testing.T) {
	service := NewLoanService()

	result, err := service.CalculateLoan(domain.LoanInput{
		Amount:       200000,
		InterestRate: 6,
		TermMonths:   360,
	})
	require.NoError(t, err)

	assert.Equal(t, 1199.10, result.MonthlyPayment)
	assert.InDelta(t, 231676.38, result.TotalInterest, 0.01)
	assert.InDelta(t, 431676.38, result.TotalPayment, 0.01)
	assert.Equal(t, 360, result.PayoffMonths)
	require.Len(t, result.Schedule, 360)
	assert.Zero(t, result.Schedule[359].Balance)
	assert.Equal(t, 1000.0, result.Schedule[0].Interest)
	assert.Len(t, result.YearlySummary, 30)
	assert.Zero(t, result.InterestSaved)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	service := NewLoanService()

	result, err := service.CalculateLoan(domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Zero(t, result.TotalInterest)
	assert.Equal(t, 1200.0, result.TotalPayment)
}

func TestCalculateLoan_ExtraPayment(t *testing.T) {
	service := NewLoanService()

	result, err := service.CalculateLoan(domain.LoanInput{
		Amount:       200000,
		InterestRate: 6,
		TermMonths:   360,
		ExtraPayment: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, 252, result.PayoffMonths)
	assert.InDelta(t, 79800.51, result.InterestSaved, 0.02)
	assert.Zero(t, result.Schedule[len(result.Schedule)-1].Balance)
}

func TestCalculateLoan_InvalidAmount(t *testing.T) {
	service := NewLoanService()

	_, err := service.CalculateLoan(domain.LoanInput{
		Amount:       0,
		InterestRate: 10,
		TermMonths:   12,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "amount", verr.Fields[0].Field)
}

func TestCalculateLoan_InvalidTerm(t *testing.T) {
	service := NewLoanService()

	_, err := service.CalculateLoan(domain.LoanInput{
		Amount:       1000,
		InterestRate: 10,
		TermMonths:   0,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "term_months", verr.Fields[0].Field)
}

func TestCalculateAutoLoan(t *testing.T) {
	service := NewLoanService()
	input := domain.AutoLoanInput{
		VehiclePrice:      30000,
		DownPayment:       5000,
		TradeInValue:      8000,
		TradeInOwed:       3000,
		SalesTaxRate:      7,
		Fees:              500,
		FinanceTaxAndFees: true,
		InterestRate:      5,
		TermMonths:        60,
	}

	t.Run("tax and fees financed", func(t *testing.T) {
		result, err := service.CalculateAutoLoan(input)
		require.NoError(t, err)

		assert.Equal(t, 22000.0, result.TaxableAmount)
		assert.Equal(t, 1540.0, result.SalesTax)
		assert.Equal(t, 22040.0, result.FinancedAmount)
		assert.Equal(t, 5000.0, result.UpfrontPayment)
		assert.InDelta(t, 5000+result.Loan.TotalPayment, result.TotalCost, 0.001)
	})

	t.Run("tax and fees paid upfront", func(t *testing.T) {
		in := input
		in.FinanceTaxAndFees = false
		result, err := service.CalculateAutoLoan(in)
		require.NoError(t, err)

		assert.Equal(t, 20000.0, result.FinancedAmount)
		assert.Equal(t, 7040.0, result.UpfrontPayment)
	})

	t.Run("nothing to finance", func(t *testing.T) {
		in := input
		in.DownPayment = 40000
		_, err := service.CalculateAutoLoan(in)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "down_payment", verr.Fields[0].Field)
	})
}

func TestCalculatePayment(t *testing.T) {
	service := NewLoanService()

	t.Run("fixed term", func(t *testing.T) {
		result, err := service.CalculatePayment(domain.PaymentInput{
			Mode:         domain.PaymentModeFixedTerm,
			Amount:       10000,
			InterestRate: 12,
			TermMonths:   24,
		})
		require.NoError(t, err)
		assert.Equal(t, 470.73, result.MonthlyPayment)
		assert.Equal(t, 24, result.TermMonths)
	})

	t.Run("fixed payment", func(t *testing.T) {
		result, err := service.CalculatePayment(domain.PaymentInput{
			Mode:           domain.PaymentModeFixedPayment,
			Amount:         10000,
			InterestRate:   12,
			MonthlyPayment: 500,
		})
		require.NoError(t, err)
		assert.Equal(t, 23, result.TermMonths)
		assert.Less(t, result.FinalPayment, 500.0)
		assert.Zero(t, result.Schedule[22].Balance)
	})

	t.Run("payment below interest", func(t *testing.T) {
		_, err := service.CalculatePayment(domain.PaymentInput{
			Mode:           domain.PaymentModeFixedPayment,
			Amount:         10000,
			InterestRate:   12,
			MonthlyPayment: 100,
		})
		assert.ErrorIs(t, err, domain.ErrPaymentTooLow)
	})
}

func TestCalculateSimpleLoan(t *testing.T) {
	service := NewLoanService()

	result, err := service.CalculateSimpleLoan(domain.SimpleLoanInput{
		Amount:           10000,
		InterestRate:     5,
		TermYears:        2,
		PaymentFrequency: "biweekly",
	})
	require.NoError(t, err)

	assert.Equal(t, "biweekly", result.PaymentFrequency)
	assert.Equal(t, 52, result.Payments)
	assert.Greater(t, result.PeriodicPayment, 10000.0/52)

	monthly, err := service.CalculateSimpleLoan(domain.SimpleLoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermYears:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "monthly", monthly.PaymentFrequency)
	assert.Equal(t, 100.0, monthly.PeriodicPayment)
}

func TestSolveInterestRate(t *testing.T) {
	service := NewLoanService()

	result, err := service.SolveInterestRate(domain.InterestRateInput{
		Amount:         20000,
		TermMonths:     60,
		MonthlyPayment: 386.66,
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, result.AnnualRate, 0.001)
	assert.InDelta(t, 6.1682, result.EffectiveRate, 0.001)
	assert.Positive(t, result.Iterations)

	zero, err := service.SolveInterestRate(domain.InterestRateInput{
		Amount:         1200,
		TermMonths:     12,
		MonthlyPayment: 100,
	})
	require.NoError(t, err)
	assert.Zero(t, zero.AnnualRate)

	_, err = service.SolveInterestRate(domain.InterestRateInput{
		Amount:         1200,
		TermMonths:     12,
		MonthlyPayment: 90,
	})
	assert.ErrorIs(t, err, domain.ErrNoSolution)
}

func TestSolveInterestRateNearRateLimit(t *testing.T) {
	service := NewLoanService()

	for _, annual := range []float64{150, 900, 1000} {
		payment := periodicPayment(10000, annual/12/100, 12)
		result, err := service.SolveInterestRate(domain.InterestRateInput{
			Amount:         10000,
			TermMonths:     12,
			MonthlyPayment: payment,
		})
		require.NoError(t, err, "annual rate %v", annual)
		assert.InDelta(t, annual, result.AnnualRate, 0.001)
	}
}
