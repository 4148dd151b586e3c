package service

import (
	"math"

	"calc-hub/domain"
)

var paymentFrequencies = map[string]int{
	"weekly":       52,
	"biweekly":     26,
	"semimonthly":  24,
	"monthly":      12,
	"quarterly":    4,
	"semiannually": 2,
	"annually":     1,
}

// LoanService holds the amortizing-loan calculators. They share one
// amortization core.
type LoanService struct{}

func NewLoanService() *LoanService {
	return &LoanService{}
}

// CalculateLoan calculates the level monthly payment, totals and the full
// schedule. An extra monthly payment shortens the schedule.
func (s *LoanService) CalculateLoan(input domain.LoanInput) (domain.LoanResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.LoanResult{}, err
	}

	monthlyRate := (input.InterestRate / 100) / 12
	payment := periodicPayment(input.Amount, monthlyRate, input.TermMonths)
	plan := amortize(input.Amount, monthlyRate, payment, input.ExtraPayment, input.TermMonths)

	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   plan.TotalPayment,
		TotalInterest:  plan.TotalInterest,
		PayoffMonths:   len(plan.Rows),
		Schedule:       plan.Rows,
		YearlySummary:  summarizeYears(plan.Rows, 12),
	}

	if input.ExtraPayment > 0 {
		baseline := amortize(input.Amount, monthlyRate, payment, 0, input.TermMonths)
		result.InterestSaved = roundTo2Decimals(math.Max(0, baseline.TotalInterest-plan.TotalInterest))
	}

	return result, nil
}

// CalculateAutoLoan derives the financed amount from price, trade-in, tax
// and fees and amortizes it.
func (s *LoanService) CalculateAutoLoan(input domain.AutoLoanInput) (domain.AutoLoanResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.AutoLoanResult{}, err
	}

	taxable := math.Max(0, input.VehiclePrice-input.TradeInValue)
	salesTax := taxable * input.SalesTaxRate / 100

	financed := input.VehiclePrice - input.DownPayment - input.TradeInValue + input.TradeInOwed
	upfront := input.DownPayment
	if input.FinanceTaxAndFees {
		financed += salesTax + input.Fees
	} else {
		upfront += salesTax + input.Fees
	}

	if financed <= 0 {
		return domain.AutoLoanResult{}, domain.Invalid("down_payment",
			"down payment and trade-in cover the whole price; nothing to finance")
	}

	loan, err := s.CalculateLoan(domain.LoanInput{
		Amount:       roundTo2Decimals(financed),
		InterestRate: input.InterestRate,
		TermMonths:   input.TermMonths,
	})
	if err != nil {
		return domain.AutoLoanResult{}, err
	}

	return domain.AutoLoanResult{
		TaxableAmount:  roundTo2Decimals(taxable),
		SalesTax:       roundTo2Decimals(salesTax),
		FinancedAmount: roundTo2Decimals(financed),
		UpfrontPayment: roundTo2Decimals(upfront),
		TotalCost:      sumCents(upfront, loan.TotalPayment),
		Loan:           loan,
	}, nil
}

// CalculatePayment solves either the monthly payment for a fixed term or the
// number of months for a fixed payment.
func (s *LoanService) CalculatePayment(input domain.PaymentInput) (domain.PaymentResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.PaymentResult{}, err
	}

	monthlyRate := (input.InterestRate / 100) / 12

	var payment float64
	var months int

	switch input.Mode {
	case domain.PaymentModeFixedTerm:
		if input.TermMonths < 1 {
			return domain.PaymentResult{}, domain.Invalid("term_months", "must be at least 1")
		}
		months = input.TermMonths
		payment = periodicPayment(input.Amount, monthlyRate, months)

	case domain.PaymentModeFixedPayment:
		if input.MonthlyPayment <= 0 {
			return domain.PaymentResult{}, domain.Invalid("monthly_payment", "must be greater than 0")
		}
		payment = input.MonthlyPayment
		n, err := monthsToRepay(input.Amount, monthlyRate, payment)
		if err != nil {
			return domain.PaymentResult{}, err
		}
		if n > 600 {
			return domain.PaymentResult{}, domain.Invalid("monthly_payment",
				"payment is too small; repayment would take more than 600 months")
		}
		months = n
	}

	plan := amortize(input.Amount, monthlyRate, payment, 0, months)
	final := 0.0
	if len(plan.Rows) > 0 {
		final = plan.Rows[len(plan.Rows)-1].Payment
	}

	return domain.PaymentResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TermMonths:     len(plan.Rows),
		FinalPayment:   final,
		TotalPayment:   plan.TotalPayment,
		TotalInterest:  plan.TotalInterest,
		Schedule:       plan.Rows,
	}, nil
}

// monthsToRepay inverts the annuity formula for n.
func monthsToRepay(principal, rate, payment float64) (int, error) {
	if rate == 0 {
		return int(math.Ceil(principal/payment - 1e-9)), nil
	}
	if payment <= principal*rate {
		return 0, domain.ErrPaymentTooLow
	}
	n := -math.Log(1-rate*principal/payment) / math.Log(1+rate)
	return int(math.Ceil(n - 1e-9)), nil
}

// CalculateSimpleLoan amortizes a loan paid at any of the supported
// frequencies.
func (s *LoanService) CalculateSimpleLoan(input domain.SimpleLoanInput) (domain.SimpleLoanResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.SimpleLoanResult{}, err
	}

	frequency := input.PaymentFrequency
	if frequency == "" {
		frequency = "monthly"
	}
	perYear := paymentFrequencies[frequency]

	n := int(math.Round(input.TermYears * float64(perYear)))
	if n < 1 {
		return domain.SimpleLoanResult{}, domain.Invalid("term_years",
			"term is shorter than one %s payment period", frequency)
	}

	rate := input.InterestRate / 100 / float64(perYear)
	payment := periodicPayment(input.Amount, rate, n)
	plan := amortize(input.Amount, rate, payment, 0, n)

	return domain.SimpleLoanResult{
		PaymentFrequency: frequency,
		Payments:         len(plan.Rows),
		PeriodicPayment:  roundTo2Decimals(payment),
		TotalPayment:     plan.TotalPayment,
		TotalInterest:    plan.TotalInterest,
		Schedule:         plan.Rows,
	}, nil
}

// SolveInterestRate finds the annual rate that makes the monthly payment
// retire the amount over the term, by bisection on the payment function.
func (s *LoanService) SolveInterestRate(input domain.InterestRateInput) (domain.InterestRateResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.InterestRateResult{}, err
	}

	n := input.TermMonths
	total := input.MonthlyPayment * float64(n)
	result := domain.InterestRateResult{
		TotalPayment:  roundTo2Decimals(total),
		TotalInterest: roundTo2Decimals(total - input.Amount),
	}

	if total < input.Amount-0.005 {
		return domain.InterestRateResult{}, domain.ErrNoSolution
	}
	if math.Abs(total-input.Amount) <= 0.005 {
		return result, nil
	}

	f := func(rate float64) float64 {
		return periodicPayment(input.Amount, rate, n) - input.MonthlyPayment
	}
	hi, ok := expandBracket(f, 0, 0.01, maxMonthlyRate)
	if !ok {
		return domain.InterestRateResult{}, domain.ErrNoSolution
	}
	rate, iterations, err := bisect(f, 0, hi)
	if err != nil {
		return domain.InterestRateResult{}, err
	}

	result.MonthlyRate = roundTo(rate*100, 6)
	result.AnnualRate = roundTo(rate*12*100, 4)
	result.EffectiveRate = roundTo((math.Pow(1+rate, 12)-1)*100, 4)
	result.Iterations = iterations
	return result, nil
}
