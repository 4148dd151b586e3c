package service

import (
	"math"

	"calc-hub/domain"
)

// periodicPayment is the level annuity payment that retires principal over n
// periods at the periodic rate.
func periodicPayment(principal, rate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(n)
	}
	return principal * (rate / (1 - math.Pow(1+rate, -float64(n))))
}

type amortization struct {
	Rows          []domain.AmortizationRow
	TotalPayment  float64
	TotalInterest float64
}

// amortize applies payment+extra each period until the balance is zero or
// maxPeriods is reached. The last row absorbs any rounding residue so the
// balance ends at exactly zero.
func amortize(principal, rate, payment, extra float64, maxPeriods int) amortization {
	var out amortization
	balance := principal

	for period := 1; period <= maxPeriods && balance > 0; period++ {
		interest := balance * rate
		pay := payment + extra
		if pay > balance+interest || period == maxPeriods {
			pay = balance + interest
		}
		paidPrincipal := pay - interest
		balance -= paidPrincipal
		if balance < 1e-7 {
			balance = 0
		}

		out.TotalPayment += pay
		out.TotalInterest += interest
		out.Rows = append(out.Rows, domain.AmortizationRow{
			Period:    period,
			Payment:   roundTo2Decimals(pay),
			Principal: roundTo2Decimals(paidPrincipal),
			Interest:  roundTo2Decimals(interest),
			Balance:   roundTo2Decimals(balance),
		})
	}

	out.TotalPayment = roundTo2Decimals(out.TotalPayment)
	out.TotalInterest = roundTo2Decimals(out.TotalInterest)
	return out
}

// summarizeYears folds schedule rows into one entry per year of payments.
func summarizeYears(rows []domain.AmortizationRow, periodsPerYear int) []domain.YearSummary {
	if periodsPerYear <= 0 {
		return nil
	}
	var out []domain.YearSummary
	for _, row := range rows {
		year := (row.Period-1)/periodsPerYear + 1
		if len(out) == 0 || out[len(out)-1].Year != year {
			out = append(out, domain.YearSummary{Year: year})
		}
		last := &out[len(out)-1]
		last.Principal = sumCents(last.Principal, row.Principal)
		last.Interest = sumCents(last.Interest, row.Interest)
		last.Balance = row.Balance
	}
	return out
}
