package service

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"

	"calc-hub/domain"
)

type DebtPayoffService struct {
	logger *slog.Logger
}

func NewDebtPayoffService(logger *slog.Logger) *DebtPayoffService {
	return &DebtPayoffService{logger: logger}
}

// CalculatePayoffPlan simulates month-by-month payoff with the snowball or
// avalanche ordering, or compares both.
func (s *DebtPayoffService) CalculatePayoffPlan(input domain.DebtPayoffInput) (domain.DebtPayoffResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.DebtPayoffResult{}, err
	}

	verr := &domain.ValidationError{}
	names := make(map[string]bool)
	totalMinimumPayments := 0.0
	for i, debt := range input.Debts {
		field := fmt.Sprintf("debts[%d]", i)
		if names[debt.Name] {
			verr.Add(field+".name", "duplicate debt name %q", debt.Name)
		}
		names[debt.Name] = true

		// the minimum payment must at least cover the monthly interest
		monthlyInterest := debt.Amount * (debt.InterestRate / 100) / 12
		if debt.MinimumPayment < monthlyInterest {
			verr.Add(field+".minimum_payment",
				"minimum payment %.2f is below the monthly interest %.2f", debt.MinimumPayment, monthlyInterest)
		}
		totalMinimumPayments += debt.MinimumPayment
	}
	if totalMinimumPayments > input.AvailableMonthlyPayment {
		verr.Add("available_monthly_payment", "does not cover the sum of minimum payments (%.2f)", totalMinimumPayments)
	}
	if err := verr.Err(); err != nil {
		return domain.DebtPayoffResult{}, err
	}

	if input.Strategy != domain.StrategyCompare {
		return s.simulate(input, input.Strategy), nil
	}

	snowball := s.simulate(input, domain.StrategySnowball)
	avalanche := s.simulate(input, domain.StrategyAvalanche)

	// report the cheaper plan, with both summarized
	result := snowball
	if avalanche.TotalInterestPaid < snowball.TotalInterestPaid {
		result = avalanche
	}
	result.Comparison = &domain.Comparison{
		Snowball: domain.StrategyResult{
			TotalInterestPaid: snowball.TotalInterestPaid,
			MonthsToPayoff:    snowball.MonthsToPayoff,
		},
		Avalanche: domain.StrategyResult{
			TotalInterestPaid: avalanche.TotalInterestPaid,
			MonthsToPayoff:    avalanche.MonthsToPayoff,
		},
		Savings: domain.Savings{
			InterestSaved: roundTo2Decimals(math.Max(0, snowball.TotalInterestPaid-avalanche.TotalInterestPaid)),
			MonthsSaved:   snowball.MonthsToPayoff - avalanche.MonthsToPayoff,
		},
	}
	return result, nil
}

func (s *DebtPayoffService) simulate(
	input domain.DebtPayoffInput,
	strategy string,
) domain.DebtPayoffResult {

	debts := make([]domain.Debt, len(input.Debts))
	copy(debts, input.Debts)

	if strategy == domain.StrategySnowball {
		// smallest balance first
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Amount < debts[j].Amount
		})
	} else {
		// highest rate first
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].InterestRate > debts[j].InterestRate
		})
	}

	balances := make(map[string]float64, len(debts))
	for _, debt := range debts {
		balances[debt.Name] = debt.Amount
	}

	var monthlyPlan []domain.MonthlyPlan
	var payoffOrder []string
	totalInterestPaid := 0.0
	month := 0

	for {
		month++
		available := input.AvailableMonthlyPayment
		payments := []domain.MonthlyPayment{}
		totalPaid := 0.0

		// accrue interest on every open debt
		interest := make(map[string]float64, len(debts))
		for _, debt := range debts {
			if balances[debt.Name] <= 0 {
				continue
			}
			monthlyRate := (debt.InterestRate / 100) / 12
			interest[debt.Name] = balances[debt.Name] * monthlyRate
			totalInterestPaid += interest[debt.Name]
		}

		// minimum payments first
		for _, debt := range debts {
			if balances[debt.Name] <= 0 {
				continue
			}

			owed := balances[debt.Name] + interest[debt.Name]
			payment := math.Max(debt.MinimumPayment, interest[debt.Name])
			payment = math.Min(payment, owed)
			payment = math.Min(payment, available)
			if payment <= 0 {
				continue
			}

			balances[debt.Name] = math.Max(0, owed-payment)
			payments = append(payments, domain.MonthlyPayment{
				DebtName:         debt.Name,
				Payment:          roundTo2Decimals(payment),
				RemainingBalance: roundTo2Decimals(balances[debt.Name]),
			})
			available -= payment
			totalPaid += payment
		}

		// surplus goes to the first open debt in strategy order, rolling
		// over to the next one when it is cleared
		for _, debt := range debts {
			if available <= 0 {
				break
			}
			if balances[debt.Name] <= 0 {
				continue
			}
			extra := math.Min(available, balances[debt.Name])
			balances[debt.Name] -= extra
			available -= extra
			totalPaid += extra
			for i := range payments {
				if payments[i].DebtName == debt.Name {
					payments[i].Payment = roundTo2Decimals(payments[i].Payment + extra)
					payments[i].RemainingBalance = roundTo2Decimals(balances[debt.Name])
					break
				}
			}
		}

		for _, debt := range debts {
			if balances[debt.Name] <= DebtBalanceTolerance && balances[debt.Name] >= 0 && !slices.Contains(payoffOrder, debt.Name) {
				balances[debt.Name] = 0
				payoffOrder = append(payoffOrder, debt.Name)
			}
		}

		monthlyPlan = append(monthlyPlan, domain.MonthlyPlan{
			Month:     month,
			Payments:  payments,
			TotalPaid: roundTo2Decimals(totalPaid),
		})

		if len(payoffOrder) == len(debts) {
			break
		}

		// guard against plans that never converge
		if month >= MaxDebtPayoffMonths {
			s.logger.Warn("debt payoff reached the month limit",
				"strategy", strategy, "months", MaxDebtPayoffMonths)
			break
		}
	}

	totalDebt := 0.0
	for _, debt := range input.Debts {
		totalDebt += debt.Amount
	}

	return domain.DebtPayoffResult{
		Strategy:          strategy,
		TotalDebt:         roundTo2Decimals(totalDebt),
		TotalInterestPaid: roundTo2Decimals(totalInterestPaid),
		MonthsToPayoff:    month,
		PayoffOrder:       payoffOrder,
		MonthlyPlan:       monthlyPlan,
	}
}
