package service

import (
	"errors"
	"fmt"
	"math"

	"calc-hub/domain"
	"calc-hub/reference"
)

var compoundingPeriods = map[string]float64{
	"annually":     1,
	"semiannually": 2,
	"quarterly":    4,
	"monthly":      12,
	"semimonthly":  24,
	"biweekly":     26,
	"weekly":       52,
	"daily":        365,
}

type SavingsService struct {
	tables *reference.Tables
}

func NewSavingsService(tables *reference.Tables) *SavingsService {
	return &SavingsService{tables: tables}
}

// monthlyEquivalentRate converts a nominal annual rate compounded the given
// way into the rate that yields the same growth over one month.
func monthlyEquivalentRate(annualRate float64, compounding string) float64 {
	r := annualRate / 100
	if compounding == "continuously" {
		return math.Exp(r/12) - 1
	}
	k, ok := compoundingPeriods[compounding]
	if !ok {
		k = 1
	}
	return math.Pow(1+r/k, k/12) - 1
}

// CalculateInterest simulates the balance month by month with deposits and
// taxed interest.
func (s *SavingsService) CalculateInterest(input domain.InterestInput) (domain.InterestResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.InterestResult{}, err
	}
	if input.Compounding == "" {
		input.Compounding = "annually"
	}
	beginning := input.ContributionTiming == domain.TimingBeginning

	rate := monthlyEquivalentRate(input.InterestRate, input.Compounding)
	taxRate := input.TaxRate / 100

	balance := input.Principal
	var totalContributions, totalInterest, totalTax float64
	schedule := make([]domain.GrowthRow, 0, input.Years)

	for year := 1; year <= input.Years; year++ {
		var deposits, yearInterest float64

		for month := 1; month <= 12; month++ {
			if beginning {
				deposit := input.MonthlyContribution
				if month == 1 {
					deposit += input.AnnualContribution
				}
				balance += deposit
				deposits += deposit
			}

			interest := balance * rate
			tax := interest * taxRate
			balance += interest - tax
			totalInterest += interest
			totalTax += tax
			yearInterest += interest - tax

			if !beginning {
				deposit := input.MonthlyContribution
				if month == 12 {
					deposit += input.AnnualContribution
				}
				balance += deposit
				deposits += deposit
			}
		}

		totalContributions += deposits
		schedule = append(schedule, domain.GrowthRow{
			Year:     year,
			Deposits: roundTo2Decimals(deposits),
			Interest: roundTo2Decimals(yearInterest),
			Balance:  roundTo2Decimals(balance),
		})
	}

	buyingPower := balance / math.Pow(1+input.InflationRate/100, float64(input.Years))

	return domain.InterestResult{
		EndingBalance:      roundTo2Decimals(balance),
		TotalPrincipal:     roundTo2Decimals(input.Principal + totalContributions),
		TotalContributions: roundTo2Decimals(totalContributions),
		TotalInterest:      roundTo2Decimals(totalInterest),
		InterestTax:        roundTo2Decimals(totalTax),
		BuyingPower:        roundTo2Decimals(buyingPower),
		Schedule:           schedule,
	}, nil
}

type investmentPlan struct {
	starting     float64
	contribution float64
	annualReturn float64
	perYear      int
	years        int
	beginning    bool
}

func (p investmentPlan) periodicRate() float64 {
	return math.Pow(1+p.annualReturn, 1/float64(p.perYear)) - 1
}

func (p investmentPlan) growth() float64 {
	return math.Pow(1+p.periodicRate(), float64(p.perYear*p.years))
}

// annuityFactor is the future value of one unit contributed every period.
func (p investmentPlan) annuityFactor() float64 {
	n := float64(p.perYear * p.years)
	i := p.periodicRate()
	if i == 0 {
		return n
	}
	factor := (math.Pow(1+i, n) - 1) / i
	if p.beginning {
		factor *= 1 + i
	}
	return factor
}

func (p investmentPlan) endAmount() float64 {
	return p.starting*p.growth() + p.contribution*p.annuityFactor()
}

func (p investmentPlan) schedule() []domain.GrowthRow {
	i := p.periodicRate()
	balance := p.starting
	rows := make([]domain.GrowthRow, 0, p.years)
	for year := 1; year <= p.years; year++ {
		var deposits, interest float64
		for period := 0; period < p.perYear; period++ {
			if p.beginning {
				balance += p.contribution
				deposits += p.contribution
			}
			earned := balance * i
			balance += earned
			interest += earned
			if !p.beginning {
				balance += p.contribution
				deposits += p.contribution
			}
		}
		rows = append(rows, domain.GrowthRow{
			Year:     year,
			Deposits: roundTo2Decimals(deposits),
			Interest: roundTo2Decimals(interest),
			Balance:  roundTo2Decimals(balance),
		})
	}
	return rows
}

// CalculateInvestment solves one of end amount, contribution, return rate or
// starting amount from the others.
func (s *SavingsService) CalculateInvestment(input domain.InvestmentInput) (domain.InvestmentResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.InvestmentResult{}, err
	}
	if input.SolveFor == "" {
		input.SolveFor = domain.SolveEndAmount
	}
	if input.SolveFor != domain.SolveEndAmount && input.TargetAmount <= 0 {
		return domain.InvestmentResult{}, domain.Invalid("target_amount",
			"is required when solving for %s", input.SolveFor)
	}

	plan := investmentPlan{
		starting:     input.StartingAmount,
		contribution: input.Contribution,
		annualReturn: input.ReturnRate / 100,
		perYear:      12,
		years:        input.Years,
		beginning:    input.ContributionTiming == domain.TimingBeginning,
	}
	if input.ContributionFrequency == "annually" {
		plan.perYear = 1
	}

	switch input.SolveFor {
	case domain.SolveContribution:
		c := (input.TargetAmount - plan.starting*plan.growth()) / plan.annuityFactor()
		if c < 0 {
			return domain.InvestmentResult{}, errors.Join(domain.ErrNoSolution,
				errors.New("the starting amount alone exceeds the target"))
		}
		plan.contribution = c

	case domain.SolveStartingAmount:
		start := (input.TargetAmount - plan.contribution*plan.annuityFactor()) / plan.growth()
		if start < 0 {
			return domain.InvestmentResult{}, errors.Join(domain.ErrNoSolution,
				errors.New("the contributions alone exceed the target"))
		}
		plan.starting = start

	case domain.SolveReturnRate:
		f := func(r float64) float64 {
			p := plan
			p.annualReturn = r
			return p.endAmount() - input.TargetAmount
		}
		if f(0) == 0 {
			plan.annualReturn = 0
			break
		}
		hi, ok := expandBracket(f, 0, 0.1, 100)
		if !ok {
			return domain.InvestmentResult{}, domain.ErrNoSolution
		}
		r, _, err := bisect(f, 0, hi)
		if err != nil {
			return domain.InvestmentResult{}, fmt.Errorf("return rate: %w", err)
		}
		plan.annualReturn = r
	}

	end := plan.endAmount()
	totalContributions := plan.contribution * float64(plan.perYear*plan.years)

	return domain.InvestmentResult{
		SolveFor:           input.SolveFor,
		StartingAmount:     roundTo2Decimals(plan.starting),
		Contribution:       roundTo2Decimals(plan.contribution),
		ReturnRate:         roundTo(plan.annualReturn*100, 4),
		EndAmount:          roundTo2Decimals(end),
		TotalContributions: roundTo2Decimals(totalContributions),
		TotalInterest:      roundTo2Decimals(end - plan.starting - totalContributions),
		Schedule:           plan.schedule(),
	}, nil
}

// tvm evaluates PV(1+i)^n + PMT(1+i*t)((1+i)^n-1)/i + FV, which is zero for a
// consistent set of values.
func tvm(n, i, pv, pmt, fv, t float64) float64 {
	if i == 0 {
		return pv + pmt*n + fv
	}
	g := math.Pow(1+i, n)
	return pv*g + pmt*(1+i*t)*(g-1)/i + fv
}

// SolveFinance solves one time-value-of-money variable from the other four.
func (s *SavingsService) SolveFinance(input domain.FinanceInput) (domain.FinanceResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.FinanceResult{}, err
	}
	ppy := float64(input.PeriodsPerYear)
	if ppy == 0 {
		ppy = 1
	}
	t := 0.0
	if input.PaymentTiming == domain.TimingBeginning {
		t = 1
	}

	n, pv, pmt, fv := input.N, input.PV, input.PMT, input.FV
	i := input.IY / 100 / ppy

	switch input.SolveFor {
	case domain.TVMSolveFV:
		fv = -tvm(n, i, pv, pmt, 0, t)

	case domain.TVMSolvePV:
		if i == 0 {
			pv = -(fv + pmt*n)
		} else {
			g := math.Pow(1+i, n)
			pv = -(fv + pmt*(1+i*t)*(g-1)/i) / g
		}

	case domain.TVMSolvePMT:
		if n == 0 {
			return domain.FinanceResult{}, domain.Invalid("n", "must be greater than 0 when solving for pmt")
		}
		if i == 0 {
			pmt = -(pv + fv) / n
		} else {
			g := math.Pow(1+i, n)
			pmt = -(fv + pv*g) * i / ((1 + i*t) * (g - 1))
		}

	case domain.TVMSolveN:
		var solved float64
		if i == 0 {
			if pmt == 0 {
				return domain.FinanceResult{}, domain.ErrNoSolution
			}
			solved = -(pv + fv) / pmt
		} else {
			a := pmt * (1 + i*t) / i
			g := (a - fv) / (pv + a)
			if pv+a == 0 || g <= 0 {
				return domain.FinanceResult{}, domain.ErrNoSolution
			}
			solved = math.Log(g) / math.Log(1+i)
		}
		if solved < 0 || math.IsNaN(solved) || math.IsInf(solved, 0) {
			return domain.FinanceResult{}, domain.ErrNoSolution
		}
		n = solved

	case domain.TVMSolveIY:
		if n == 0 {
			return domain.FinanceResult{}, domain.Invalid("n", "must be greater than 0 when solving for iy")
		}
		f := func(rate float64) float64 { return tvm(n, rate, pv, pmt, fv, t) }
		rate, _, ok := newton(f, 0.01)
		if !ok || rate <= -1 {
			hi, found := expandBracket(f, -0.99, 0.5, 1000)
			if !found {
				return domain.FinanceResult{}, domain.ErrNoSolution
			}
			var err error
			if rate, _, err = bisect(f, -0.99, hi); err != nil {
				return domain.FinanceResult{}, fmt.Errorf("interest rate: %w", err)
			}
		}
		i = rate
	}

	totalPayments := math.Abs(pmt * n)

	return domain.FinanceResult{
		SolveFor:      input.SolveFor,
		N:             roundTo(n, 4),
		IY:            roundTo(i*ppy*100, 4),
		PV:            roundTo2Decimals(pv),
		PMT:           roundTo2Decimals(pmt),
		FV:            roundTo2Decimals(fv),
		TotalPayments: roundTo2Decimals(totalPayments),
		TotalInterest: roundTo2Decimals(math.Abs(pv + pmt*n + fv)),
	}, nil
}

// PlanRetirement projects savings to retirement and draws them down against
// an inflation-adjusted income need.
func (s *SavingsService) PlanRetirement(input domain.RetirementInput) (domain.RetirementResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.RetirementResult{}, err
	}
	verr := &domain.ValidationError{}
	if input.RetirementAge <= input.CurrentAge {
		verr.Add("retirement_age", "must be greater than current_age")
	}
	if input.LifeExpectancy <= input.RetirementAge {
		verr.Add("life_expectancy", "must be greater than retirement_age")
	}
	if err := verr.Err(); err != nil {
		return domain.RetirementResult{}, err
	}

	yearsTo := input.RetirementAge - input.CurrentAge
	yearsIn := input.LifeExpectancy - input.RetirementAge
	pre := input.PreRetirementReturn / 100
	post := input.PostRetirementReturn / 100
	inflation := input.InflationRate / 100
	growth := input.ContributionGrowth / 100

	timeline := make([]domain.RetirementYear, 0, yearsTo+yearsIn)

	balance := input.CurrentSavings
	for y := 0; y < yearsTo; y++ {
		contribution := input.AnnualContribution * math.Pow(1+growth, float64(y))
		balance = balance*(1+pre) + contribution
		timeline = append(timeline, domain.RetirementYear{
			Age:          input.CurrentAge + y + 1,
			Contribution: roundTo2Decimals(contribution),
			Balance:      roundTo2Decimals(balance),
		})
	}
	atRetirement := balance

	firstWithdrawal := math.Max(0, input.DesiredIncome-input.OtherIncome) * math.Pow(1+inflation, float64(yearsTo))

	// present value at retirement of withdrawals taken at the start of each
	// year and growing with inflation
	needed := 0.0
	for k := 0; k < yearsIn; k++ {
		needed += firstWithdrawal * math.Pow(1+inflation, float64(k)) / math.Pow(1+post, float64(k))
	}

	shortfall := math.Max(0, needed-atRetirement)
	additional := 0.0
	if shortfall > 0 {
		if pre == 0 {
			additional = shortfall / float64(yearsTo)
		} else {
			additional = shortfall * pre / (math.Pow(1+pre, float64(yearsTo)) - 1)
		}
	}

	lastsUntil := input.LifeExpectancy
	depleted := false
	for k := 0; k < yearsIn; k++ {
		want := firstWithdrawal * math.Pow(1+inflation, float64(k))
		withdrawal := math.Min(want, balance)
		if !depleted && want-withdrawal > 0.005 {
			lastsUntil = input.RetirementAge + k
			depleted = true
		}
		balance = (balance - withdrawal) * (1 + post)
		timeline = append(timeline, domain.RetirementYear{
			Age:        input.RetirementAge + k + 1,
			Withdrawal: roundTo2Decimals(withdrawal),
			Balance:    roundTo2Decimals(balance),
		})
	}

	return domain.RetirementResult{
		YearsToRetirement:      yearsTo,
		YearsInRetirement:      yearsIn,
		SavingsAtRetirement:    roundTo2Decimals(atRetirement),
		FirstYearWithdrawal:    roundTo2Decimals(firstWithdrawal),
		NestEggNeeded:          roundTo2Decimals(needed),
		Shortfall:              roundTo2Decimals(shortfall),
		AdditionalAnnualSaving: roundTo2Decimals(additional),
		OnTrack:                shortfall < 0.005,
		MoneyLastsUntilAge:     lastsUntil,
		Timeline:               timeline,
	}, nil
}

// AdjustForInflation converts an amount between years using CPI-U data or a
// fixed annual rate.
func (s *SavingsService) AdjustForInflation(input domain.InflationInput) (domain.InflationResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.InflationResult{}, err
	}

	result := domain.InflationResult{
		Mode:           input.Mode,
		OriginalAmount: roundTo2Decimals(input.Amount),
	}

	switch input.Mode {
	case domain.InflationModeCPI:
		if s.tables == nil {
			return domain.InflationResult{}, domain.ErrDataUnavailable
		}
		verr := &domain.ValidationError{}
		start, ok := s.tables.CPI(input.StartYear)
		if !ok {
			verr.Add("start_year", "no CPI data for %d", input.StartYear)
		}
		end, ok := s.tables.CPI(input.EndYear)
		if !ok {
			verr.Add("end_year", "no CPI data for %d", input.EndYear)
		}
		if err := verr.Err(); err != nil {
			return domain.InflationResult{}, err
		}

		ratio := end / start
		years := math.Abs(float64(input.EndYear - input.StartYear))
		result.AdjustedAmount = roundTo2Decimals(input.Amount * ratio)
		result.CumulativeInflation = roundTo((ratio-1)*100, 4)
		if years > 0 {
			// average over the span, positive when prices rose from the
			// earlier year to the later one
			if input.EndYear < input.StartYear {
				ratio = 1 / ratio
			}
			result.AverageAnnualRate = roundTo((math.Pow(ratio, 1/years)-1)*100, 4)
		}
		result.StartIndex = start
		result.EndIndex = end

	case domain.InflationModeForward, domain.InflationModeBackward:
		factor := math.Pow(1+input.Rate/100, float64(input.Years))
		if input.Mode == domain.InflationModeForward {
			result.AdjustedAmount = roundTo2Decimals(input.Amount * factor)
		} else {
			result.AdjustedAmount = roundTo2Decimals(input.Amount / factor)
		}
		result.CumulativeInflation = roundTo((factor-1)*100, 4)
		result.AverageAnnualRate = roundTo(input.Rate, 4)
	}

	return result, nil
}
