package domain

const (
	StrategySnowball  = "snowball"
	StrategyAvalanche = "avalanche"
	StrategyCompare   = "compare"
)

type Debt struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Amount         float64 `json:"amount" validate:"gt=0,lte=100000000"`
	InterestRate   float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	MinimumPayment float64 `json:"minimum_payment" validate:"gt=0"`
}

type DebtPayoffInput struct {
	Debts                   []Debt  `json:"debts" validate:"required,min=1,max=50,dive"`
	AvailableMonthlyPayment float64 `json:"available_monthly_payment" validate:"gt=0"`
	Strategy                string  `json:"strategy" validate:"oneof=snowball avalanche compare"`
}

type MonthlyPayment struct {
	DebtName         string  `json:"debt_name"`
	Payment          float64 `json:"payment"`
	RemainingBalance float64 `json:"remaining_balance"`
}

type MonthlyPlan struct {
	Month     int              `json:"month"`
	Payments  []MonthlyPayment `json:"payments"`
	TotalPaid float64          `json:"total_paid"`
}

type StrategyResult struct {
	TotalInterestPaid float64 `json:"total_interest_paid"`
	MonthsToPayoff    int     `json:"months_to_payoff"`
}

type Savings struct {
	InterestSaved float64 `json:"interest_saved"`
	MonthsSaved   int     `json:"months_saved"`
}

type Comparison struct {
	Snowball  StrategyResult `json:"snowball"`
	Avalanche StrategyResult `json:"avalanche"`
	Savings   Savings        `json:"savings"`
}

type DebtPayoffResult struct {
	Strategy          string        `json:"strategy"`
	TotalDebt         float64       `json:"total_debt"`
	TotalInterestPaid float64       `json:"total_interest_paid"`
	MonthsToPayoff    int           `json:"months_to_payoff"`
	PayoffOrder       []string      `json:"payoff_order"`
	MonthlyPlan       []MonthlyPlan `json:"monthly_plan"`
	Comparison        *Comparison   `json:"comparison,omitempty"`
}
