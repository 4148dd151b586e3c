package domain

const (
	TimingBeginning = "beginning"
	TimingEnd       = "end"
)

type InterestInput struct {
	Principal           float64 `json:"principal" validate:"gte=0,lte=1000000000"`
	AnnualContribution  float64 `json:"annual_contribution" validate:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	ContributionTiming  string  `json:"contribution_timing" validate:"omitempty,oneof=beginning end"`
	InterestRate        float64 `json:"interest_rate" validate:"gte=0,lte=100"`
	Compounding         string  `json:"compounding" validate:"omitempty,oneof=annually semiannually quarterly monthly semimonthly biweekly weekly daily continuously"`
	Years               int     `json:"years" validate:"gte=1,lte=100"`
	TaxRate             float64 `json:"tax_rate" validate:"gte=0,lt=100"`
	InflationRate       float64 `json:"inflation_rate" validate:"gte=0,lte=100"`
}

type GrowthRow struct {
	Year     int     `json:"year"`
	Deposits float64 `json:"deposits"`
	Interest float64 `json:"interest"`
	Balance  float64 `json:"balance"`
}

type InterestResult struct {
	EndingBalance      float64     `json:"ending_balance"`
	TotalPrincipal     float64     `json:"total_principal"`
	TotalContributions float64     `json:"total_contributions"`
	TotalInterest      float64     `json:"total_interest"`
	InterestTax        float64     `json:"interest_tax"`
	BuyingPower        float64     `json:"buying_power"`
	Schedule           []GrowthRow `json:"schedule"`
}

const (
	SolveEndAmount      = "end_amount"
	SolveContribution   = "contribution"
	SolveReturnRate     = "return_rate"
	SolveStartingAmount = "starting_amount"
)

type InvestmentInput struct {
	SolveFor              string  `json:"solve_for" validate:"omitempty,oneof=end_amount contribution return_rate starting_amount"`
	StartingAmount        float64 `json:"starting_amount" validate:"gte=0,lte=1000000000"`
	Contribution          float64 `json:"contribution" validate:"gte=0"`
	ContributionFrequency string  `json:"contribution_frequency" validate:"omitempty,oneof=monthly annually"`
	ContributionTiming    string  `json:"contribution_timing" validate:"omitempty,oneof=beginning end"`
	ReturnRate            float64 `json:"return_rate" validate:"gte=0,lte=100"`
	Years                 int     `json:"years" validate:"gte=1,lte=100"`
	TargetAmount          float64 `json:"target_amount" validate:"gte=0"`
}

type InvestmentResult struct {
	SolveFor           string      `json:"solve_for"`
	StartingAmount     float64     `json:"starting_amount"`
	Contribution       float64     `json:"contribution"`
	ReturnRate         float64     `json:"return_rate"`
	EndAmount          float64     `json:"end_amount"`
	TotalContributions float64     `json:"total_contributions"`
	TotalInterest      float64     `json:"total_interest"`
	Schedule           []GrowthRow `json:"schedule"`
}

const (
	TVMSolveN   = "n"
	TVMSolveIY  = "iy"
	TVMSolvePV  = "pv"
	TVMSolvePMT = "pmt"
	TVMSolveFV  = "fv"
)

// FinanceInput holds the five time-value-of-money variables. Money paid out
// is negative and money received is positive.
type FinanceInput struct {
	SolveFor       string  `json:"solve_for" validate:"oneof=n iy pv pmt fv"`
	N              float64 `json:"n" validate:"gte=0,lte=10000"`
	IY             float64 `json:"iy" validate:"gte=-99,lte=1000"`
	PV             float64 `json:"pv"`
	PMT            float64 `json:"pmt"`
	FV             float64 `json:"fv"`
	PeriodsPerYear int     `json:"periods_per_year" validate:"omitempty,gte=1,lte=365"`
	PaymentTiming  string  `json:"payment_timing" validate:"omitempty,oneof=beginning end"`
}

type FinanceResult struct {
	SolveFor      string  `json:"solve_for"`
	N             float64 `json:"n"`
	IY            float64 `json:"iy"`
	PV            float64 `json:"pv"`
	PMT           float64 `json:"pmt"`
	FV            float64 `json:"fv"`
	TotalPayments float64 `json:"total_payments"`
	TotalInterest float64 `json:"total_interest"`
}

type RetirementInput struct {
	CurrentAge           int     `json:"current_age" validate:"gte=0,lte=120"`
	RetirementAge        int     `json:"retirement_age" validate:"gte=1,lte=120"`
	LifeExpectancy       int     `json:"life_expectancy" validate:"gte=1,lte=130"`
	CurrentSavings       float64 `json:"current_savings" validate:"gte=0"`
	AnnualContribution   float64 `json:"annual_contribution" validate:"gte=0"`
	ContributionGrowth   float64 `json:"contribution_growth" validate:"gte=0,lte=100"`
	PreRetirementReturn  float64 `json:"pre_retirement_return" validate:"gte=0,lte=100"`
	PostRetirementReturn float64 `json:"post_retirement_return" validate:"gte=0,lte=100"`
	InflationRate        float64 `json:"inflation_rate" validate:"gte=0,lte=100"`
	DesiredIncome        float64 `json:"desired_income" validate:"gte=0"`
	OtherIncome          float64 `json:"other_income" validate:"gte=0"`
}

type RetirementYear struct {
	Age          int     `json:"age"`
	Contribution float64 `json:"contribution"`
	Withdrawal   float64 `json:"withdrawal"`
	Balance      float64 `json:"balance"`
}

type RetirementResult struct {
	YearsToRetirement      int              `json:"years_to_retirement"`
	YearsInRetirement      int              `json:"years_in_retirement"`
	SavingsAtRetirement    float64          `json:"savings_at_retirement"`
	FirstYearWithdrawal    float64          `json:"first_year_withdrawal"`
	NestEggNeeded          float64          `json:"nest_egg_needed"`
	Shortfall              float64          `json:"shortfall"`
	AdditionalAnnualSaving float64          `json:"additional_annual_saving"`
	OnTrack                bool             `json:"on_track"`
	MoneyLastsUntilAge     int              `json:"money_lasts_until_age"`
	Timeline               []RetirementYear `json:"timeline"`
}

const (
	InflationModeCPI      = "cpi"
	InflationModeForward  = "forward"
	InflationModeBackward = "backward"
)

type InflationInput struct {
	Mode      string  `json:"mode" validate:"oneof=cpi forward backward"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	StartYear int     `json:"start_year" validate:"omitempty,gte=1900,lte=2100"`
	EndYear   int     `json:"end_year" validate:"omitempty,gte=1900,lte=2100"`
	Rate      float64 `json:"rate" validate:"gte=0,lte=100"`
	Years     int     `json:"years" validate:"gte=0,lte=200"`
}

type InflationResult struct {
	Mode                string  `json:"mode"`
	OriginalAmount      float64 `json:"original_amount"`
	AdjustedAmount      float64 `json:"adjusted_amount"`
	CumulativeInflation float64 `json:"cumulative_inflation"`
	AverageAnnualRate   float64 `json:"average_annual_rate"`
	StartIndex          float64 `json:"start_index,omitempty"`
	EndIndex            float64 `json:"end_index,omitempty"`
}
