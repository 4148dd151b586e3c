package domain

type LoanInput struct {
	Amount       float64 `json:"amount" validate:"gt=0,lte=1000000000"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	TermMonths   int     `json:"term_months" validate:"gte=1,lte=600"`
	ExtraPayment float64 `json:"extra_payment" validate:"gte=0"`
}

// AmortizationRow is one payment period.
type AmortizationRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// YearSummary aggregates the rows of one year of payments.
type YearSummary struct {
	Year      int     `json:"year"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type LoanResult struct {
	MonthlyPayment float64           `json:"monthly_payment"`
	TotalPayment   float64           `json:"total_payment"`
	TotalInterest  float64           `json:"total_interest"`
	PayoffMonths   int               `json:"payoff_months"`
	InterestSaved  float64           `json:"interest_saved,omitempty"`
	Schedule       []AmortizationRow `json:"schedule"`
	YearlySummary  []YearSummary     `json:"yearly_summary"`
}

type AutoLoanInput struct {
	VehiclePrice      float64 `json:"vehicle_price" validate:"gt=0,lte=100000000"`
	DownPayment       float64 `json:"down_payment" validate:"gte=0"`
	TradeInValue      float64 `json:"trade_in_value" validate:"gte=0"`
	TradeInOwed       float64 `json:"trade_in_owed" validate:"gte=0"`
	SalesTaxRate      float64 `json:"sales_tax_rate" validate:"gte=0,lte=100"`
	Fees              float64 `json:"fees" validate:"gte=0"`
	FinanceTaxAndFees bool    `json:"finance_tax_and_fees"`
	InterestRate      float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	TermMonths        int     `json:"term_months" validate:"gte=1,lte=120"`
}

type AutoLoanResult struct {
	TaxableAmount  float64    `json:"taxable_amount"`
	SalesTax       float64    `json:"sales_tax"`
	FinancedAmount float64    `json:"financed_amount"`
	UpfrontPayment float64    `json:"upfront_payment"`
	TotalCost      float64    `json:"total_cost"`
	Loan           LoanResult `json:"loan"`
}

const (
	PaymentModeFixedTerm    = "fixed_term"
	PaymentModeFixedPayment = "fixed_payment"
)

type PaymentInput struct {
	Mode           string  `json:"mode" validate:"oneof=fixed_term fixed_payment"`
	Amount         float64 `json:"amount" validate:"gt=0,lte=1000000000"`
	InterestRate   float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	TermMonths     int     `json:"term_months" validate:"gte=0,lte=600"`
	MonthlyPayment float64 `json:"monthly_payment" validate:"gte=0"`
}

type PaymentResult struct {
	MonthlyPayment float64           `json:"monthly_payment"`
	TermMonths     int               `json:"term_months"`
	FinalPayment   float64           `json:"final_payment"`
	TotalPayment   float64           `json:"total_payment"`
	TotalInterest  float64           `json:"total_interest"`
	Schedule       []AmortizationRow `json:"schedule"`
}

type SimpleLoanInput struct {
	Amount           float64 `json:"amount" validate:"gt=0,lte=1000000000"`
	InterestRate     float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	TermYears        float64 `json:"term_years" validate:"gt=0,lte=50"`
	PaymentFrequency string  `json:"payment_frequency" validate:"omitempty,oneof=weekly biweekly semimonthly monthly quarterly semiannually annually"`
}

type SimpleLoanResult struct {
	PaymentFrequency string            `json:"payment_frequency"`
	Payments         int               `json:"payments"`
	PeriodicPayment  float64           `json:"periodic_payment"`
	TotalPayment     float64           `json:"total_payment"`
	TotalInterest    float64           `json:"total_interest"`
	Schedule         []AmortizationRow `json:"schedule"`
}

type InterestRateInput struct {
	Amount         float64 `json:"amount" validate:"gt=0,lte=1000000000"`
	TermMonths     int     `json:"term_months" validate:"gte=1,lte=600"`
	MonthlyPayment float64 `json:"monthly_payment" validate:"gt=0"`
}

type InterestRateResult struct {
	AnnualRate    float64 `json:"annual_rate"`
	EffectiveRate float64 `json:"effective_rate"`
	MonthlyRate   float64 `json:"monthly_rate"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
	Iterations    int     `json:"iterations"`
}
