package domain

const (
	FilingSingle          = "single"
	FilingMarriedJoint    = "married_joint"
	FilingMarriedSeparate = "married_separate"
	FilingHeadOfHousehold = "head_of_household"
)

type IncomeTaxInput struct {
	TaxYear             int     `json:"tax_year" validate:"gte=2000,lte=2100"`
	FilingStatus        string  `json:"filing_status" validate:"oneof=single married_joint married_separate head_of_household"`
	Wages               float64 `json:"wages" validate:"gte=0"`
	OtherIncome         float64 `json:"other_income" validate:"gte=0"`
	PreTaxDeductions    float64 `json:"pre_tax_deductions" validate:"gte=0"`
	ItemizedDeductions  float64 `json:"itemized_deductions" validate:"gte=0"`
	TaxCredits          float64 `json:"tax_credits" validate:"gte=0"`
	Withholding         float64 `json:"withholding" validate:"gte=0"`
	IncludePayrollTaxes bool    `json:"include_payroll_taxes"`
}

type BracketTax struct {
	Rate        float64 `json:"rate"`
	From        float64 `json:"from"`
	To          float64 `json:"to,omitempty"`
	TaxedIncome float64 `json:"taxed_income"`
	Tax         float64 `json:"tax"`
}

type IncomeTaxResult struct {
	TaxYear               int          `json:"tax_year"`
	FilingStatus          string       `json:"filing_status"`
	GrossIncome           float64      `json:"gross_income"`
	AdjustedGross         float64      `json:"adjusted_gross_income"`
	Deduction             float64      `json:"deduction"`
	DeductionType         string       `json:"deduction_type"`
	TaxableIncome         float64      `json:"taxable_income"`
	IncomeTax             float64      `json:"income_tax"`
	CreditsApplied        float64      `json:"credits_applied"`
	IncomeTaxAfterCredits float64      `json:"income_tax_after_credits"`
	SocialSecurityTax     float64      `json:"social_security_tax"`
	MedicareTax           float64      `json:"medicare_tax"`
	TotalTax              float64      `json:"total_tax"`
	MarginalRate          float64      `json:"marginal_rate"`
	EffectiveRate         float64      `json:"effective_rate"`
	AfterTaxIncome        float64      `json:"after_tax_income"`
	RefundOrOwed          float64      `json:"refund_or_owed"`
	Brackets              []BracketTax `json:"brackets"`
}
