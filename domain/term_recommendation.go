package domain

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

type TermRecommendationInput struct {
	Amount            float64 `json:"amount" validate:"gt=0,lte=1000000000"`
	InterestRate      float64 `json:"interest_rate" validate:"gte=0,lte=1000"`
	MinTermMonths     int     `json:"min_term_months" validate:"gte=1,lte=600"`
	MaxTermMonths     int     `json:"max_term_months" validate:"gte=1,lte=600"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment" validate:"gt=0"`
	Preference        string  `json:"preference" validate:"oneof=minimize_interest minimize_payment balanced"`
}

type TermRecommendation struct {
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}
