package service

import "calc-hub/domain"

const calculatorsPath = "/api/v1/calculators/"

const (
	CategoryFinancial = "financial"
	CategoryHealth    = "health"
	CategoryMath      = "math"
	CategoryOther     = "other"
)

var catalog = []domain.CalculatorInfo{
	{Name: "loan", Category: CategoryFinancial, Description: "Monthly payment, amortization schedule and savings from extra payments"},
	{Name: "auto-loan", Category: CategoryFinancial, Description: "Vehicle financing with trade-in, sales tax and fees"},
	{Name: "payment", Category: CategoryFinancial, Description: "Payment for a fixed term or term for a fixed payment"},
	{Name: "simple-loan", Category: CategoryFinancial, Description: "Per-period payment for weekly to annual schedules"},
	{Name: "interest-rate", Category: CategoryFinancial, Description: "Annual rate implied by an amount, term and payment"},
	{Name: "interest", Category: CategoryFinancial, Description: "Compound interest with contributions, tax and inflation"},
	{Name: "investment", Category: CategoryFinancial, Description: "Solve end amount, contribution, return rate or starting amount"},
	{Name: "finance", Category: CategoryFinancial, Description: "Time value of money: N, I/Y, PV, PMT, FV"},
	{Name: "retirement", Category: CategoryFinancial, Description: "Savings projection, nest egg needed and drawdown"},
	{Name: "inflation", Category: CategoryFinancial, Description: "Value of money across years from CPI or a fixed rate"},
	{Name: "income-tax", Category: CategoryFinancial, Description: "US federal income and payroll tax estimate"},
	{Name: "term-recommendation", Category: CategoryFinancial, Description: "Rank loan terms that fit a maximum payment"},
	{Name: "debt-payoff", Category: CategoryFinancial, Description: "Snowball and avalanche debt payoff plans"},
	{Name: "bmi", Category: CategoryHealth, Description: "Body mass index, category and healthy weight range"},
	{Name: "body-fat", Category: CategoryHealth, Description: "Body fat by U.S. Navy or BMI method"},
	{Name: "calorie", Category: CategoryHealth, Description: "BMR and daily calories for weight goals"},
	{Name: "due-date", Category: CategoryHealth, Description: "Pregnancy due date, gestational age and trimesters"},
	{Name: "date-add", Category: CategoryOther, Description: "Add or subtract years, months, weeks and days"},
	{Name: "date-diff", Category: CategoryOther, Description: "Duration between two dates"},
	{Name: "pace", Category: CategoryOther, Description: "Running pace, time or distance"},
	{Name: "percentage", Category: CategoryMath, Description: "Percent of, percent change and percent difference"},
	{Name: "fraction", Category: CategoryMath, Description: "Mixed-number arithmetic"},
	{Name: "triangle", Category: CategoryMath, Description: "Solve a triangle from three known values"},
	{Name: "random", Category: CategoryMath, Description: "Random integers or decimals in a range"},
	{Name: "expression", Category: CategoryMath, Description: "Scientific calculator expression"},
}

// Catalog lists every calculator with its endpoint.
func Catalog() []domain.CalculatorInfo {
	out := make([]domain.CalculatorInfo, len(catalog))
	for i, c := range catalog {
		c.Path = calculatorsPath + c.Name
		out[i] = c
	}
	return out
}
