package service

const (
	MaxDebtPayoffMonths  = 600  // 50 years
	DebtBalanceTolerance = 0.01 // a debt below one cent counts as paid

	// MaxTermRangeMonths caps how many terms one recommendation evaluates.
	MaxTermRangeMonths = 120

	maxSolverIterations = 200
	solverTolerance     = 1e-10

	// maxMonthlyRate is the largest accepted annual rate, 1000%, per month.
	maxMonthlyRate = 1000.0 / 12 / 100

	kgPerLb     = 0.45359237
	cmPerInch   = 2.54
	kmPerMile   = 1.609344
	kcalPerKg   = 7700.0
	daysPerWeek = 7
)
