package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
	"calc-hub/logging"
)

func TestRecommendTerm(t *testing.T) {
	service := NewTermRecommendationService(NewLoanService())
	base := domain.TermRecommendationInput{
		Amount:            10000,
		InterestRate:      6,
		MinTermMonths:     12,
		MaxTermMonths:     36,
		MaxMonthlyPayment: 500,
	}

	t.Run("minimize interest picks the shortest affordable term", func(t *testing.T) {
		input := base
		input.Preference = domain.PreferenceMinimizeInterest

		result, err := service.RecommendTerm(input)
		require.NoError(t, err)

		assert.Equal(t, 22, result.RecommendedTerm)
		assert.Len(t, result.Recommendations, 15)
		assert.Equal(t, 481.14, result.Recommendations[0].MonthlyPayment)
		for _, rec := range result.Recommendations {
			assert.LessOrEqual(t, rec.MonthlyPayment, 500.0)
			assert.Equal(t, "Term optimized to minimize total interest cost", rec.Reason)
		}
		for i := 1; i < len(result.Recommendations); i++ {
			assert.GreaterOrEqual(t, result.Recommendations[i-1].Score, result.Recommendations[i].Score)
		}
	})

	t.Run("minimize payment picks the longest term", func(t *testing.T) {
		input := base
		input.Preference = domain.PreferenceMinimizePayment

		result, err := service.RecommendTerm(input)
		require.NoError(t, err)
		assert.Equal(t, 36, result.RecommendedTerm)
	})

	t.Run("nothing affordable", func(t *testing.T) {
		input := base
		input.Preference = domain.PreferenceBalanced
		input.MaxMonthlyPayment = 100

		_, err := service.RecommendTerm(input)
		assert.ErrorIs(t, err, domain.ErrNoSolution)
	})

	t.Run("inverted range", func(t *testing.T) {
		input := base
		input.Preference = domain.PreferenceBalanced
		input.MinTermMonths = 48

		_, err := service.RecommendTerm(input)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "min_term_months", verr.Fields[0].Field)
	})

	t.Run("range too wide", func(t *testing.T) {
		input := base
		input.Preference = domain.PreferenceBalanced
		input.MinTermMonths = 1
		input.MaxTermMonths = 360

		_, err := service.RecommendTerm(input)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "max_term_months", verr.Fields[0].Field)
	})
}

func TestCalculatePayoffPlan(t *testing.T) {
	service := NewDebtPayoffService(logging.Discard())
	debts := []domain.Debt{
		{Name: "car", Amount: 1000, InterestRate: 5, MinimumPayment: 30},
		{Name: "card", Amount: 3000, InterestRate: 20, MinimumPayment: 60},
	}

	t.Run("snowball pays the smallest first", func(t *testing.T) {
		result, err := service.CalculatePayoffPlan(domain.DebtPayoffInput{
			Debts: debts, AvailableMonthlyPayment: 300, Strategy: domain.StrategySnowball,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"car", "card"}, result.PayoffOrder)
		assert.Equal(t, 4000.0, result.TotalDebt)
		assert.Len(t, result.MonthlyPlan, result.MonthsToPayoff)
		assert.Nil(t, result.Comparison)
		assert.Equal(t, 300.0, result.MonthlyPlan[0].TotalPaid)
	})

	t.Run("avalanche pays the highest rate first", func(t *testing.T) {
		result, err := service.CalculatePayoffPlan(domain.DebtPayoffInput{
			Debts: debts, AvailableMonthlyPayment: 300, Strategy: domain.StrategyAvalanche,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"card", "car"}, result.PayoffOrder)

		last := result.MonthlyPlan[len(result.MonthlyPlan)-1]
		for _, p := range last.Payments {
			assert.Zero(t, p.RemainingBalance)
		}
	})

	t.Run("compare reports the cheaper plan", func(t *testing.T) {
		result, err := service.CalculatePayoffPlan(domain.DebtPayoffInput{
			Debts: debts, AvailableMonthlyPayment: 300, Strategy: domain.StrategyCompare,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Comparison)

		cmp := result.Comparison
		assert.Less(t, cmp.Avalanche.TotalInterestPaid, cmp.Snowball.TotalInterestPaid)
		assert.Equal(t, cmp.Avalanche.TotalInterestPaid, result.TotalInterestPaid)
		assert.Greater(t, cmp.Savings.InterestSaved, 0.0)
		assert.Equal(t, []string{"card", "car"}, result.PayoffOrder)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := service.CalculatePayoffPlan(domain.DebtPayoffInput{
			Debts: []domain.Debt{
				{Name: "card", Amount: 3000, InterestRate: 24, MinimumPayment: 50},
				{Name: "card", Amount: 500, InterestRate: 10, MinimumPayment: 500},
			},
			AvailableMonthlyPayment: 400,
			Strategy:                domain.StrategySnowball,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)

		fields := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{
			"debts[0].minimum_payment",
			"debts[1].name",
			"available_monthly_payment",
		}, fields)
	})
}
