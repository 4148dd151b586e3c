package service

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
)

func TestCalculatePercentage(t *testing.T) {
	service := NewMathService()

	tests := []struct {
		mode string
		a, b float64
		want float64
	}{
		{domain.PercentOf, 20, 150, 30},
		{domain.PercentWhat, 30, 150, 20},
		{domain.PercentChange, 50, 75, 50},
		{domain.PercentChange, -50, -25, 50},
		{domain.PercentDifference, 10, 20, 66.666667},
		{domain.PercentIncrease, 100, 10, 110},
		{domain.PercentDecrease, 80, 25, 60},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			result, err := service.CalculatePercentage(domain.PercentageInput{Mode: tt.mode, A: tt.a, B: tt.b})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Result)
			assert.NotEmpty(t, result.Description)
		})
	}

	t.Run("description", func(t *testing.T) {
		result, err := service.CalculatePercentage(domain.PercentageInput{Mode: domain.PercentOf, A: 20, B: 150})
		require.NoError(t, err)
		assert.Equal(t, "20% of 150 is 30", result.Description)
	})

	t.Run("zero base", func(t *testing.T) {
		_, err := service.CalculatePercentage(domain.PercentageInput{Mode: domain.PercentWhat, A: 5})
		assert.ErrorIs(t, err, domain.ErrDivisionByZero)

		_, err = service.CalculatePercentage(domain.PercentageInput{Mode: domain.PercentChange, B: 5})
		assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := service.CalculatePercentage(domain.PercentageInput{Mode: "ratio"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "mode", verr.Fields[0].Field)
	})
}

func TestCalculateFraction(t *testing.T) {
	service := NewMathService()
	frac := func(whole, num, den int64) domain.Fraction {
		return domain.Fraction{Whole: whole, Numerator: num, Denominator: den}
	}

	tests := []struct {
		name     string
		left     domain.Fraction
		op       string
		right    domain.Fraction
		num, den int64
		text     string
		decimal  float64
	}{
		{"add", frac(0, 1, 2), "add", frac(0, 1, 3), 5, 6, "5/6", 0.8333333333},
		{"subtract to mixed", frac(0, 7, 4), "subtract", frac(0, 1, 4), 3, 2, "1 1/2", 1.5},
		{"multiply to whole", frac(1, 1, 2), "multiply", frac(0, 2, 3), 1, 1, "1", 1},
		{"divide", frac(0, 3, 4), "divide", frac(0, 1, 8), 6, 1, "6", 6},
		{"negative mixed", frac(-1, 1, 2), "add", frac(0, 0, 1), -3, 2, "-1 1/2", -1.5},
		{"negative proper", frac(0, 1, 4), "subtract", frac(0, 1, 2), -1, 4, "-1/4", -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.CalculateFraction(domain.FractionInput{Left: tt.left, Operation: tt.op, Right: tt.right})
			require.NoError(t, err)
			assert.Equal(t, tt.num, result.Numerator)
			assert.Equal(t, tt.den, result.Denominator)
			assert.Equal(t, tt.text, result.Text)
			assert.Equal(t, tt.decimal, result.Decimal)
		})
	}

	t.Run("zero denominator", func(t *testing.T) {
		_, err := service.CalculateFraction(domain.FractionInput{Left: frac(0, 1, 2), Operation: "add", Right: frac(0, 1, 0)})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "right.denominator", verr.Fields[0].Field)
	})

	t.Run("divide by zero", func(t *testing.T) {
		_, err := service.CalculateFraction(domain.FractionInput{Left: frac(0, 1, 2), Operation: "divide", Right: frac(0, 0, 5)})
		assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	})
}

func TestGenerateRandom(t *testing.T) {
	service := NewMathService()
	seed := uint64(42)

	t.Run("seeded output repeats", func(t *testing.T) {
		input := domain.RandomInput{Min: 1, Max: 100, Count: 20, Seed: &seed}
		first, err := service.GenerateRandom(input)
		require.NoError(t, err)
		second, err := service.GenerateRandom(input)
		require.NoError(t, err)

		assert.Equal(t, first.Numbers, second.Numbers)
		for _, n := range first.Numbers {
			assert.GreaterOrEqual(t, n, 1.0)
			assert.LessOrEqual(t, n, 100.0)
			assert.Equal(t, float64(int64(n)), n)
		}
	})

	t.Run("unique covers the range", func(t *testing.T) {
		result, err := service.GenerateRandom(domain.RandomInput{Min: 1, Max: 10, Count: 10, Unique: true, Seed: &seed})
		require.NoError(t, err)

		sorted := slices.Clone(result.Numbers)
		slices.Sort(sorted)
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sorted)
		assert.Equal(t, 55.0, result.Sum)
	})

	t.Run("decimals use default precision", func(t *testing.T) {
		result, err := service.GenerateRandom(domain.RandomInput{Kind: "decimal", Min: 0, Max: 1, Count: 50, Seed: &seed})
		require.NoError(t, err)
		for _, n := range result.Numbers {
			assert.InDelta(t, roundTo(n, 2), n, 1e-12)
			assert.GreaterOrEqual(t, n, 0.0)
			assert.LessOrEqual(t, n, 1.0)
		}
	})

	t.Run("too many unique values", func(t *testing.T) {
		_, err := service.GenerateRandom(domain.RandomInput{Min: 1, Max: 10, Count: 11, Unique: true})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "count", verr.Fields[0].Field)
	})

	t.Run("empty integer range", func(t *testing.T) {
		_, err := service.GenerateRandom(domain.RandomInput{Min: 1.2, Max: 1.8})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "max", verr.Fields[0].Field)
	})

	t.Run("max below min", func(t *testing.T) {
		_, err := service.GenerateRandom(domain.RandomInput{Min: 5, Max: 1})
		assert.Error(t, err)
	})

	t.Run("unique decimals on a coarse grid", func(t *testing.T) {
		input := domain.RandomInput{Kind: "decimal", Min: 0.25, Max: 0.75, Precision: 1, Count: 5, Unique: true, Seed: &seed}
		result, err := service.GenerateRandom(input)
		require.NoError(t, err)
		assert.ElementsMatch(t, []float64{0.3, 0.4, 0.5, 0.6, 0.7}, result.Numbers)

		input.Count = 6
		_, err = service.GenerateRandom(input)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "count", verr.Fields[0].Field)
	})

	t.Run("decimals stay inside the range", func(t *testing.T) {
		result, err := service.GenerateRandom(domain.RandomInput{Kind: "decimal", Min: 0.25, Max: 0.75, Precision: 1, Count: 200, Seed: &seed})
		require.NoError(t, err)
		for _, n := range result.Numbers {
			assert.GreaterOrEqual(t, n, 0.25)
			assert.LessOrEqual(t, n, 0.75)
		}
	})

	t.Run("no decimal at this precision", func(t *testing.T) {
		_, err := service.GenerateRandom(domain.RandomInput{Kind: "decimal", Min: 0.21, Max: 0.24, Precision: 1})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "max", verr.Fields[0].Field)
	})
}

func TestEvaluateExpression(t *testing.T) {
	service := NewMathService()

	tests := []struct {
		name       string
		expression string
		unit       string
		want       float64
	}{
		{"precedence", "2 + 3 * 4", "", 14},
		{"power", "2^10", "", 1024},
		{"parentheses", "(2 + 3) * 4", "", 20},
		{"sqrt", "sqrt(16) + abs(-2)", "", 6},
		{"degrees", "sin(90)", domain.AngleDegrees, 1},
		{"radians", "cos(0)", domain.AngleRadians, 1},
		{"inverse in degrees", "atan(1)", domain.AngleDegrees, 45},
		{"constants", "ln(e)", "", 1},
		{"pow function", "pow(3, 2)", "", 9},
		{"minus before power", "-2^2", "", -4},
		{"negative base", "(-2)^2", "", 4},
		{"negative exponent", "2^-2 * 3", "", 0.75},
		{"double minus", "3 - -2", "", 5},
		{"minus after product", "2 * -3", "", -6},
		{"spelled power", "2**-1", "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.EvaluateExpression(domain.ExpressionInput{Expression: tt.expression, AngleUnit: tt.unit})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, result.Result, 1e-9)
			assert.Equal(t, tt.expression, result.Expression)
		})
	}

	t.Run("division by zero", func(t *testing.T) {
		_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: "1 / 0"})
		assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	})

	t.Run("undefined", func(t *testing.T) {
		_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: "sqrt(-1)"})
		assert.ErrorIs(t, err, domain.ErrNoSolution)
	})

	t.Run("infinite function result", func(t *testing.T) {
		for _, expr := range []string{"ln(0)", "log(0) + 1", "pow(0, -1)"} {
			_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: expr})
			assert.ErrorIs(t, err, domain.ErrNoSolution, expr)
			assert.NotErrorIs(t, err, domain.ErrDivisionByZero, expr)
		}
	})

	t.Run("non-arithmetic operators", func(t *testing.T) {
		for _, expr := range []string{"true ? 1 : 2", "1 ?? 2", "1 > 0", "3 & 1", "!1", "'a'"} {
			_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: expr})
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr, expr)
			assert.Equal(t, "expression", verr.Fields[0].Field)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: "2 +"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "expression", verr.Fields[0].Field)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := service.EvaluateExpression(domain.ExpressionInput{Expression: "foo(1)"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}
