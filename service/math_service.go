package service

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/Knetic/govaluate"

	"calc-hub/domain"
)

type MathService struct{}

func NewMathService() *MathService {
	return &MathService{}
}

func (s *MathService) CalculatePercentage(input domain.PercentageInput) (domain.PercentageResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.PercentageResult{}, err
	}
	a, b := input.A, input.B

	var result float64
	var description string
	switch input.Mode {
	case domain.PercentOf:
		result = a / 100 * b
		description = fmt.Sprintf("%g%% of %g is %g", a, b, roundTo(result, 6))
	case domain.PercentWhat:
		if b == 0 {
			return domain.PercentageResult{}, domain.ErrDivisionByZero
		}
		result = a / b * 100
		description = fmt.Sprintf("%g is %g%% of %g", a, roundTo(result, 6), b)
	case domain.PercentChange:
		if a == 0 {
			return domain.PercentageResult{}, domain.ErrDivisionByZero
		}
		result = (b - a) / math.Abs(a) * 100
		description = fmt.Sprintf("from %g to %g is a %g%% change", a, b, roundTo(result, 6))
	case domain.PercentDifference:
		mean := (a + b) / 2
		if mean == 0 {
			return domain.PercentageResult{}, domain.ErrDivisionByZero
		}
		result = math.Abs(a-b) / math.Abs(mean) * 100
		description = fmt.Sprintf("%g and %g differ by %g%%", a, b, roundTo(result, 6))
	case domain.PercentIncrease:
		result = a * (1 + b/100)
		description = fmt.Sprintf("%g increased by %g%% is %g", a, b, roundTo(result, 6))
	case domain.PercentDecrease:
		result = a * (1 - b/100)
		description = fmt.Sprintf("%g decreased by %g%% is %g", a, b, roundTo(result, 6))
	}

	return domain.PercentageResult{
		Mode:        input.Mode,
		Result:      roundTo(result, 6),
		Description: description,
	}, nil
}

// rat converts a mixed number; a negative whole part makes the whole value
// negative.
func rat(field string, f domain.Fraction) (*big.Rat, error) {
	if f.Denominator == 0 {
		return nil, domain.Invalid(field+".denominator", "must not be zero")
	}
	frac := big.NewRat(f.Numerator, f.Denominator)
	whole := new(big.Rat).SetInt64(f.Whole)
	if f.Whole < 0 {
		return whole.Sub(whole, frac.Abs(frac)), nil
	}
	return whole.Add(whole, frac), nil
}

func (s *MathService) CalculateFraction(input domain.FractionInput) (domain.FractionResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.FractionResult{}, err
	}
	left, err := rat("left", input.Left)
	if err != nil {
		return domain.FractionResult{}, err
	}
	right, err := rat("right", input.Right)
	if err != nil {
		return domain.FractionResult{}, err
	}

	r := new(big.Rat)
	switch input.Operation {
	case "add":
		r.Add(left, right)
	case "subtract":
		r.Sub(left, right)
	case "multiply":
		r.Mul(left, right)
	case "divide":
		if right.Sign() == 0 {
			return domain.FractionResult{}, domain.ErrDivisionByZero
		}
		r.Quo(left, right)
	}

	// big.Rat keeps values in lowest terms
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return domain.FractionResult{}, domain.Invalid("operation", "result does not fit in 64-bit integers")
	}
	num, den := r.Num().Int64(), r.Denom().Int64()

	mixed := domain.Fraction{Whole: num / den, Numerator: num % den, Denominator: den}
	if mixed.Whole != 0 && mixed.Numerator < 0 {
		mixed.Numerator = -mixed.Numerator
	}

	decimal, _ := r.Float64()
	return domain.FractionResult{
		Numerator:   num,
		Denominator: den,
		Mixed:       mixed,
		Decimal:     roundTo(decimal, 10),
		Text:        formatMixed(mixed),
	}, nil
}

func formatMixed(f domain.Fraction) string {
	switch {
	case f.Numerator == 0:
		return fmt.Sprintf("%d", f.Whole)
	case f.Whole == 0:
		return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
	default:
		return fmt.Sprintf("%d %d/%d", f.Whole, f.Numerator, f.Denominator)
	}
}

// GenerateRandom draws numbers uniformly from [min, max]. A seed makes the
// output reproducible.
func (s *MathService) GenerateRandom(input domain.RandomInput) (domain.RandomResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.RandomResult{}, err
	}
	if input.Kind == "" {
		input.Kind = "integer"
	}
	if input.Count == 0 {
		input.Count = 1
	}
	if input.Kind == "decimal" && input.Precision == 0 {
		input.Precision = 2
	}
	if input.Max < input.Min {
		return domain.RandomResult{}, domain.Invalid("max", "must not be less than min")
	}

	var src rand.Source
	if input.Seed != nil {
		src = rand.NewPCG(*input.Seed, *input.Seed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)

	// values are whole steps of 1/scale inside [min, max]
	scale, places := 1.0, int32(0)
	if input.Kind == "decimal" {
		scale, places = math.Pow(10, float64(input.Precision)), int32(input.Precision)
	}
	lo := math.Ceil(roundTo(input.Min*scale, 6))
	hi := math.Floor(roundTo(input.Max*scale, 6))
	if hi < lo {
		if input.Kind == "integer" {
			return domain.RandomResult{}, domain.Invalid("max", "no integer lies between min and max")
		}
		return domain.RandomResult{}, domain.Invalid("max", "no value with %d decimals lies between min and max", input.Precision)
	}
	if hi-lo >= 1<<53 {
		return domain.RandomResult{}, domain.Invalid("max", "range is too wide for exact values")
	}
	span := int64(hi-lo) + 1
	possible := float64(span)
	draw := func() float64 {
		return roundTo((lo+float64(rng.Int64N(span)))/scale, places)
	}

	if input.Unique && float64(input.Count) > possible {
		return domain.RandomResult{}, domain.Invalid("count", "only %g distinct values exist in the range", possible)
	}

	numbers := make([]float64, 0, input.Count)
	seen := make(map[float64]bool, input.Count)
	for len(numbers) < input.Count {
		n := draw()
		if input.Unique {
			if seen[n] {
				continue
			}
			seen[n] = true
		}
		numbers = append(numbers, n)
	}

	return domain.RandomResult{
		Numbers: numbers,
		Sum:     roundTo(sumFloats(numbers), int32(max(input.Precision, 2))),
	}, nil
}

func sumFloats(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// EvaluateExpression evaluates a scientific-calculator expression. "^" is
// exponentiation.
func (s *MathService) EvaluateExpression(input domain.ExpressionInput) (domain.ExpressionResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.ExpressionResult{}, err
	}
	degrees := input.AngleUnit == domain.AngleDegrees

	source := rewriteExpression(input.Expression)
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(source, expressionFunctions(degrees))
	if err != nil {
		return domain.ExpressionResult{}, domain.Invalid("expression", "%s", err.Error())
	}
	if err := checkTokens(expression.Tokens()); err != nil {
		return domain.ExpressionResult{}, err
	}

	value, err := expression.Evaluate(map[string]interface{}{
		"pi": math.Pi,
		"e":  math.E,
	})
	if errors.Is(err, domain.ErrNoSolution) {
		return domain.ExpressionResult{}, err
	}
	if err != nil {
		return domain.ExpressionResult{}, domain.Invalid("expression", "%s", err.Error())
	}

	result, ok := value.(float64)
	if !ok {
		return domain.ExpressionResult{}, domain.Invalid("expression", "does not evaluate to a number")
	}
	switch {
	case math.IsInf(result, 0):
		return domain.ExpressionResult{}, domain.ErrDivisionByZero
	case math.IsNaN(result):
		return domain.ExpressionResult{}, errors.Join(domain.ErrNoSolution,
			errors.New("the expression is undefined for these values"))
	}

	return domain.ExpressionResult{
		Expression: input.Expression,
		Result:     roundTo(result, 12),
	}, nil
}

// rewriteExpression turns "^" into govaluate's "**" and a unary minus into
// a multiplication by -1, so the power binds tighter: -2^2 is -4. A minus
// right after a power stays a prefix so 2^-2*3 is (2^-2)*3.
func rewriteExpression(expr string) string {
	var b strings.Builder
	for i := 0; i < len(expr); i++ {
		switch ch := expr[i]; {
		case ch == '^':
			// govaluate reads runs of symbols as one operator
			b.WriteString(" ** ")
		case ch == '-' && afterPower(b.String()):
			b.WriteString(" -")
		case ch == '-' && unaryPosition(b.String()):
			b.WriteString("(0-1)*")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func afterPower(before string) bool {
	return strings.HasSuffix(strings.TrimRight(before, " \t"), "**")
}

func unaryPosition(before string) bool {
	before = strings.TrimRight(before, " \t")
	return before == "" || strings.ContainsRune("(,+-*/%", rune(before[len(before)-1]))
}

// checkTokens keeps govaluate to arithmetic. Booleans, comparisons,
// ternaries and bitwise operators are rejected.
func checkTokens(tokens []govaluate.ExpressionToken) error {
	for _, token := range tokens {
		switch token.Kind {
		case govaluate.NUMERIC, govaluate.VARIABLE, govaluate.FUNCTION,
			govaluate.SEPARATOR, govaluate.CLAUSE, govaluate.CLAUSE_CLOSE:
			continue
		case govaluate.PREFIX:
			if token.Value == "-" {
				continue
			}
		case govaluate.MODIFIER:
			switch token.Value {
			case "+", "-", "*", "/", "%", "**":
				continue
			}
		}
		return domain.Invalid("expression", "unsupported operator or value %v", token.Value)
	}
	return nil
}

func expressionFunctions(degrees bool) map[string]govaluate.ExpressionFunction {
	in := func(x float64) float64 { return x }
	out := func(x float64) float64 { return x }
	if degrees {
		in = func(x float64) float64 { return x * math.Pi / 180 }
		out = func(x float64) float64 { return x * 180 / math.Pi }
	}

	return map[string]govaluate.ExpressionFunction{
		"sqrt":  unary("sqrt", math.Sqrt),
		"abs":   unary("abs", math.Abs),
		"sin":   unary("sin", func(x float64) float64 { return math.Sin(in(x)) }),
		"cos":   unary("cos", func(x float64) float64 { return math.Cos(in(x)) }),
		"tan":   unary("tan", func(x float64) float64 { return math.Tan(in(x)) }),
		"asin":  unary("asin", func(x float64) float64 { return out(math.Asin(x)) }),
		"acos":  unary("acos", func(x float64) float64 { return out(math.Acos(x)) }),
		"atan":  unary("atan", func(x float64) float64 { return out(math.Atan(x)) }),
		"log":   unary("log", math.Log10),
		"ln":    unary("ln", math.Log),
		"exp":   unary("exp", math.Exp),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"round": unary("round", math.Round),
		"pow": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
			}
			base, ok1 := args[0].(float64)
			exp, ok2 := args[1].(float64)
			if !ok1 || !ok2 {
				return nil, errors.New("pow expects numeric arguments")
			}
			return defined("pow", math.Pow(base, exp))
		},
	}
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects a numeric argument", name)
		}
		return defined(name, fn(x))
	}
}

// defined rejects a function result that is infinite or not a number.
func defined(name string, v float64) (interface{}, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("%w: %s is undefined for this argument", domain.ErrNoSolution, name)
	}
	return v, nil
}
