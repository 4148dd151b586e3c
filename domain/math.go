package domain

const (
	PercentOf         = "percent_of"
	PercentWhat       = "what_percent"
	PercentChange     = "percent_change"
	PercentDifference = "percent_difference"
	PercentIncrease   = "increase_by"
	PercentDecrease   = "decrease_by"
)

type PercentageInput struct {
	Mode string  `json:"mode" validate:"oneof=percent_of what_percent percent_change percent_difference increase_by decrease_by"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
}

type PercentageResult struct {
	Mode        string  `json:"mode"`
	Result      float64 `json:"result"`
	Description string  `json:"description"`
}

// Fraction is a mixed number whole + numerator/denominator.
type Fraction struct {
	Whole       int64 `json:"whole"`
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

type FractionInput struct {
	Left      Fraction `json:"left"`
	Operation string   `json:"operation" validate:"oneof=add subtract multiply divide"`
	Right     Fraction `json:"right"`
}

type FractionResult struct {
	Numerator   int64    `json:"numerator"`
	Denominator int64    `json:"denominator"`
	Mixed       Fraction `json:"mixed"`
	Decimal     float64  `json:"decimal"`
	Text        string   `json:"text"`
}

const (
	AngleDegrees = "degrees"
	AngleRadians = "radians"
)

// TriangleInput uses pointers so an absent value differs from zero.
type TriangleInput struct {
	A         *float64 `json:"a"`
	B         *float64 `json:"b"`
	C         *float64 `json:"c"`
	AngleA    *float64 `json:"angle_a"`
	AngleB    *float64 `json:"angle_b"`
	AngleC    *float64 `json:"angle_c"`
	AngleUnit string   `json:"angle_unit" validate:"omitempty,oneof=degrees radians"`
}

type Triangle struct {
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	C            float64 `json:"c"`
	AngleA       float64 `json:"angle_a"`
	AngleB       float64 `json:"angle_b"`
	AngleC       float64 `json:"angle_c"`
	Area         float64 `json:"area"`
	Perimeter    float64 `json:"perimeter"`
	HeightA      float64 `json:"height_a"`
	HeightB      float64 `json:"height_b"`
	HeightC      float64 `json:"height_c"`
	MedianA      float64 `json:"median_a"`
	MedianB      float64 `json:"median_b"`
	MedianC      float64 `json:"median_c"`
	Inradius     float64 `json:"inradius"`
	Circumradius float64 `json:"circumradius"`
	Kind         string  `json:"kind"`
}

type TriangleResult struct {
	AngleUnit string     `json:"angle_unit"`
	Solutions []Triangle `json:"solutions"`
}

type RandomInput struct {
	Kind      string  `json:"kind" validate:"omitempty,oneof=integer decimal"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Count     int     `json:"count" validate:"omitempty,gte=1,lte=10000"`
	Unique    bool    `json:"unique"`
	Precision int     `json:"precision" validate:"gte=0,lte=12"`
	Seed      *uint64 `json:"seed"`
}

type RandomResult struct {
	Numbers []float64 `json:"numbers"`
	Sum     float64   `json:"sum"`
}

type ExpressionInput struct {
	Expression string `json:"expression" validate:"required,max=1000"`
	AngleUnit  string `json:"angle_unit" validate:"omitempty,oneof=degrees radians"`
}

type ExpressionResult struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}
