// Package reference holds the static lookup tables the calculators read:
// federal tax parameters per year and CPI-U annual averages.
package reference

import (
	_ "embed"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSrc []byte

//go:embed tables.cue
var tablesSrc []byte

type Bracket struct {
	Rate float64 `json:"rate"`
	// UpTo is zero for the open-ended top bracket.
	UpTo float64 `json:"up_to,omitempty"`
}

type SocialSecurity struct {
	Rate     float64 `json:"rate"`
	WageBase float64 `json:"wage_base"`
}

type Medicare struct {
	Rate                float64            `json:"rate"`
	AdditionalRate      float64            `json:"additional_rate"`
	AdditionalThreshold map[string]float64 `json:"additional_threshold"`
}

type TaxYear struct {
	Year              int                  `json:"year"`
	StandardDeduction map[string]float64   `json:"standard_deduction"`
	Brackets          map[string][]Bracket `json:"brackets"`
	SocialSecurity    SocialSecurity       `json:"social_security"`
	Medicare          Medicare             `json:"medicare"`
}

type CPIPoint struct {
	Year  int     `json:"year"`
	Index float64 `json:"index"`
}

type Tables struct {
	tax map[int]TaxYear
	cpi map[int]float64
}

type document struct {
	Tax map[string]TaxYear `json:"tax"`
	CPI map[string]float64 `json:"cpi"`
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	return Parse(tablesSrc)
})

// Default returns the embedded tables, parsed once.
func Default() (*Tables, error) {
	return loadDefault()
}

// Parse compiles src, validates it against the schema and decodes it.
func Parse(src []byte) (*Tables, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.CompileBytes(src, cue.Filename("tables.cue"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile tables: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate tables: %w", err)
	}

	var doc document
	if err := unified.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}

	t := &Tables{
		tax: make(map[int]TaxYear, len(doc.Tax)),
		cpi: make(map[int]float64, len(doc.CPI)),
	}
	for key, year := range doc.Tax {
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("tax year %q: %w", key, err)
		}
		year.Year = n
		t.tax[n] = year
	}
	for key, index := range doc.CPI {
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("cpi year %q: %w", key, err)
		}
		t.cpi[n] = index
	}

	return t, nil
}

func (t *Tables) TaxYear(year int) (TaxYear, bool) {
	ty, ok := t.tax[year]
	return ty, ok
}

func (t *Tables) TaxYears() []int {
	years := make([]int, 0, len(t.tax))
	for y := range t.tax {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

func (t *Tables) CPI(year int) (float64, bool) {
	index, ok := t.cpi[year]
	return index, ok
}

// CPISeries returns every CPI point ordered by year.
func (t *Tables) CPISeries() []CPIPoint {
	points := make([]CPIPoint, 0, len(t.cpi))
	for y, index := range t.cpi {
		points = append(points, CPIPoint{Year: y, Index: index})
	}
	slices.SortFunc(points, func(a, b CPIPoint) int { return a.Year - b.Year })
	return points
}
