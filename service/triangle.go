package service

import (
	"math"

	"calc-hub/domain"
)

const triangleEpsilon = 1e-9

// triangleState indexes sides and their opposite angles 0, 1, 2 for a/A,
// b/B and c/C.
type triangleState struct {
	side     [3]float64
	angle    [3]float64
	hasSide  [3]bool
	hasAngle [3]bool
}

func (t *triangleState) complete() bool {
	for i := 0; i < 3; i++ {
		if !t.hasSide[i] || !t.hasAngle[i] {
			return false
		}
	}
	return true
}

func (t *triangleState) setAngle(i int, v float64) {
	t.angle[i], t.hasAngle[i] = v, true
}

func (t *triangleState) setSide(i int, v float64) {
	t.side[i], t.hasSide[i] = v, true
}

func countTrue(flags [3]bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// solveTriangle fills unknowns until the triangle is complete. The ambiguous
// side-side-angle case branches and may return two triangles.
func solveTriangle(t triangleState) ([]triangleState, error) {
	for !t.complete() {
		progress := false

		// third angle from the other two
		if countTrue(t.hasAngle) == 2 {
			sum := 0.0
			missing := 0
			for i := 0; i < 3; i++ {
				if t.hasAngle[i] {
					sum += t.angle[i]
				} else {
					missing = i
				}
			}
			if math.Pi-sum <= triangleEpsilon {
				return nil, domain.ErrInvalidTriangle
			}
			t.setAngle(missing, math.Pi-sum)
			progress = true
		}

		// all angles from three sides
		if countTrue(t.hasSide) == 3 && countTrue(t.hasAngle) < 3 {
			a, b, c := t.side[0], t.side[1], t.side[2]
			if a+b <= c || a+c <= b || b+c <= a {
				return nil, domain.ErrInvalidTriangle
			}
			for i := 0; i < 3; i++ {
				if !t.hasAngle[i] {
					j, k := (i+1)%3, (i+2)%3
					t.setAngle(i, lawOfCosinesAngle(t.side[j], t.side[k], t.side[i]))
				}
			}
			continue
		}

		// side opposite a known angle enclosed by two known sides
		for i := 0; i < 3; i++ {
			j, k := (i+1)%3, (i+2)%3
			if !t.hasSide[i] && t.hasAngle[i] && t.hasSide[j] && t.hasSide[k] {
				b, c := t.side[j], t.side[k]
				t.setSide(i, math.Sqrt(b*b+c*c-2*b*c*math.Cos(t.angle[i])))
				progress = true
			}
		}
		// the remaining angles are unique once every side is known
		if countTrue(t.hasSide) == 3 {
			continue
		}

		// law of sines from any known side/angle pair
		pair := -1
		for i := 0; i < 3; i++ {
			if t.hasSide[i] && t.hasAngle[i] {
				pair = i
				break
			}
		}
		if pair >= 0 {
			ratio := t.side[pair] / math.Sin(t.angle[pair])

			for i := 0; i < 3; i++ {
				if i != pair && t.hasAngle[i] && !t.hasSide[i] {
					t.setSide(i, ratio*math.Sin(t.angle[i]))
					progress = true
				}
			}

			for i := 0; i < 3; i++ {
				if i == pair || !t.hasSide[i] || t.hasAngle[i] {
					continue
				}
				candidates, err := ambiguousAngles(t.side[i]/ratio, t.angle[pair])
				if err != nil {
					return nil, err
				}
				if len(candidates) == 1 {
					t.setAngle(i, candidates[0])
					progress = true
					continue
				}

				var out []triangleState
				for _, angle := range candidates {
					branch := t
					branch.setAngle(i, angle)
					solved, err := solveTriangle(branch)
					if err != nil {
						continue
					}
					out = append(out, solved...)
				}
				if len(out) == 0 {
					return nil, domain.ErrInvalidTriangle
				}
				return out, nil
			}
		}

		if !progress {
			return nil, domain.ErrInvalidTriangle
		}
	}

	return []triangleState{t}, nil
}

// ambiguousAngles returns the angles whose sine is sinX and that fit in a
// triangle next to the known angle.
func ambiguousAngles(sinX, known float64) ([]float64, error) {
	if sinX > 1+triangleEpsilon || sinX <= 0 {
		return nil, domain.ErrInvalidTriangle
	}
	x := math.Asin(math.Min(sinX, 1))

	var out []float64
	if known+x < math.Pi-triangleEpsilon {
		out = append(out, x)
	}
	if other := math.Pi - x; math.Abs(other-x) > 1e-7 && known+other < math.Pi-triangleEpsilon {
		out = append(out, other)
	}
	if len(out) == 0 {
		return nil, domain.ErrInvalidTriangle
	}
	return out, nil
}

// lawOfCosinesAngle returns the angle opposite side c.
func lawOfCosinesAngle(a, b, c float64) float64 {
	cos := (a*a + b*b - c*c) / (2 * a * b)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

func nearlyEqual(x, y float64) bool {
	return math.Abs(x-y) <= 1e-9*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
}

func triangleKind(t triangleState) string {
	a, b, c := t.side[0], t.side[1], t.side[2]
	kind := "scalene"
	switch {
	case nearlyEqual(a, b) && nearlyEqual(b, c):
		kind = "equilateral"
	case nearlyEqual(a, b) || nearlyEqual(b, c) || nearlyEqual(a, c):
		kind = "isosceles"
	}

	largest := math.Max(t.angle[0], math.Max(t.angle[1], t.angle[2]))
	switch {
	case math.Abs(largest-math.Pi/2) < 1e-9:
		return kind + " right"
	case largest > math.Pi/2:
		return kind + " obtuse"
	default:
		return kind + " acute"
	}
}

func describeTriangle(t triangleState, toUnit func(float64) float64) domain.Triangle {
	a, b, c := t.side[0], t.side[1], t.side[2]
	area := 0.5 * b * c * math.Sin(t.angle[0])
	perimeter := a + b + c

	return domain.Triangle{
		A:            roundTo(a, 6),
		B:            roundTo(b, 6),
		C:            roundTo(c, 6),
		AngleA:       roundTo(toUnit(t.angle[0]), 6),
		AngleB:       roundTo(toUnit(t.angle[1]), 6),
		AngleC:       roundTo(toUnit(t.angle[2]), 6),
		Area:         roundTo(area, 6),
		Perimeter:    roundTo(perimeter, 6),
		HeightA:      roundTo(2*area/a, 6),
		HeightB:      roundTo(2*area/b, 6),
		HeightC:      roundTo(2*area/c, 6),
		MedianA:      roundTo(0.5*math.Sqrt(2*b*b+2*c*c-a*a), 6),
		MedianB:      roundTo(0.5*math.Sqrt(2*a*a+2*c*c-b*b), 6),
		MedianC:      roundTo(0.5*math.Sqrt(2*a*a+2*b*b-c*c), 6),
		Inradius:     roundTo(area/(perimeter/2), 6),
		Circumradius: roundTo(a/(2*math.Sin(t.angle[0])), 6),
		Kind:         triangleKind(t),
	}
}

// SolveTriangle completes a triangle from exactly three known values, at
// least one of them a side.
func (s *MathService) SolveTriangle(input domain.TriangleInput) (domain.TriangleResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.TriangleResult{}, err
	}
	unit := input.AngleUnit
	if unit == "" {
		unit = domain.AngleDegrees
	}
	toRadians := func(v float64) float64 { return v }
	fromRadians := func(v float64) float64 { return v }
	if unit == domain.AngleDegrees {
		toRadians = func(v float64) float64 { return v * math.Pi / 180 }
		fromRadians = func(v float64) float64 { return v * 180 / math.Pi }
	}

	var st triangleState
	verr := &domain.ValidationError{}
	sides := []*float64{input.A, input.B, input.C}
	angles := []*float64{input.AngleA, input.AngleB, input.AngleC}
	sideNames := []string{"a", "b", "c"}
	angleNames := []string{"angle_a", "angle_b", "angle_c"}

	for i := 0; i < 3; i++ {
		if v := sides[i]; v != nil {
			if *v <= 0 {
				verr.Add(sideNames[i], "must be greater than 0")
			}
			st.setSide(i, *v)
		}
		if v := angles[i]; v != nil {
			rad := toRadians(*v)
			if rad <= 0 || rad >= math.Pi {
				verr.Add(angleNames[i], "must be between 0 and 180 degrees")
			}
			st.setAngle(i, rad)
		}
	}
	if err := verr.Err(); err != nil {
		return domain.TriangleResult{}, err
	}

	known := countTrue(st.hasSide) + countTrue(st.hasAngle)
	if known != 3 {
		return domain.TriangleResult{}, domain.Invalid("a", "exactly three values are required, got %d", known)
	}
	if countTrue(st.hasSide) == 0 {
		return domain.TriangleResult{}, domain.Invalid("a", "at least one side is required")
	}

	solved, err := solveTriangle(st)
	if err != nil {
		return domain.TriangleResult{}, err
	}

	out := make([]domain.Triangle, 0, len(solved))
	for _, t := range solved {
		out = append(out, describeTriangle(t, fromRadians))
	}

	return domain.TriangleResult{
		AngleUnit: unit,
		Solutions: out,
	}, nil
}
