package service

import (
	"math"

	"calc-hub/domain"
)

// bisect finds x in [lo, hi] with f(x) = 0. f(lo) and f(hi) must have
// opposite signs.
func bisect(f func(float64) float64, lo, hi float64) (float64, int, error) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, 0, nil
	}
	if fhi == 0 {
		return hi, 0, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return 0, 0, domain.ErrNoSolution
	}

	var mid float64
	for i := 1; i <= maxSolverIterations; i++ {
		mid = (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 || (hi-lo)/2 < solverTolerance {
			return mid, i, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return mid, maxSolverIterations, nil
}

// newton runs Newton's method with a central-difference derivative. It
// reports false when it diverges or stalls so callers can fall back to
// bisection.
func newton(f func(float64) float64, guess float64) (float64, int, bool) {
	x := guess
	for i := 1; i <= maxSolverIterations; i++ {
		fx := f(x)
		if math.Abs(fx) < solverTolerance {
			return x, i, true
		}
		h := math.Max(math.Abs(x)*1e-6, 1e-9)
		d := (f(x+h) - f(x-h)) / (2 * h)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, i, false
		}
		next := x - fx/d
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, i, false
		}
		if math.Abs(next-x) < solverTolerance {
			// a stalled step only counts when it landed on a root
			return next, i, math.Abs(f(next)) < 1e-6
		}
		x = next
	}
	return 0, maxSolverIterations, false
}

// expandBracket doubles hi until f changes sign on [lo, hi]. The last
// candidate is max itself.
func expandBracket(f func(float64) float64, lo, hi, max float64) (float64, bool) {
	flo := f(lo)
	for {
		if hi > max {
			hi = max
		}
		if math.Signbit(f(hi)) != math.Signbit(flo) {
			return hi, true
		}
		if hi >= max {
			return hi, false
		}
		hi *= 2
	}
}
