// Package curve fits an exponential expected-error model to a percentile
// envelope of per-position expected error, ported from
// expectedErrorCurve.py, with the percentile and correlation math wired to
// gonum/stat the way erunyan6-Lab_Buddy's fastqc_mimic does.
package curve

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Fit is a·exp(b·x)+c plus its goodness-of-fit statistics, matching
// ExponentialFit's slots in the original.
type Fit struct {
	A, B, C  float64
	RSquared float64
}

// Value evaluates the fitted curve at x.
func (f Fit) Value(x float64) float64 {
	return f.A*math.Exp(f.B*x) + f.C
}

// String renders the fit the way ExponentialFit.__str__ does:
// "%.4fe^(%.4fx) {+|-} %.4f".
func (f Fit) String() string {
	sign := "+"
	c := f.C
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%.4fe^(%.4fx) %s %.4f", f.A, f.B, sign, c)
}

// bounds mirror scipy's curve_fit bounds=((-2,-1,-8),(2,1,8)).
var (
	lowerBounds = [3]float64{-2, -1, -8}
	upperBounds = [3]float64{2, 1, 8}
	initial     = [3]float64{0.03, 0.015, 0}
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PercentileEnvelope reduces matrix (rows=reads, cols=positions) to a
// per-position vector at the given percentile (0-100), matching
// makeExpectedErrorPercentileArrayForFastq.
func PercentileEnvelope(matrix [][]float64, percentile float64) []float64 {
	if len(matrix) == 0 {
		return nil
	}
	cols := len(matrix[0])
	out := make([]float64, cols)
	column := make([]float64, len(matrix))
	for c := 0; c < cols; c++ {
		for r := range matrix {
			column[r] = matrix[r][c]
		}
		sorted := append([]float64(nil), column...)
		sortFloat64s(sorted)
		out[c] = stat.Quantile(percentile/100, stat.Empirical, sorted, nil)
	}
	return out
}

func sortFloat64s(v []float64) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

// FitExponential performs a bounded nonlinear least squares fit of
// a·exp(b·x)+c against (xValues, yValues) by gradient descent on the sum of
// squared residuals (forward-difference gradient, step halved up to 10 times
// until the error drops), starting from the original's initial guess
// (0.03, 0.015, 0) and clamping each step to the same bounds scipy's
// curve_fit was given.
func FitExponential(xValues, yValues []float64) Fit {
	params := initial
	const iterations = 500
	const step = 1e-6
	const learningRate = 0.5

	n := len(xValues)
	residual := func(p [3]float64) []float64 {
		r := make([]float64, n)
		for i := 0; i < n; i++ {
			model := p[0]*math.Exp(p[1]*xValues[i]) + p[2]
			r[i] = yValues[i] - model
		}
		return r
	}

	sumSquares := func(r []float64) float64 {
		var s float64
		for _, v := range r {
			s += v * v
		}
		return s
	}

	current := sumSquares(residual(params))
	for iter := 0; iter < iterations; iter++ {
		var gradient [3]float64
		base := residual(params)
		baseSS := sumSquares(base)

		for k := 0; k < 3; k++ {
			perturbed := params
			perturbed[k] += step
			ssPlus := sumSquares(residual(perturbed))
			gradient[k] = (ssPlus - baseSS) / step
		}

		var candidate [3]float64
		improved := false
		lr := learningRate
		for attempt := 0; attempt < 10; attempt++ {
			for k := 0; k < 3; k++ {
				candidate[k] = clamp(params[k]-lr*gradient[k], lowerBounds[k], upperBounds[k])
			}
			candidateSS := sumSquares(residual(candidate))
			if candidateSS < current {
				params = candidate
				current = candidateSS
				improved = true
				break
			}
			lr /= 2
		}
		if !improved {
			break
		}
	}

	predicted := make([]float64, n)
	for i := range xValues {
		predicted[i] = params[0]*math.Exp(params[1]*xValues[i]) + params[2]
	}

	r := pearsonCorrelation(yValues, predicted)
	return Fit{A: params[0], B: params[1], C: params[2], RSquared: r * r}
}

func pearsonCorrelation(a, b []float64) float64 {
	if len(a) < 2 {
		return 0
	}
	return stat.Correlation(a, b, nil)
}

// ordinal renders the 1st/2nd/3rd/Nth suffix the way ordinal() in
// expectedErrorCurve.py labels percentile plot titles.
func ordinal(n int) string {
	s := strconv.Itoa(n)
	if n%100 >= 11 && n%100 <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	default:
		return s + "th"
	}
}
