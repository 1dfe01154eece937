// Package trim enumerates candidate (forward, reverse) truncation pairs and
// scores each against precomputed per-read arrays, ported from
// trimParameterPrediction.py's TrimParameterSet, makeAllPossibleTrimLocations,
// makeTrimLocations, and the runTrimParameterTest(Lite) scorers.
package trim

import "math"

// Position is one 0-indexed candidate truncation pair, as produced by the
// enumerator.
type Position struct {
	Forward int
	Reverse int
}

// ParameterSet is one scored candidate, with Forward/Reverse already
// converted to the 1-indexed, primer-inclusive positions §3 requires for
// reporting.
type ParameterSet struct {
	ForwardTrim             int
	ReverseTrim             int
	ForwardMaxExpectedError int
	ReverseMaxExpectedError int
	ReadRetention           float64
	Score                   float64
}

// CalculateScore applies score = 100*readRetention - ((fwdMaxEE-1)^2 + (revMaxEE-1)^2).
func CalculateScore(readRetention float64, forwardMaxEE, reverseMaxEE int) float64 {
	fwd := float64(forwardMaxEE - 1)
	rev := float64(reverseMaxEE - 1)
	return 100*readRetention - (fwd*fwd + rev*rev)
}

// padMaxExpectedError mirrors Python's int() truncation-toward-zero in
// `-(int(-x)) + 1`, which computes floor(x)+1 for x>=0 and ceil(x)+1 for
// x<0 — the original's ceiling-like padding of a fitted curve value into an
// integer max-expected-error bound.
func padMaxExpectedError(x float64) int {
	return -int(math.Trunc(-x)) + 1
}

// ForwardHeuristicMaxEE is the fallback used when no fitted curve is
// available: round(0.0356*e^(0.015*L))+1.
func ForwardHeuristicMaxEE(trimPosition int) int {
	l := float64(trimPosition)
	return int(math.Round(0.0356*math.Exp(0.015*l))) + 1
}

// ReverseHeuristicMaxEE is the reverse-direction analogue:
// round(0.0289*e^(0.0203*L))+1.
func ReverseHeuristicMaxEE(trimPosition int) int {
	l := float64(trimPosition)
	return int(math.Round(0.0289*math.Exp(0.0203*l))) + 1
}
