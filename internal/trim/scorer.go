package trim

import (
	"sort"

	"figaro/internal/curve"
)

// Inputs bundles everything the scorer needs per direction: the aggregated
// expected-error matrix (rows=position starting at MinimumTrimPosition,
// cols=read), the fitted curve (nil falls back to the heuristic formula),
// and, for the full variant, the first-N/first-Q2 arrays.
type Inputs struct {
	ForwardEE                  [][]uint8
	ReverseEE                  [][]uint8
	ForwardCurve               *curve.Fit
	ReverseCurve               *curve.Fit
	ForwardMinimumTrimPosition int
	ReverseMinimumTrimPosition int
	ForwardPrimerLength        int
	ReversePrimerLength        int

	ForwardFirstN  []uint16
	ReverseFirstN  []uint16
	ForwardFirstQ2 []uint16
	ReverseFirstQ2 []uint16
}

func maxExpectedError(fit *curve.Fit, heuristic func(int) int, trimPosition int) int {
	if fit != nil {
		return padMaxExpectedError(fit.Value(float64(trimPosition)))
	}
	return heuristic(trimPosition)
}

// ScoreFull evaluates every candidate position gating on expected error,
// first-N and first-Q2, matching runTrimParameterTest.
func ScoreFull(positions []Position, in Inputs) []ParameterSet {
	return score(positions, in, true)
}

// ScoreLite evaluates every candidate position gating on expected error
// only, matching runTrimParameterTestLite.
func ScoreLite(positions []Position, in Inputs) []ParameterSet {
	return score(positions, in, false)
}

func score(positions []Position, in Inputs, full bool) []ParameterSet {
	results := make([]ParameterSet, 0, len(positions))

	for _, pos := range positions {
		forwardMaxEE := maxExpectedError(in.ForwardCurve, ForwardHeuristicMaxEE, pos.Forward)
		reverseMaxEE := maxExpectedError(in.ReverseCurve, ReverseHeuristicMaxEE, pos.Reverse)

		fwdRow := pos.Forward - in.ForwardMinimumTrimPosition
		revRow := pos.Reverse - in.ReverseMinimumTrimPosition
		if fwdRow < 0 || fwdRow >= len(in.ForwardEE) || revRow < 0 || revRow >= len(in.ReverseEE) {
			continue
		}
		fwdEERow := in.ForwardEE[fwdRow]
		revEERow := in.ReverseEE[revRow]

		total := len(fwdEERow)
		if len(revEERow) < total {
			total = len(revEERow)
		}

		kept := 0
		for i := 0; i < total; i++ {
			if int(fwdEERow[i]) >= forwardMaxEE || int(revEERow[i]) >= reverseMaxEE {
				continue
			}
			if full {
				if int(in.ForwardFirstN[i]) <= pos.Forward || int(in.ReverseFirstN[i]) <= pos.Reverse {
					continue
				}
				if int(in.ForwardFirstQ2[i]) <= pos.Forward || int(in.ReverseFirstQ2[i]) <= pos.Reverse {
					continue
				}
			}
			kept++
		}

		retention := 0.0
		if total > 0 {
			retention = float64(kept) / float64(total)
		}

		results = append(results, ParameterSet{
			ForwardTrim:             pos.Forward + 1 + in.ForwardPrimerLength,
			ReverseTrim:             pos.Reverse + 1 + in.ReversePrimerLength,
			ForwardMaxExpectedError: forwardMaxEE,
			ReverseMaxExpectedError: reverseMaxEE,
			ReadRetention:           retention,
			Score:                   CalculateScore(retention, forwardMaxEE, reverseMaxEE),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
