package trim

import "go.uber.org/zap"

// MinimumTrimPositions computes the minimum forward/reverse 0-indexed trim
// positions from read lengths F, R and minimum combined length M, matching
// calculateLowestTrimBaseForPairedReads. When F+R < M there is no valid
// trim range; the original logs an error and falls back to the full read
// lengths, which callers should treat as a degenerate, effectively
// zero-coverage analysis rather than a hard failure.
func MinimumTrimPositions(forwardLen, reverseLen, minCombinedLen int, logger *zap.Logger) (minForward, minReverse int, degenerate bool) {
	if forwardLen+reverseLen < minCombinedLen {
		if logger != nil {
			logger.Error("minimum combined length exceeds forward+reverse read length",
				zap.Int("forwardLen", forwardLen), zap.Int("reverseLen", reverseLen), zap.Int("minCombinedLen", minCombinedLen))
		}
		return forwardLen, reverseLen, true
	}
	return minCombinedLen - reverseLen, minCombinedLen - forwardLen, false
}

// AllPositions exhaustively enumerates the F-minForwardLen+1 candidate pairs
// from (minForwardLen-1, reverseLen-1) per §4.7,
// incrementing forward and decrementing reverse in lockstep.
func AllPositions(forwardLen, reverseLen, minForwardLen int) []Position {
	if minForwardLen < 1 {
		minForwardLen = 1
	}
	count := forwardLen - minForwardLen + 1
	if count < 1 {
		return nil
	}
	out := make([]Position, 0, count)
	forward := minForwardLen - 1
	reverse := reverseLen - 1
	for forward < forwardLen {
		out = append(out, Position{Forward: forward, Reverse: reverse})
		forward++
		reverse--
	}
	return out
}

// coarsePoints is the ~12-point spacing makeTrimLocations used for a quick
// scan; it is implemented and tested but, matching both shipped Python
// orchestrators, never wired into the default analysis path.
const coarsePoints = 12

// CoarsePositions samples up to coarsePoints equispaced pairs from the
// exhaustive set AllPositions would produce, for callers that want a fast
// approximate scan instead of the full enumeration.
func CoarsePositions(forwardLen, reverseLen, minForwardLen int) []Position {
	all := AllPositions(forwardLen, reverseLen, minForwardLen)
	if len(all) <= coarsePoints {
		return all
	}
	out := make([]Position, 0, coarsePoints)
	step := float64(len(all)-1) / float64(coarsePoints-1)
	for i := 0; i < coarsePoints; i++ {
		idx := int(float64(i) * step)
		if idx >= len(all) {
			idx = len(all) - 1
		}
		out = append(out, all[idx])
	}
	return out
}
