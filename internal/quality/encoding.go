// Package quality implements the bijection between FASTQ quality characters
// and error probabilities (spec §3 EncodingScheme, §4.2 Quality Codec),
// ported from figaro/qualityScoreHandler.py.
package quality

import "math"

// Scheme is a quality-score encoding: a character range, an ASCII base, and
// the pair of formulas converting between a Phred-like score and an error
// probability.
type Scheme struct {
	Name          string
	Base          int
	startChar     byte
	endChar       byte
	scoreToPError func(score float64) float64
	pErrorToScore func(pError float64, round bool) float64
}

// InSet reports whether c falls within the scheme's valid quality-character
// range.
func (s Scheme) InSet(c byte) bool {
	return c >= s.startChar && c <= s.endChar
}

// Range is the inclusive span of valid Phred-like scores this scheme encodes.
func (s Scheme) Range() int {
	return int(s.endChar) - int(s.startChar)
}

// ToPError converts a single quality character into an error probability.
func (s Scheme) ToPError(c byte) float64 {
	score := float64(int(c) - s.Base)
	return s.scoreToPError(score)
}

// ScoreFromPError converts an error probability back to a (possibly rounded)
// score under this scheme.
func (s Scheme) ScoreFromPError(pError float64, round bool) float64 {
	return s.pErrorToScore(pError, round)
}

// EncodedFromPError renders an error probability as the quality character
// this scheme would use to represent it.
func (s Scheme) EncodedFromPError(pError float64) byte {
	score := int(math.Round(s.ScoreFromPError(pError, true)))
	return byte(score + s.Base)
}

func pErrorToPhred(pError float64, round bool) float64 {
	score := -10 * math.Log10(pError)
	if round {
		return math.Round(score)
	}
	return score
}

func phredToPError(phred float64) float64 {
	return math.Pow(10, -phred/10)
}

func pErrorToSolexa(pError float64, round bool) float64 {
	score := -10 * math.Log10(pError/(1-pError))
	if round {
		return math.Round(score)
	}
	return score
}

func solexaToPError(solexa float64) float64 {
	return 1 / (math.Pow(10, solexa/10) + 1)
}

// ToPhred converts an error probability to its unrounded Phred-equivalent
// score, used by the first-Q2 extractor to compare across encoding schemes
// on a common scale regardless of how each scheme natively encodes error.
func ToPhred(pError float64) float64 {
	return pErrorToPhred(pError, false)
}

// Sanger is Sanger/Illumina 1.8+ encoding: Phred+33, '!' through 'I'.
var Sanger = Scheme{Name: "Sanger/Illumina 1.8+", Base: 33, startChar: '!', endChar: 'I', scoreToPError: phredToPError, pErrorToScore: pErrorToPhred}

// Illumina18 is the slightly wider Illumina 1.8+ character range, '!' through 'J'.
var Illumina18 = Scheme{Name: "Illumina 1.8+", Base: 33, startChar: '!', endChar: 'J', scoreToPError: phredToPError, pErrorToScore: pErrorToPhred}

// Illumina15 is Illumina 1.5-7 encoding: Phred+64, 'B' through 'i'.
var Illumina15 = Scheme{Name: "Illumina 1.5-7", Base: 64, startChar: 'B', endChar: 'i', scoreToPError: phredToPError, pErrorToScore: pErrorToPhred}

// Illumina13 is Illumina 1.3-4 encoding: Phred+64, '@' through 'h'.
var Illumina13 = Scheme{Name: "Illumina 1.3-4", Base: 64, startChar: '@', endChar: 'h', scoreToPError: phredToPError, pErrorToScore: pErrorToPhred}

// Solexa is the Solexa encoding with its own log-odds error formula.
var Solexa = Scheme{Name: "Solexa", Base: 64, startChar: ';', endChar: 'h', scoreToPError: solexaToPError, pErrorToScore: pErrorToSolexa}

// PacBio is PacBio's wide Phred+33 range, '!' through '~'.
var PacBio = Scheme{Name: "Pacbio", Base: 33, startChar: '!', endChar: '~', scoreToPError: phredToPError, pErrorToScore: pErrorToPhred}

// CandidateSchemes lists the detection priority order from spec §3:
// Sanger/Illumina 1.8+, Illumina 1.8+, Illumina 1.5-7, Illumina 1.3-4, Solexa, PacBio.
func CandidateSchemes() []Scheme {
	return []Scheme{Sanger, Illumina18, Illumina15, Illumina13, Solexa, PacBio}
}

// CumulativeExpectedError returns, for each position in quality, the running
// sum of per-base error probabilities up to and including that position
// (spec §4.2, §3 CumulativeExpectedErrorMatrix cell definition).
func CumulativeExpectedError(quality string, scheme Scheme) []float64 {
	out := make([]float64, len(quality))
	running := 0.0
	for i := 0; i < len(quality); i++ {
		running += scheme.ToPError(quality[i])
		out[i] = running
	}
	return out
}

// Convert re-encodes a quality string from one scheme to another, preserving
// the round-trip semantics of the original's convertQualityString.
func Convert(qual string, from, to Scheme) string {
	out := make([]byte, len(qual))
	for i := 0; i < len(qual); i++ {
		pErr := from.ToPError(qual[i])
		out[i] = to.EncodedFromPError(pErr)
	}
	return string(out)
}
