// Package stats builds the three per-file arrays/matrices the scorer and
// curve fitter consume (cumulative expected error, first-Q2 position,
// first-N position), ported from trimParameterPrediction.py's
// ExpectedErrorMatrixBuilderParallelAgent / Q2ArrayParallelBuilderAgent /
// NBaseArrayParallelBuilderAgent, and fastqAnalysis.py's
// buildExpectedErrorMatrix for the float16/uint8 dtype split.
package stats

import (
	"golang.org/x/image/math/f16"

	"figaro/internal/fastqio"
	"figaro/internal/naming"
	"figaro/internal/quality"
)

// q2Threshold is the phred-equivalent score at or below which a base counts
// as low quality for the first-Q2 extractor.
const q2Threshold = 2.0

// ExtractOptions configures a single per-file extraction pass.
type ExtractOptions struct {
	Subsample     int
	LeftTrim      int
	StartPosition int
	Scheme        quality.Scheme
}

// ExpectedErrorMatrixWide builds the float16 cumulative-expected-error
// matrix (rows=reads, cols=positions from StartPosition onward) used by the
// curve fitter, where retaining fractional precision matters.
func ExpectedErrorMatrixWide(desc naming.Descriptor, opts ExtractOptions) (naming.Descriptor, [][]f16.Float16, error) {
	rows, err := eeRows(desc, opts)
	if err != nil {
		return desc, nil, err
	}
	matrix := make([][]f16.Float16, len(rows))
	for i, row := range rows {
		converted := make([]f16.Float16, len(row))
		for j, v := range row {
			converted[j] = f16.F16(float32(v))
		}
		matrix[i] = converted
	}
	return desc, matrix, nil
}

// ExpectedErrorMatrixLean builds the uint8 "superLean" cumulative-error
// matrix the scorer consumes, truncating fractional components by design
// (§3's memory-precision trade-off).
func ExpectedErrorMatrixLean(desc naming.Descriptor, opts ExtractOptions) (naming.Descriptor, [][]uint8, error) {
	rows, err := eeRows(desc, opts)
	if err != nil {
		return desc, nil, err
	}
	matrix := make([][]uint8, len(rows))
	for i, row := range rows {
		converted := make([]uint8, len(row))
		for j, v := range row {
			if v > 255 {
				v = 255
			}
			converted[j] = uint8(v)
		}
		matrix[i] = converted
	}
	return desc, matrix, nil
}

func eeRows(desc naming.Descriptor, opts ExtractOptions) ([][]float64, error) {
	reader, err := fastqio.New(desc.FilePath, fastqio.Options{
		Subsample: opts.Subsample,
		LeftTrim:  opts.LeftTrim,
		Scheme:    &opts.Scheme,
	}, nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var rows [][]float64
	for {
		rec, ok, err := reader.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		ee := quality.CumulativeExpectedError(rec.Quality, opts.Scheme)
		if opts.StartPosition < len(ee) {
			rows = append(rows, append([]float64(nil), ee[opts.StartPosition:]...))
		} else {
			rows = append(rows, []float64{})
		}
	}
	return rows, nil
}

// FirstQ2Array returns, per read, the smallest position with a
// phred-equivalent score <= q2Threshold, or the read length if the
// predicate never holds.
func FirstQ2Array(desc naming.Descriptor, opts ExtractOptions) (naming.Descriptor, []uint16, error) {
	out, err := firstOffenderArray(desc, opts, func(c byte, scheme quality.Scheme) bool {
		return quality.ToPhred(scheme.ToPError(c)) <= q2Threshold
	})
	return desc, out, err
}

// FirstNArray returns, per read, the smallest position of an 'N' base, or
// the read length if none.
func FirstNArray(desc naming.Descriptor, opts ExtractOptions) (naming.Descriptor, []uint16, error) {
	out, err := firstOffenderArraySeq(desc, opts, func(base byte) bool {
		return base == 'N'
	})
	return desc, out, err
}

func firstOffenderArray(desc naming.Descriptor, opts ExtractOptions, predicate func(byte, quality.Scheme) bool) ([]uint16, error) {
	reader, err := fastqio.New(desc.FilePath, fastqio.Options{
		Subsample: opts.Subsample,
		LeftTrim:  opts.LeftTrim,
		Scheme:    &opts.Scheme,
	}, nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var out []uint16
	for {
		rec, ok, err := reader.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos := len(rec.Quality)
		for i := 0; i < len(rec.Quality); i++ {
			if predicate(rec.Quality[i], opts.Scheme) {
				pos = i
				break
			}
		}
		out = append(out, uint16(pos))
	}
	return out, nil
}

func firstOffenderArraySeq(desc naming.Descriptor, opts ExtractOptions, predicate func(byte) bool) ([]uint16, error) {
	reader, err := fastqio.New(desc.FilePath, fastqio.Options{
		Subsample: opts.Subsample,
		LeftTrim:  opts.LeftTrim,
		Scheme:    &opts.Scheme,
	}, nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var out []uint16
	for {
		rec, ok, err := reader.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos := len(rec.Sequence)
		for i := 0; i < len(rec.Sequence); i++ {
			if predicate(rec.Sequence[i]) {
				pos = i
				break
			}
		}
		out = append(out, uint16(pos))
	}
	return out, nil
}
