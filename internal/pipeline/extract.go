package pipeline

import (
	"figaro/internal/curve"
	"figaro/internal/naming"
	"figaro/internal/quality"
	"figaro/internal/stats"
	"figaro/internal/workerpool"
)

// fitCurve builds the float16 expected-error matrix for descriptors,
// aggregates it in sampleOrder, reduces it to a percentile envelope, and
// fits the exponential curve (component 4.6).
func fitCurve(descriptors, sampleOrder []naming.Descriptor, scheme quality.Scheme, primerLen, subsample, percentile, workers int) (curve.Fit, []float64, []float64, error) {
	type wideResult = stats.MatrixResult[float64]

	perFile, err := workerpool.Parallel(descriptors, workers, func(desc naming.Descriptor) (wideResult, error) {
		d, matrix, err := stats.ExpectedErrorMatrixWide(desc, stats.ExtractOptions{
			Subsample: subsample,
			LeftTrim:  primerLen,
			Scheme:    scheme,
		})
		if err != nil {
			return wideResult{}, err
		}
		widened := make([][]float64, len(matrix))
		for i, row := range matrix {
			converted := make([]float64, len(row))
			for j, v := range row {
				converted[j] = float64(v.Float32())
			}
			widened[i] = converted
		}
		return wideResult{Descriptor: d, Matrix: widened}, nil
	})
	if err != nil {
		return curve.Fit{}, nil, nil, err
	}

	aggregated, err := stats.AggregateMatrix(sampleOrder, perFile)
	if err != nil {
		return curve.Fit{}, nil, nil, err
	}
	if len(aggregated) == 0 {
		return curve.Fit{}, nil, nil, nil
	}

	// aggregated is transposed (rows=position, cols=read); curve.PercentileEnvelope
	// expects rows=reads, cols=positions, so transpose back once more.
	perRead := make([][]float64, len(aggregated[0]))
	for c := range perRead {
		perRead[c] = make([]float64, len(aggregated))
		for r := range aggregated {
			perRead[c][r] = aggregated[r][c]
		}
	}

	envelope := curve.PercentileEnvelope(perRead, float64(percentile))
	xs := make([]float64, len(envelope))
	for i := range xs {
		xs[i] = float64(i)
	}

	fit := curve.FitExponential(xs, envelope)
	return fit, xs, envelope, nil
}

// extractKind selects which first-offender array buildArray produces.
type extractKind int

const (
	extractKindFirstN extractKind = iota
	extractKindFirstQ2
)

// buildArray builds and aggregates a first-N or first-Q2 array across
// descriptors in sampleOrder.
func buildArray(descriptors, sampleOrder []naming.Descriptor, scheme quality.Scheme, leftTrim, subsample, workers int, kind extractKind) ([]uint16, error) {
	type arrayResult = stats.ArrayResult[uint16]

	perFile, err := workerpool.Parallel(descriptors, workers, func(desc naming.Descriptor) (arrayResult, error) {
		opts := stats.ExtractOptions{Subsample: subsample, LeftTrim: leftTrim, Scheme: scheme}
		var d naming.Descriptor
		var values []uint16
		var err error
		if kind == extractKindFirstN {
			d, values, err = stats.FirstNArray(desc, opts)
		} else {
			d, values, err = stats.FirstQ2Array(desc, opts)
		}
		if err != nil {
			return arrayResult{}, err
		}
		return arrayResult{Descriptor: d, Values: values}, nil
	})
	if err != nil {
		return nil, err
	}

	return stats.AggregateArray(sampleOrder, perFile)
}

// buildLeanMatrix builds and aggregates the uint8 expected-error matrix the
// scorer consumes. leftTrim strips the primer bases before the cumulative
// error is accumulated (matching buildExpectedErrorMatrix opening the file
// with leftTrim=primerLength); startPosition then offsets past the unusable
// leading columns below the minimum trim position, counted from that
// already-primer-trimmed read.
func buildLeanMatrix(descriptors, sampleOrder []naming.Descriptor, scheme quality.Scheme, leftTrim, startPosition, subsample, workers int) ([][]uint8, error) {
	type leanResult = stats.MatrixResult[uint8]

	perFile, err := workerpool.Parallel(descriptors, workers, func(desc naming.Descriptor) (leanResult, error) {
		d, matrix, err := stats.ExpectedErrorMatrixLean(desc, stats.ExtractOptions{
			Subsample:     subsample,
			LeftTrim:      leftTrim,
			StartPosition: startPosition,
			Scheme:        scheme,
		})
		if err != nil {
			return leanResult{}, err
		}
		return leanResult{Descriptor: d, Matrix: matrix}, nil
	})
	if err != nil {
		return nil, err
	}

	return stats.AggregateMatrix(sampleOrder, perFile)
}
