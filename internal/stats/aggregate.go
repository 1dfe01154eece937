package stats

import (
	"figaro/internal/ferrors"
	"figaro/internal/naming"
)

// MatrixResult pairs a descriptor with the matrix one extractor produced for
// its file (rows=reads, cols=positions).
type MatrixResult[T any] struct {
	Descriptor naming.Descriptor
	Matrix     [][]T
}

// ArrayResult pairs a descriptor with a per-read array (first-Q2 or
// first-N).
type ArrayResult[T any] struct {
	Descriptor naming.Descriptor
	Values     []T
}

func findMatch[T any](descriptors []naming.Descriptor, i int, results []T, descOf func(T) naming.Descriptor) (T, bool) {
	target := descriptors[i]
	for _, r := range results {
		if descOf(r).SameSample(target) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// AggregateMatrix concatenates each file's rows in sampleOrder (the
// forward-direction descriptors in directory-enumeration order), then
// transposes so rows index position and columns index read, matching
// makeCombinedExpectedErrorMatrixForOneDirection's row/column convention.
func AggregateMatrix[T any](sampleOrder []naming.Descriptor, results []MatrixResult[T]) ([][]T, error) {
	if len(sampleOrder) == 0 {
		return nil, nil
	}

	var concatenated [][]T
	for i := range sampleOrder {
		match, ok := findMatch(sampleOrder, i, results, func(r MatrixResult[T]) naming.Descriptor { return r.Descriptor })
		if !ok {
			if i == 0 {
				return nil, &ferrors.ValidationError{Detail: "no per-file result matches the first sample in sampleOrder"}
			}
			return nil, &ferrors.ValidationError{Detail: "no per-file result matches sample " + sampleOrder[i].SampleNumber}
		}
		concatenated = append(concatenated, match.Matrix...)
	}

	return transpose(concatenated), nil
}

func transpose[T any](rows [][]T) [][]T {
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	out := make([][]T, cols)
	for c := 0; c < cols; c++ {
		col := make([]T, len(rows))
		for r := range rows {
			col[r] = rows[r][c]
		}
		out[c] = col
	}
	return out
}

// AggregateArray concatenates each file's per-read array in sampleOrder,
// matching makeCombinedQ2ArrayForOneDirection/makeCombinedNArrayForOneDirection.
func AggregateArray[T any](sampleOrder []naming.Descriptor, results []ArrayResult[T]) ([]T, error) {
	if len(sampleOrder) == 0 {
		return nil, nil
	}

	var concatenated []T
	for i := range sampleOrder {
		match, ok := findMatch(sampleOrder, i, results, func(r ArrayResult[T]) naming.Descriptor { return r.Descriptor })
		if !ok {
			if i == 0 {
				return nil, &ferrors.ValidationError{Detail: "no per-file result matches the first sample in sampleOrder"}
			}
			return nil, &ferrors.ValidationError{Detail: "no per-file result matches sample " + sampleOrder[i].SampleNumber}
		}
		concatenated = append(concatenated, match.Values...)
	}
	return concatenated, nil
}
