package workerpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results, err := Parallel(items, 3, func(i int) (int, error) {
		return i * i, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, results)
}

func TestParallelPropagatesError(t *testing.T) {
	items := []int{1, 2, 3}
	boom := errors.New("boom")
	_, err := Parallel(items, 2, func(i int) (int, error) {
		if i == 2 {
			return 0, boom
		}
		return i, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelEmptyInput(t *testing.T) {
	results, err := Parallel[int, int](nil, 4, func(i int) (int, error) {
		return i, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDefaultWorkersAtLeastOne(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)
}
