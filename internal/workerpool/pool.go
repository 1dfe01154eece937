// Package workerpool generalizes the batch-processing pattern from
// scramTrimmer.go's processBatch: a fixed pool of goroutines draining a
// shared slice of work items, each producing one result, synchronized with
// sync.WaitGroup and a mutex rather than a channel pipeline.
package workerpool

import (
	"runtime"
	"sync"
)

// DefaultWorkers returns max(1, NumCPU-1), matching
// easyMultiprocessing.calculateAvailableCores.
func DefaultWorkers() int {
	if n := runtime.NumCPU() - 1; n > 0 {
		return n
	}
	return 1
}

// Parallel runs fn over every item in items using up to workers goroutines,
// returning results in the same order as items regardless of completion
// order. Every item is processed even if an earlier call fails; once all
// calls have finished, the error of the lowest-indexed failing item is
// returned.
func Parallel[T, R any](items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = DefaultWorkers()
	}
	if workers > len(items) {
		workers = len(items)
	}
	if workers < 1 {
		return nil, nil
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))

	var nextIndex int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	claim := func() (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		if int(nextIndex) >= len(items) {
			return 0, false
		}
		i := int(nextIndex)
		nextIndex++
		return i, true
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i, ok := claim()
				if !ok {
					return
				}
				r, err := fn(items[i])
				results[i] = r
				errs[i] = err
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
