// Package workers splits row ranges across a bounded number of goroutines.
package workers

import (
	"golang.org/x/sync/errgroup"
)

// ForRows divides [0, n) into at most numCores contiguous ranges and calls fn
// once per range. With numCores <= 1 fn runs once on the calling goroutine.
// Ranges never overlap, so fn may write to disjoint rows of shared output.
func ForRows(n, numCores int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if numCores <= 1 || n == 1 {
		return fn(0, n)
	}
	if numCores > n {
		numCores = n
	}

	rowsPerCore := (n + numCores - 1) / numCores

	var g errgroup.Group
	g.SetLimit(numCores)
	for c := 0; c < numCores; c++ {
		start := c * rowsPerCore
		end := start + rowsPerCore
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
