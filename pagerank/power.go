// SPDX-License-Identifier: MIT

package pagerank

import (
	"context"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Power approximates PageRank by power iteration:
//
//	x ← s; prev ← 0
//	while ‖x − prev‖₂ > Tolerance:
//	    prev ← x
//	    x ← W·prev + s·(z·prev)
//	    stop after MaxIter steps
//	x ← x / Σx
//
// Reaching MaxIter is not an error: the current iterate is normalized and
// returned with PowerStats.State == StateMaxIterReached, and a warning is
// logged.
//
// n = 0 returns an empty, non-nil slice and zero stats.
// Complexity: O(MaxIter·(n + nnz)) time, O(n + nnz) memory.
func Power(adj Adjacency, opts ...Option) ([]float64, PowerStats, error) {
	return PowerContext(context.Background(), adj, opts...)
}

// PowerContext is Power with cancellation checked before every iteration.
// On cancellation the partial stats are returned along with ctx.Err().
func PowerContext(ctx context.Context, adj Adjacency, opts ...Option) ([]float64, PowerStats, error) {
	var stats PowerStats
	pb, err := setup(adj, opts)
	if err != nil {
		return nil, stats, pagerankErrorf("Power", err)
	}
	if pb == nil {
		return []float64{}, stats, nil
	}

	var (
		s, z = pb.tp.s, pb.tp.z
		tol  = pb.opts.Tolerance
		x    = append([]float64(nil), s...)
		prev = make([]float64, pb.n)
		res  = floats.Distance(x, prev, 2)
	)
	for res > tol {
		if err = ctx.Err(); err != nil {
			stats.Residual = res
			return nil, stats, pagerankErrorf("Power", err)
		}

		// Swap buffers: prev takes the current iterate, x is overwritten.
		x, prev = prev, x
		pb.op.Apply(x, prev)
		floats.AddScaled(x, floats.Dot(z, prev), s)

		stats.Iterations++
		res = floats.Distance(x, prev, 2)
		if stats.Iterations >= pb.opts.MaxIter {
			break
		}
	}
	stats.Residual = res
	stats.State = StateConverged
	if res > tol {
		stats.State = StateMaxIterReached
	}
	normalize(x)

	entry := pb.log.WithFields(logrus.Fields{
		"iterations": stats.Iterations,
		"residual":   stats.Residual,
		"state":      stats.State,
	})
	if stats.State == StateMaxIterReached {
		entry.Warn("pagerank: power iteration stopped before reaching tolerance")
	} else {
		entry.Debug("pagerank: power iteration converged")
	}

	return x, stats, nil
}
