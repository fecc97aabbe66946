// SPDX-License-Identifier: MIT
package pagerank_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fastrank/pagerank"
	"github.com/katalvlaran/fastrank/sparse"
)

func TestExact_Fixtures(t *testing.T) {
	t.Parallel()

	for _, fx := range fixtures {
		fx := fx
		t.Run(fx.name, func(t *testing.T) {
			t.Parallel()
			x, err := pagerank.Exact(fx.graph(t),
				pagerank.WithDamping(fx.p),
				pagerank.WithPersonalization(fx.pers),
			)
			require.NoError(t, err)
			require.NotNil(t, x)
			require.Len(t, x, fx.n)
			requireApprox(t, fx.want, x, fixtureTol)
		})
	}
}

func TestExact_DenseMatchesSparse(t *testing.T) {
	t.Parallel()

	for _, fx := range fixtures[:4] {
		a := fx.graph(t)
		opts := []pagerank.Option{pagerank.WithDamping(fx.p), pagerank.WithPersonalization(fx.pers)}

		xs, err := pagerank.Exact(a, opts...)
		require.NoError(t, err)
		xd, err := pagerank.Exact(a, append(opts, pagerank.WithFactorization(pagerank.DenseLU))...)
		require.NoError(t, err)
		requireApprox(t, xs, xd, 1e-12)
	}

	a := randomCSR(t, 80, 4, 5)
	xs, err := pagerank.Exact(a)
	require.NoError(t, err)
	xd, err := pagerank.Exact(a, pagerank.WithFactorization(pagerank.DenseLU))
	require.NoError(t, err)
	requireApprox(t, xs, xd, 1e-12)
}

func TestExact_PlainPartialPivotingAgrees(t *testing.T) {
	t.Parallel()

	a := randomCSR(t, 60, 3, 17)
	x1, err := pagerank.Exact(a)
	require.NoError(t, err)
	x2, err := pagerank.Exact(a, pagerank.WithPivotTolerance(1))
	require.NoError(t, err)
	requireApprox(t, x1, x2, 1e-12)
}

func TestExact_AllDanglingReturnsPersonalization(t *testing.T) {
	t.Parallel()

	pers := []float64{1, 3, 0, 4}
	x, err := pagerank.Exact(buildCSR(t, 4, nil, nil), pagerank.WithPersonalization(pers))
	require.NoError(t, err)
	requireApprox(t, []float64{0.125, 0.375, 0, 0.5}, x, 1e-15)
}

func TestSolvers_SubnormalPersonalizationSum(t *testing.T) {
	t.Parallel()

	a := fixtures[2].graph(t)
	for _, s := range solvers {
		s := s
		t.Run(s.name, func(t *testing.T) {
			t.Parallel()
			want, err := s.run(a, pagerank.WithPersonalization([]float64{1, 0, 0, 0, 0}))
			require.NoError(t, err)
			got, err := s.run(a, pagerank.WithPersonalization([]float64{1e-320, 0, 0, 0, 0}))
			require.NoError(t, err)
			for i, v := range got {
				require.Falsef(t, math.IsNaN(v) || v < 0, "x[%d]=%v", i, v)
			}
			assert.InDelta(t, 1, sum(got), 1e-12)
			requireApprox(t, want, got, 1e-12)
		})
	}
}

func TestExact_UniformOnCycle(t *testing.T) {
	t.Parallel()

	a := buildCSR(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, []float64{1, 2, 3, 4})
	x, err := pagerank.Exact(a)
	require.NoError(t, err)
	requireApprox(t, []float64{0.25, 0.25, 0.25, 0.25}, x, 1e-12)
}

func TestExact_SelfLoop(t *testing.T) {
	t.Parallel()

	// Node 0 links to itself and to 1; the loop keeps some mass at 0.
	a := buildCSR(t, 2, [][2]int{{0, 0}, {0, 1}}, []float64{1, 1})
	x, err := pagerank.Exact(a)
	require.NoError(t, err)
	assert.InDelta(t, 1, sum(x), 1e-12)
	for _, v := range x {
		assert.GreaterOrEqual(t, v, 0.0)
	}

	xp, _, err := pagerank.Power(a, pagerank.WithTolerance(1e-12), pagerank.WithMaxIter(1000))
	require.NoError(t, err)
	requireApprox(t, x, xp, 1e-8)
}

func TestExact_Reverse(t *testing.T) {
	t.Parallel()

	fx := fixtures[0]
	a := fx.graph(t)
	opts := []pagerank.Option{pagerank.WithDamping(fx.p), pagerank.WithPersonalization(fx.pers)}

	// reverse=true on A ranks Aᵀ.
	xr, err := pagerank.Exact(a, append(opts, pagerank.WithReverse(true))...)
	require.NoError(t, err)
	xt, err := pagerank.Exact(a.Transpose(), opts...)
	require.NoError(t, err)
	requireApprox(t, xt, xr, 1e-12)

	// Reversing the transposed graph gives back the forward ranking.
	xf, err := pagerank.Exact(a, opts...)
	require.NoError(t, err)
	xrr, err := pagerank.Exact(a.Transpose(), append(opts, pagerank.WithReverse(true))...)
	require.NoError(t, err)
	requireApprox(t, xf, xrr, 1e-12)

	assert.NotEqual(t, xf, xr)
}

func TestExact_AcceptsAnyAdjacency(t *testing.T) {
	t.Parallel()

	fx := fixtures[1]
	a := fx.graph(t)
	opts := []pagerank.Option{pagerank.WithDamping(fx.p), pagerank.WithPersonalization(fx.pers)}

	want, err := pagerank.Exact(a, opts...)
	require.NoError(t, err)

	fromCSC, err := pagerank.Exact(a.ToCSC(), opts...)
	require.NoError(t, err)
	requireApprox(t, want, fromCSC, 1e-15)

	triplets := tripletGraph{n: fx.n, edges: fx.edges, weights: fx.weights}
	fromTriplets, err := pagerank.Exact(triplets, opts...)
	require.NoError(t, err)
	requireApprox(t, want, fromTriplets, 1e-15)
}

func TestExact_DoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	fx := fixtures[0]
	a := fx.graph(t)
	before := a.Clone()
	pers := append([]float64(nil), fx.pers...)

	_, err := pagerank.Exact(a, pagerank.WithPersonalization(pers), pagerank.WithReverse(true))
	require.NoError(t, err)
	assert.Equal(t, fx.pers, pers)
	assert.Equal(t, before, a)
}

func TestExact_Deterministic(t *testing.T) {
	t.Parallel()

	a := randomCSR(t, 200, 5, 23)
	x1, err := pagerank.Exact(a)
	require.NoError(t, err)
	x2, err := pagerank.Exact(a)
	require.NoError(t, err)
	assert.Equal(t, x1, x2)
}

func TestExactContext_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pagerank.ExactContext(ctx, fixtures[0].graph(t))
	require.ErrorIs(t, err, context.Canceled)

	// n = 0 short-circuits before the context is consulted.
	x, err := pagerank.ExactContext(ctx, buildCSR(t, 0, nil, nil))
	require.NoError(t, err)
	assert.Empty(t, x)
}

// tripletGraph is an Adjacency that is not one of the sparse types.
type tripletGraph struct {
	n       int
	edges   [][2]int
	weights []float64
}

func (g tripletGraph) Dims() (int, int) { return g.n, g.n }

func (g tripletGraph) DoNonZero(fn func(i, j int, v float64)) {
	for k, e := range g.edges {
		fn(e[0], e[1], g.weights[k])
	}
}

var _ pagerank.Adjacency = (*sparse.CSR)(nil)
var _ pagerank.Adjacency = (*sparse.CSC)(nil)
