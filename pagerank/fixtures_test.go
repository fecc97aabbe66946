// SPDX-License-Identifier: MIT
// Package pagerank_test holds the shared graph fixtures and helpers of the
// solver tests.
package pagerank_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fastrank/sparse"
)

// fixture is a small weighted graph with a known personalized PageRank.
type fixture struct {
	name    string
	n       int
	edges   [][2]int
	weights []float64
	p       float64
	pers    []float64
	want    []float64
}

// fixtures are rounded to four decimals; compare with fixtureTol.
const fixtureTol = 1e-4

var fixtures = []fixture{
	{
		name: "G1",
		n:    5,
		edges: [][2]int{
			{0, 1}, {1, 2}, {2, 1}, {2, 3}, {2, 4},
			{3, 0}, {3, 2}, {4, 0}, {4, 2}, {4, 3},
		},
		weights: []float64{0.4923, 0.0999, 0.2132, 0.0178, 0.5694, 0.0406, 0.2047, 0.8610, 0.3849, 0.4829},
		p:       0.83,
		pers:    []float64{0.6005, 0.1221, 0.2542, 0.4778, 0.4275},
		want:    []float64{0.1592, 0.2114, 0.3085, 0.1, 0.2208},
	},
	{
		name: "G2",
		n:    10,
		edges: [][2]int{
			{2, 4}, {2, 5}, {4, 5}, {5, 3}, {5, 4},
			{5, 9}, {6, 1}, {6, 2}, {9, 2}, {9, 4},
		},
		weights: []float64{0.4565, 0.2861, 0.5730, 0.0025, 0.4829, 0.3866, 0.3041, 0.3407, 0.2653, 0.8079},
		p:       0.92,
		pers:    []float64{0.8887, 0.6491, 0.7843, 0.7103, 0.7428, 0.6632, 0.7351, 0.3006, 0.8722, 0.1652},
		want:    []float64{0.0234, 0.0255, 0.0629, 0.0196, 0.3303, 0.3436, 0.0194, 0.0079, 0.023, 0.1445},
	},
	{
		name:    "G3 single edge",
		n:       5,
		edges:   [][2]int{{2, 4}},
		weights: []float64{0.5441},
		p:       0.81,
		pers:    []float64{0.0884, 0.2797, 0.3093, 0.5533, 0.985},
		want:    []float64{0.0358, 0.1134, 0.1254, 0.2244, 0.501},
	},
	{
		name: "G4 no edges",
		n:    5,
		p:    0.70,
		pers: []float64{0.2534, 0.8945, 0.9562, 0.056, 0.9439},
		want: []float64{0.0816, 0.2882, 0.3081, 0.018, 0.3041},
	},
	{
		name: "G5 empty",
		n:    0,
		p:    0.70,
		pers: []float64{},
		want: []float64{},
	},
}

// graph builds the fixture's adjacency.
func (f fixture) graph(t testing.TB) *sparse.CSR {
	t.Helper()
	return buildCSR(t, f.n, f.edges, f.weights)
}

// buildCSR compresses an edge list into an n×n CSR.
func buildCSR(t testing.TB, n int, edges [][2]int, weights []float64) *sparse.CSR {
	t.Helper()
	b, err := sparse.NewBuilder(n, n)
	require.NoError(t, err)
	for k, e := range edges {
		require.NoError(t, b.Add(e[0], e[1], weights[k]))
	}

	return b.BuildCSR()
}

// randomCSR returns an n×n graph with about deg out-links per node; roughly
// a tenth of the nodes are left dangling.
func randomCSR(t testing.TB, n, deg int, seed int64) *sparse.CSR {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b, err := sparse.NewBuilder(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		if rng.Intn(10) == 0 {
			continue
		}
		for k := 0; k < deg; k++ {
			require.NoError(t, b.Add(i, rng.Intn(n), 0.1+rng.Float64()))
		}
	}

	return b.BuildCSR()
}

// requireApprox fails with a go-cmp diff when got and want differ by more
// than tol in any component.
func requireApprox(t testing.TB, want, got []float64, tol float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Fatalf("vectors differ (-want +got):\n%s", diff)
	}
}

// sum returns Σx.
func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}
