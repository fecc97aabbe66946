// Package fastrank computes PageRank over weighted directed graphs stored
// as sparse matrices.
//
// Two solvers share one problem setup:
//
//	pagerank.Exactsolves (I − p·Aᵀ·D⁻¹)·x = s with a sparse (or dense) LU
//	pagerank.Poweriterates x ← p·Aᵀ·D⁻¹·x + s·(z·x) until ‖Δx‖₂ ≤ tol
//
// Both accept damping, a personalization (teleportation) vector, and a
// reverse switch that ranks the graph with every edge flipped. Dangling
// nodes redistribute their mass along the personalization vector.
//
// Layout:
//
//	sparse/       CSR/CSC storage, triplet builder, diagonal, sparse LU
//	pagerank/     Exact and Power solvers, options, convergence stats
//	converters/   edge-list and personalization readers, gonum bridges
//	cmd/fastrank  command-line ranking and HTML charts
//	examples/     runnable scenarios
//
// Quick example:
//
//	el, _ := converters.ReadEdgeList(strings.NewReader("a b\nb c\nc a\n"))
//	x, _ := pagerank.Exact(el.Matrix, pagerank.WithDamping(0.85))
//	// x ≈ [1/3 1/3 1/3]
//
//	go get github.com/katalvlaran/fastrank
package fastrank
