// Package pagerank computes PageRank, the stationary importance
// distribution of a weighted directed graph, in two interchangeable ways.
//
// The pagerank package provides:
//
//   - Exact: solves the sparse linear system (I − p·Aᵀ·D⁻¹)·x = s with a
//     sparse LU factorization and normalizes x to sum to one.
//   - Power: iterates x ← p·Aᵀ·D⁻¹·x + s·(z·x) from x = s until the L2 change
//     drops below a tolerance or an iteration cap is hit.
//
// Model:
//
//	A[i,j] > 0   link i→j with weight A[i,j]
//	r[i]         Σ_j A[i,j], the weighted out-degree
//	K            dangling nodes, r[i] = 0
//	D⁻¹          diagonal 1/r[i] for i ∉ K; no entry for i ∈ K
//	s            personalization rescaled to Σs = n (all ones by default)
//	z[j]         (1−p)/n for j ∉ K, 1/n for j ∈ K
//
// Both solvers accept the same functional options: WithDamping (p, default
// 0.85), WithPersonalization, WithReverse (rank the transposed graph),
// WithMaxIter and WithTolerance (Power only), WithFactorization (Exact only)
// and WithLogger.
//
// Inputs are never modified and nothing is cached between calls, so
// concurrent calls on the same graph need no coordination.
//
// Example:
//
//	b, _ := sparse.NewBuilder(3, 3)
//	_ = b.Add(0, 1, 1)
//	_ = b.Add(1, 2, 1)
//	_ = b.Add(2, 0, 1)
//	x, err := pagerank.Exact(b.BuildCSR(), pagerank.WithDamping(0.9))
//
// Errors are sentinels matched with errors.Is; see types.go.
package pagerank
