// Package sparse provides compressed sparse matrix storage and the kernels
// the PageRank solvers are built on.
//
// The sparse package provides:
//
//   - Builder: a coordinate (triplet) accumulator. Duplicate entries are
//     summed and explicit zeros are dropped when the matrix is compressed.
//   - CSR: compressed sparse rows. Row sums, matrix–vector products,
//     transposition and ordered iteration over stored entries.
//   - CSC: compressed sparse columns, the input format of the LU factorization.
//   - Diagonal: a sparse diagonal that stores only its non-zero entries.
//     NewInverseDiagonal builds D⁻¹ from a degree vector without ever
//     dividing by a zero degree.
//   - LU: a left-looking (Gilbert–Peierls) sparse LU factorization with
//     threshold partial pivoting, PA = LU, and the matching solver.
//
// CSR and CSC implement gonum's mat.Matrix, so they can be handed to any
// gonum routine (mat.DenseCopyOf, mat.Formatted, ...).
//
// Shapes of 0×0 are valid everywhere: an empty graph is a legitimate input.
//
// Errors are package sentinels (errors.go) and must be matched with errors.Is.
package sparse
