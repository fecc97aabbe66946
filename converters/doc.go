// Package converters provides adapters between external graph
// representations and the sparse adjacency matrices the solvers consume:
//   - plain-text edge lists ("src dst [weight]" per line)
//   - personalization files ("label value" per line)
//   - gonum/graph weighted directed graphs, in both directions
//
// Use converters to import graphs with string labels, rank them, and map
// the scores back to the original node names.
package converters
