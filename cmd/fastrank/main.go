// Command fastrank ranks the nodes of a weighted edge list with PageRank.
//
// Usage:
//
//	fastrank rank  GRAPH [--method exact|power] [--damping 0.85] [--top K] ...
//	fastrank chart GRAPH --out ranks.html [same ranking flags]
//
// GRAPH holds one "src dst [weight]" edge per line. Flags can also be set
// in .fastrank.yaml or through FASTRANK_* environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
