// Package pagerank_test provides benchmarks for both solvers on random
// sparse graphs with deterministic fill.
package pagerank_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fastrank/pagerank"
)

// benchSizes are the node counts to benchmark. The exact solver runs on
// smaller graphs: without a fill-reducing ordering random graphs fill in.
var (
	benchSizes      = []int{1000, 10000, 100000}
	exactBenchSizes = []int{500, 2000}
)

// sinks to defeat dead-code elimination
var (
	sinkX     []float64
	sinkStats pagerank.PowerStats
)

func BenchmarkExact(b *testing.B) {
	b.ReportAllocs()
	for _, n := range exactBenchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomCSR(b, n, 8, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				x, err := pagerank.Exact(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkX = x
			}
		})
	}
}

func BenchmarkPower(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomCSR(b, n, 8, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				x, stats, err := pagerank.Power(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkX, sinkStats = x, stats
			}
		})
	}
}

func BenchmarkExactDense(b *testing.B) {
	b.ReportAllocs()
	a := randomCSR(b, 500, 8, 7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, err := pagerank.Exact(a, pagerank.WithFactorization(pagerank.DenseLU))
		if err != nil {
			b.Fatal(err)
		}
		sinkX = x
	}
}
