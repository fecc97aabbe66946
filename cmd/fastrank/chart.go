package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// chartTop caps the nodes drawn when --top is not set.
const chartTop = 50

func newChartCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "chart GRAPH",
		Short: "Render the ranking as an HTML page with a bar chart and a rank-sized graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rankFile(args[0])
			if err != nil {
				return err
			}
			k := r.Config.Top
			if k <= 0 {
				k = chartTop
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			page := components.NewPage()
			page.AddCharts(rankBar(r, k), rankGraph(r, k))
			if err = page.Render(f); err != nil {
				return fmt.Errorf("render %s: %w", out, err)
			}
			logrus.WithField("out", out).Info("chart written")

			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "ranks.html", "output HTML file")

	return cmd
}

func rankBar(r *ranking, k int) *charts.Bar {
	top := r.Top(k)
	labels := make([]string, len(top))
	data := make([]opts.BarData, len(top))
	for i, s := range top {
		labels[i] = s.Label
		data[i] = opts.BarData{Value: s.Score}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "PageRank", Subtitle: fmt.Sprintf("top %d of %d", len(top), r.Graph.Len())}),
	)
	bar.SetXAxis(labels).AddSeries("score", data)

	return bar
}

// rankGraph draws the top k nodes with symbol size proportional to their
// score, plus the edges among them.
func rankGraph(r *ranking, k int) *charts.Graph {
	top := r.Top(k)
	keep := make(map[int]bool, len(top))
	nodes := make([]opts.GraphNode, 0, len(top))
	maxScore := 0.
	if len(top) > 0 {
		maxScore = top[0].Score
	}
	for _, s := range top {
		i, _ := r.Graph.Index(s.Label)
		keep[i] = true
		nodes = append(nodes, opts.GraphNode{
			Name:       s.Label,
			Value:      float32(s.Score),
			SymbolSize: symbolSize(s.Score, maxScore),
		})
	}

	links := make([]opts.GraphLink, 0)
	r.Graph.Matrix.DoNonZero(func(i, j int, v float64) {
		if keep[i] && keep[j] {
			links = append(links, opts.GraphLink{
				Source: r.Graph.Labels[i],
				Target: r.Graph.Labels[j],
				Value:  float32(v),
			})
		}
	})

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Ranked graph"}),
	)
	graph.AddSeries("graph", nodes, links).
		SetSeriesOptions(
			charts.WithGraphChartOpts(opts.GraphChart{
				Layout: "force",
				Roam:   true,
				Force:  &opts.GraphForce{Repulsion: 2000},
			}),
		)

	return graph
}

// symbolSize maps a score onto [8, 60] relative to the best score.
func symbolSize(score, max float64) float64 {
	const lo, hi = 8., 60.
	if max <= 0 {
		return lo
	}

	return lo + (hi-lo)*math.Sqrt(score/max)
}
