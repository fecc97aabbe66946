package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/fastrank/internal/config"
	"github.com/katalvlaran/fastrank/pagerank"
)

// newRootCmd builds the command tree. Ranking flags are persistent so that
// rank and chart share them; each one is bound to the viper key of the
// same config field.
func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:           "fastrank",
		Short:         "PageRank for weighted edge lists",
		Long:          "fastrank computes exact or power-iteration PageRank, optionally personalized or reversed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(cfgFile); err != nil {
				return err
			}
			if viper.GetBool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
				logrus.Debug("Debug logs enabled")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default .fastrank.yaml)")
	pf.BoolP("debug", "d", false, "verbose logging")
	pf.String("method", config.MethodExact, "ranking method: exact or power")
	pf.Float64("damping", pagerank.DefaultDamping, "damping factor p in (0,1)")
	pf.Int("max-iter", pagerank.DefaultMaxIter, "power method iteration cap")
	pf.Float64("tol", pagerank.DefaultTolerance, "power method L2 tolerance")
	pf.String("factorization", pagerank.SparseLU.String(), "exact method factorization: sparse or dense")
	pf.Float64("pivot-tol", pagerank.DefaultPivotTolerance, "sparse LU diagonal pivot threshold in (0,1]")
	pf.Bool("reverse", false, "rank the graph with every edge reversed")
	pf.String("personalize", "", "file of \"label value\" teleportation weights")
	pf.Int("top", 0, "print only the K highest-ranked nodes (0 = all)")

	for key, flag := range map[string]string{
		"method":          "method",
		"damping":         "damping",
		"max_iter":        "max-iter",
		"tolerance":       "tol",
		"factorization":   "factorization",
		"pivot_tolerance": "pivot-tol",
		"reverse":         "reverse",
		"personalize":     "personalize",
		"top":             "top",
		"debug":           "debug",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag)) // error not expected: flag registered above
	}

	root.AddCommand(newRankCmd(), newChartCmd())

	return root
}
