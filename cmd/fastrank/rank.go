package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank GRAPH",
		Short: "Print label<TAB>score for every node, highest score first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rankFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range r.Top(r.Config.Top) {
				if _, err = fmt.Fprintf(out, "%s\t%.6f\n", s.Label, s.Score); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
