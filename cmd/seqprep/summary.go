package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/seqprep/datasets"
)

func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print window counts, partition sizes and normalization parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dataset: %s\n", cfg.DataName)
			fmt.Fprintf(out, "features: %d\n", loader.NumFeatures())
			fmt.Fprintf(out, "seq_len: %d\n", loader.SeqLen())
			for _, p := range datasets.Partitions() {
				fmt.Fprintf(out, "%s: %d\n", p, loader.Len(p))
			}
			mins, ranges := loader.Min(), loader.Range()
			for f := range mins {
				fmt.Fprintf(out, "feature %d: min=%g range=%g\n", f, mins[f], ranges[f])
			}
			return nil
		},
	}
}
