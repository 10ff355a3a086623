package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/seqprep/config"
	"github.com/Noofbiz/seqprep/datasets"
)

func NewBatchCommand() *cobra.Command {
	var (
		count       int
		denormalize bool
	)

	command := &cobra.Command{
		Use:   "batch",
		Short: "Draw batches from a partition and print their shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			part := cfg.Partition()
			out := cmd.OutOrStdout()

			for i := range count {
				var batch []datasets.Window
				if cfg.Batch.Sequential {
					batch, err = loader.GetSeqBatch(cfg.Batch.Size, part)
					if errors.Is(err, datasets.ErrPartitionExhausted) {
						fmt.Fprintf(out, "%s exhausted after %d batches\n", part, i)
						return nil
					}
				} else {
					batch, err = loader.GetBatch(cfg.Batch.Size, part)
				}
				if err != nil {
					return err
				}

				flat, err := datasets.MakeWindowBatchFlat(batch)
				if err != nil {
					return err
				}
				tensor, err := flat.ToGomlxTensor()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "batch %d from %s: tensor %s\n", i, part, tensor.Shape())

				first := batch[0]
				if denormalize {
					if first, err = loader.Scaler().Denormalize(first); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "  first step: %v\n", first[0])
			}
			return nil
		},
	}
	addBatchFlags(command)
	command.Flags().Bool(config.FlagName("batch.sequential"), false, "Walk the partition in order instead of sampling at random.")
	command.Flags().IntVarP(&count, "count", "n", 1, "Number of batches to draw.")
	command.Flags().BoolVar(&denormalize, "denormalize", false, "Print values in original units.")
	return command
}
