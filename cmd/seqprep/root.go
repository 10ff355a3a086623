package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Noofbiz/seqprep/config"
	"github.com/Noofbiz/seqprep/datasets"
	"github.com/Noofbiz/seqprep/logging"
)

// NewRootCommand returns the seqprep command tree.
func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:           "seqprep",
		Short:         "Prepare windowed time-series datasets for sequence models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := command.PersistentFlags()
	flags.String("config", "", "Path to a YAML or JSON config file.")
	flags.String(config.FlagName("data_dir"), "", "Directory holding <data-name>.csv.")
	flags.String(config.FlagName("data_name"), datasets.SineDatasetName, "Dataset name; \"sine\" generates synthetic data.")
	flags.Float64(config.FlagName("validation_percentage"), 10, "Share of windows for validation, in percent.")
	flags.Float64(config.FlagName("test_percentage"), 10, "Share of windows for test, in percent.")
	flags.Int(config.FlagName("seq_len"), datasets.DefaultSeqLen, "Window length in time steps.")
	flags.Bool(config.FlagName("gate_on_test"), false, "Leave validation empty when the test percentage is zero.")
	flags.Int64(config.FlagName("seed"), 0, "Random seed; 0 seeds from the clock.")

	command.AddCommand(NewSummaryCommand())
	command.AddCommand(NewBatchCommand())
	command.AddCommand(NewPlotCommand())
	command.AddCommand(NewExportCommand())
	command.AddCommand(NewListCommand())
	return command
}

// addBatchFlags registers the flags choosing a partition and batch size.
func addBatchFlags(command *cobra.Command) {
	command.Flags().Int(config.FlagName("batch.size"), 32, "Windows per batch.")
	command.Flags().String(config.FlagName("batch.partition"), datasets.Train.String(), "Partition: all, train, validation or test.")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}

func commandLogger(cmd *cobra.Command) *zap.SugaredLogger {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.FromContext(ctx)
}

// loadDataset resolves the configuration and loads the dataset it names.
func loadDataset(cmd *cobra.Command) (*config.Config, *datasets.DataLoader, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	loader, err := cfg.NewDataLoader(commandLogger(cmd))
	if err != nil {
		return nil, nil, err
	}
	if !loader.Loaded() {
		return nil, nil, fmt.Errorf("dataset %q needs --data-dir: %w", cfg.DataName, datasets.ErrNoSource)
	}
	return cfg, loader, nil
}
