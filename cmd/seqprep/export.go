package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/seqprep/datasets"
)

func NewExportCommand() *cobra.Command {
	var (
		outPath     string
		denormalize bool
	)

	command := &cobra.Command{
		Use:   "export",
		Short: "Write the windows of a partition to CSV",
		Long: "Write the windows of a partition to CSV, one row per time step with columns\n" +
			"window, step, f0, f1, ... in shuffled window order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			windows := loader.Windows(cfg.Partition())
			if denormalize {
				if windows, err = denormalizeAll(loader.Scaler(), windows); err != nil {
					return err
				}
			}

			if outPath == "" || outPath == "-" {
				err = writeWindowsCSV(cmd.OutOrStdout(), windows, loader.NumFeatures())
			} else {
				err = exportWindowsFile(outPath, windows, loader.NumFeatures())
			}
			if err != nil {
				return err
			}
			commandLogger(cmd).Infow("Exported windows",
				"partition", cfg.Partition(), "windows", len(windows), "out", outPath)
			return nil
		},
	}
	addBatchFlags(command)
	command.Flags().StringVarP(&outPath, "out", "o", "-", "Output CSV path, - for stdout.")
	command.Flags().BoolVar(&denormalize, "denormalize", false, "Write values in original units.")
	return command
}

// exportWindowsFile writes windows to path. A failed Close is reported, it
// can mean buffered rows never reached the disk.
func exportWindowsFile(path string, windows []datasets.Window, features int) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeWindowsCSV(f, windows, features); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func denormalizeAll(s *datasets.Scaler, windows []datasets.Window) ([]datasets.Window, error) {
	out := make([]datasets.Window, len(windows))
	for i, w := range windows {
		d, err := s.Denormalize(w)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func writeWindowsCSV(w io.Writer, windows []datasets.Window, features int) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, features+2)
	header = append(header, "window", "step")
	for f := range features {
		header = append(header, fmt.Sprintf("f%d", f))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, features+2)
	for i, win := range windows {
		for step, row := range win {
			record[0] = strconv.Itoa(i)
			record[1] = strconv.Itoa(step)
			for f, v := range row {
				record[f+2] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
