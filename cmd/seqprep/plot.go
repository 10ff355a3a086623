package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Noofbiz/seqprep/config"
	"github.com/Noofbiz/seqprep/datasets"
)

func NewPlotCommand() *cobra.Command {
	var normalized bool

	command := &cobra.Command{
		Use:   "plot",
		Short: "Plot the first windows of a partition to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			part := cfg.Partition()
			windows, err := loader.GetSeqBatch(cfg.Plot.Windows, part)
			if err != nil {
				return err
			}
			if !normalized {
				if windows, err = denormalizeAll(loader.Scaler(), windows); err != nil {
					return err
				}
			}

			features := []int{cfg.Plot.Feature}
			if cfg.Plot.Feature < 0 {
				features = make([]int, loader.NumFeatures())
				for f := range features {
					features[f] = f
				}
			} else if cfg.Plot.Feature >= loader.NumFeatures() {
				return fmt.Errorf("feature %d out of range [0, %d)", cfg.Plot.Feature, loader.NumFeatures())
			}

			title := fmt.Sprintf("%s: %d %s windows", cfg.DataName, len(windows), part)
			outPath := filepath.Join(cfg.Plot.OutDir, fmt.Sprintf("%s_%s.png", cfg.DataName, part))
			if err := plotWindows(outPath, title, windows, features); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}
	command.Flags().String(config.FlagName("batch.partition"), datasets.Train.String(), "Partition: all, train, validation or test.")
	command.Flags().String(config.FlagName("plot.out_dir"), "output", "Directory for the generated PNG.")
	command.Flags().Int(config.FlagName("plot.windows"), 4, "Number of windows to plot.")
	command.Flags().Int(config.FlagName("plot.feature"), -1, "Feature to plot; -1 plots all of them.")
	command.Flags().BoolVar(&normalized, "normalized", false, "Plot normalized values instead of original units.")
	return command
}

// plotWindows writes a PNG with one line per (window, feature) pair, time
// step on the x axis.
func plotWindows(outPath, title string, windows []datasets.Window, features []int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "value"

	var all plotter.XYs
	n := 0
	for i, w := range windows {
		for _, f := range features {
			xys := make(plotter.XYs, len(w))
			for step, row := range w {
				xys[step] = plotter.XY{X: float64(step), Y: row[f]}
			}
			all = append(all, xys...)

			line, err := plotter.NewLine(xys)
			if err != nil {
				return err
			}
			line.Color = plotutil.Color(n)
			line.Dashes = plotutil.Dashes(i)
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("w%d f%d", i, f), line)
			n++
		}
	}

	p.Add(plotter.NewGrid())
	xmin, xmax, ymin, ymax := autoRange(all)
	p.X.Min = xmin
	p.X.Max = xmax
	p.Y.Min = ymin
	p.Y.Max = ymax

	if err := ensureDir(filepath.Dir(outPath)); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, outPath)
}

// autoRange computes padded min/max for X and Y for a set of points.
func autoRange(xs plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	if len(xs) == 0 {
		return -1, 1, -1, 1
	}
	xmin = math.Inf(1)
	xmax = math.Inf(-1)
	ymin = math.Inf(1)
	ymax = math.Inf(-1)
	for _, p := range xs {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	padx := (xmax - xmin) * 0.06
	pady := (ymax - ymin) * 0.06
	if padx == 0 {
		padx = 1.0
	}
	if pady == 0 {
		pady = 1.0
	}
	return xmin - padx, xmax + padx, ymin - pady, ymax + pady
}

func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
