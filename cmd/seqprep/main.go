// Command seqprep loads a time-series dataset, cuts it into shuffled windows
// and inspects, plots or exports the resulting partitions.
//
// Usage:
//
//	seqprep summary --data-name sine --seed 1
//	seqprep batch --data-dir ./data --data-name stock --batch-size 8
//	seqprep plot --data-name sine --plot-windows 3
//	seqprep export --data-dir ./data --data-name stock --out test.csv --batch-partition test
package main

import (
	"context"
	"os"

	"github.com/Noofbiz/seqprep/logging"
)

func main() {
	logger := logging.NewLogger()
	defer func() { _ = logger.Sync() }()

	ctx := logging.WithLogger(context.Background(), logger)
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.Errorw("Command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
