package main

// Example command that loads the synthetic sine dataset (or a CSV when a
// directory and name are given), draws a random and a sequential batch and
// converts them into gomlx tensors.
//
// Usage:
//   go run ./datasets/example
//   go run ./datasets/example ./data stock

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Noofbiz/seqprep/datasets"
	"github.com/Noofbiz/seqprep/logging"
)

func main() {
	cfg := datasets.Config{
		DataName:             datasets.SineDatasetName,
		ValidationPercentage: 10,
		TestPercentage:       10,
	}
	if len(os.Args) == 3 {
		cfg.DataDir, cfg.DataName = os.Args[1], os.Args[2]
	}

	loader, err := datasets.NewDataLoader(cfg, datasets.WithSeed(42), datasets.WithLogger(logging.NewLogger()))
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	if !loader.Loaded() {
		if err := loader.Load(); err != nil {
			log.Fatalf("failed to generate dataset: %v", err)
		}
	}
	fmt.Printf("Features: %d, window length: %d\n", loader.NumFeatures(), loader.SeqLen())
	for _, p := range datasets.Partitions() {
		fmt.Printf("  %-10s %d windows\n", p, loader.Len(p))
	}

	batch, err := loader.GetBatch(8, datasets.Train)
	if err != nil {
		log.Fatalf("failed to draw random batch: %v", err)
	}
	flat, err := datasets.MakeWindowBatchFlat(batch)
	if err != nil {
		log.Fatalf("failed to flatten batch: %v", err)
	}
	t, err := flat.ToGomlxTensor()
	if err != nil {
		log.Fatalf("failed to convert batch to gomlx tensor: %v", err)
	}
	fmt.Printf("Random batch tensor: %s\n", t.Shape())

	// One epoch over the validation partition.
	ds, err := datasets.NewPartitionDataset(cfg.DataName, loader, datasets.Validation, 128)
	if err != nil {
		log.Fatalf("failed to create partition dataset: %v", err)
	}
	batches := 0
	for {
		_, inputs, _, err := ds.Yield()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatalf("failed to yield from %s: %v", ds.Name(), err)
		}
		if batches == 0 {
			fmt.Printf("First %s tensor: %s\n", ds.Name(), inputs[0].Shape())
		}
		batches++
	}
	fmt.Printf("Epoch over %s: %d batches\n", ds.Name(), batches)
}
