// Package datasets prepares time-series data for sequence models.
//
// A DataLoader reads a CSV file (header row skipped, one row per time step,
// newest first) or generates the synthetic sine dataset, normalizes it per
// feature, cuts it into overlapping windows of SeqLen steps, shuffles them
// and splits them into validation, test and train partitions.
//
// Batches come in two flavors:
//   - GetBatch: a contiguous run of windows at a random offset
//   - GetSeqBatch: the next run of windows after a per-partition cursor
//
// Windows are [][]float64 views into the loaded data. Converting a batch into
// a gomlx tensor goes through MakeWindowBatchFlat and ToGomlxTensor, or
// PartitionDataset for a train-loop friendly Yield.
package datasets

// BatchSource is what PartitionDataset and the seqprep commands need from a
// DataLoader.
type BatchSource interface {
	GetBatch(batchSize int, part Partition) ([]Window, error)
	GetSeqBatch(batchSize int, part Partition) ([]Window, error)
	HasMore(part Partition) bool
	ResetCursor(part Partition)
	Len(part Partition) int
}

var _ BatchSource = (*DataLoader)(nil)
