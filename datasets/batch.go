package datasets

import (
	"errors"
	"fmt"
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// WindowBatchFlat stores a batch of windows in one contiguous float32 buffer
// laid out as [Batch][Time][Features].
type WindowBatchFlat struct {
	Buf      []float32
	Batch    int
	Time     int
	Features int
}

// MakeWindowBatchFlat packs windows into a flat buffer. All windows must
// share the same shape.
func MakeWindowBatchFlat(windows []Window) (*WindowBatchFlat, error) {
	if len(windows) == 0 {
		return &WindowBatchFlat{}, nil
	}

	timeSteps := len(windows[0])
	features := 0
	if timeSteps > 0 {
		features = len(windows[0][0])
	}

	batchSize := len(windows)
	flat := make([]float32, batchSize*timeSteps*features)
	idx := 0
	for i, w := range windows {
		if len(w) != timeSteps {
			return nil, fmt.Errorf("inconsistent shapes: window 0 has %d steps, window %d has %d",
				timeSteps, i, len(w))
		}
		for t, step := range w {
			if len(step) != features {
				return nil, fmt.Errorf("inconsistent shapes: window %d step %d has %d features, expected %d",
					i, t, len(step), features)
			}
			for _, v := range step {
				flat[idx] = float32(v)
				idx++
			}
		}
	}

	return &WindowBatchFlat{
		Buf:      flat,
		Batch:    batchSize,
		Time:     timeSteps,
		Features: features,
	}, nil
}

// At returns the value of feature f at step t of window b.
func (b *WindowBatchFlat) At(batch, t, f int) float32 {
	return b.Buf[(batch*b.Time+t)*b.Features+f]
}

// ToGomlxTensor converts the batch to a [Batch, Time, Features] gomlx tensor.
func (b *WindowBatchFlat) ToGomlxTensor() (*tensors.Tensor, error) {
	if b.Batch == 0 || b.Time == 0 || b.Features == 0 {
		empty := make([][][]float32, 0)
		return tensors.FromAnyValue(empty), nil
	}
	data := make([][][]float32, b.Batch)
	idx := 0
	for i := 0; i < b.Batch; i++ {
		data[i] = make([][]float32, b.Time)
		for j := 0; j < b.Time; j++ {
			data[i][j] = b.Buf[idx : idx+b.Features]
			idx += b.Features
		}
	}
	return tensors.FromAnyValue(data), nil
}

// PartitionDataset walks one partition of a BatchSource in order, yielding
// gomlx tensors of BatchSize windows. It follows gomlx's train.Dataset
// conventions: Yield returns io.EOF at the end of an epoch and Reset starts a
// new one.
type PartitionDataset struct {
	Source    BatchSource
	Part      Partition
	BatchSize int

	name string
}

// NewPartitionDataset creates a PartitionDataset named name and rewinds the
// partition's sequential cursor.
func NewPartitionDataset(name string, src BatchSource, part Partition, batchSize int) (*PartitionDataset, error) {
	if src == nil {
		return nil, fmt.Errorf("batch source is nil")
	}
	if l, ok := src.(*DataLoader); ok && l == nil {
		return nil, fmt.Errorf("batch source is a nil *DataLoader")
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}
	if src.Len(part) == 0 {
		return nil, fmt.Errorf("dataset over %s: %w", part, ErrEmptyPartition)
	}
	src.ResetCursor(part)
	return &PartitionDataset{Source: src, Part: part, BatchSize: batchSize, name: name}, nil
}

// Name returns the name of the dataset
func (d *PartitionDataset) Name() string {
	return fmt.Sprintf("%s/%s", d.name, d.Part)
}

// Yield returns the next batch as a single input tensor. There are no labels;
// the windows are both the model input and its target.
func (d *PartitionDataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	windows, err := d.Source.GetSeqBatch(d.BatchSize, d.Part)
	if errors.Is(err, ErrPartitionExhausted) {
		return nil, nil, nil, io.EOF
	}
	if err != nil {
		return nil, nil, nil, err
	}
	flat, err := MakeWindowBatchFlat(windows)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := flat.ToGomlxTensor()
	if err != nil {
		return nil, nil, nil, err
	}
	return d.Part, []*tensors.Tensor{t}, nil, nil
}

// Reset rewinds the partition for a new epoch.
func (d *PartitionDataset) Reset() {
	d.Source.ResetCursor(d.Part)
}
