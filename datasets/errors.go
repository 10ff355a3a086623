package datasets

import "errors"

// Errors returned by the DataLoader. Callers should branch on them with
// errors.Is; returned errors carry operation context wrapped around these.
var (
	// ErrSourceNotFound is returned when the configured CSV file cannot be
	// opened.
	ErrSourceNotFound = errors.New("datasets: source not found")

	// ErrMalformedInput is returned when the file is not a header row followed
	// by uniform rows of numeric values.
	ErrMalformedInput = errors.New("datasets: malformed input")

	// ErrEmptyPartition is returned by the batch accessors when the requested
	// partition holds no windows.
	ErrEmptyPartition = errors.New("datasets: empty partition")

	// ErrInsufficientSamples is returned when there are too few rows to cut a
	// single window, or when a random batch is larger than its partition.
	ErrInsufficientSamples = errors.New("datasets: insufficient samples")

	// ErrPartitionExhausted signals that the sequential cursor has consumed
	// every window of a partition. ResetCursor starts it over.
	ErrPartitionExhausted = errors.New("datasets: partition exhausted")

	ErrInvalidBatchSize = errors.New("datasets: batch size must be positive")
	ErrUnknownPartition = errors.New("datasets: unknown partition")
	ErrInvalidConfig    = errors.New("datasets: invalid config")

	// ErrNoSource is returned by Load when neither a data directory nor the
	// synthetic dataset is configured, and by callers that need a loaded
	// DataLoader but got an empty one.
	ErrNoSource = errors.New("datasets: no source configured")

	// ErrAlreadyLoaded is returned when a loader that already holds windows
	// is asked to load again. Normalization parameters are computed once.
	ErrAlreadyLoaded = errors.New("datasets: already loaded")
)
