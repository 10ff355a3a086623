package datasets

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// DataLoader turns a time-series CSV file (or the synthetic sine dataset)
// into shuffled, fixed-length overlapping windows split into train,
// validation and test partitions, and serves them in batches.
//
// Loading a CSV:
//   - the header row is skipped and every following row is one time step
//   - rows are reversed, the file is expected newest-first
//   - every feature is min-max normalized; the parameters are kept in Scaler
//   - window i covers steps [i, i+SeqLen), for i in [0, rows-SeqLen)
//
// A DataLoader is not safe for concurrent use: the sequential batch cursors
// are plain instance state. Use one loader per worker or lock around it.
type DataLoader struct {
	// Config the loader was created with. SeqLen is filled with the default
	// when left at zero.
	Config Config

	rng       *rand.Rand
	logger    *zap.SugaredLogger
	generator SequenceGenerator

	loaded      bool
	seqLen      int
	numFeatures int
	scaler      *Scaler

	// data is the normalized, chronological dataset. Windows are views into
	// its rows. nil for synthetic or externally supplied windows.
	data *mat.Dense

	parts   [len(partitionNames)][]Window
	cursors [len(partitionNames)]int
}

// Window is SeqLen consecutive time steps, each a vector of features.
// The window lists a DataLoader returns are copies, but the windows in them
// share storage with the loader and must not be modified.
type Window [][]float64

// DefaultSeqLen is the window length used when Config.SeqLen is zero.
const DefaultSeqLen = 24

// Config selects the source and split of a DataLoader.
type Config struct {
	// DataDir is the directory holding <DataName>.csv. When empty nothing is
	// loaded on creation; call Load for the synthetic dataset.
	DataDir string

	// DataName names the CSV file without extension, or SineDatasetName.
	DataName string

	// ValidationPercentage and TestPercentage are shares of the window count
	// in [0, 100].
	ValidationPercentage float64
	TestPercentage       float64

	SeqLen int

	// GateOnTest leaves the validation partition empty whenever
	// TestPercentage is zero.
	GateOnTest bool
}

func (c Config) synthetic() bool {
	return c.DataName == SineDatasetName
}

func (c Config) validate() error {
	if c.SeqLen < 1 {
		return fmt.Errorf("%w: sequence length must be >= 1, got %d", ErrInvalidConfig, c.SeqLen)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"validation", c.ValidationPercentage},
		{"test", c.TestPercentage},
	} {
		if math.IsNaN(p.v) || p.v < 0 || p.v > 100 {
			return fmt.Errorf("%w: %s percentage %v outside [0, 100]", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.ValidationPercentage+c.TestPercentage > 100 {
		return fmt.Errorf("%w: validation and test percentages sum to %v",
			ErrInvalidConfig, c.ValidationPercentage+c.TestPercentage)
	}
	if c.DataDir != "" && c.DataName == "" {
		return fmt.Errorf("%w: data name is required with a data directory", ErrInvalidConfig)
	}
	return nil
}

// Option customizes a DataLoader.
type Option func(*DataLoader)

// WithSeed seeds the loader's random source, making shuffling and random
// batches reproducible.
func WithSeed(seed int64) Option {
	return func(l *DataLoader) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand makes the loader draw from r. r must not be nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("datasets: WithRand(nil)")
	}
	return func(l *DataLoader) {
		l.rng = r
	}
}

// WithLogger sets the logger used to report loading and splitting.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(l *DataLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithGenerator replaces SineData as the synthetic dataset generator.
func WithGenerator(g SequenceGenerator) Option {
	return func(l *DataLoader) {
		if g != nil {
			l.generator = g
		}
	}
}

// NewDataLoader creates a DataLoader. When cfg.DataDir is set the dataset is
// loaded and split immediately; otherwise the loader stays empty until Load
// (synthetic dataset) or LoadWindows is called.
func NewDataLoader(cfg Config, opts ...Option) (*DataLoader, error) {
	if cfg.SeqLen == 0 {
		cfg.SeqLen = DefaultSeqLen
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := &DataLoader{
		Config:    cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    zap.NewNop().Sugar(),
		generator: SineData,
	}
	for _, opt := range opts {
		opt(l)
	}

	if cfg.DataDir == "" {
		return l, nil
	}
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads the configured source, cuts it into windows, shuffles them and
// splits them into partitions.
func (l *DataLoader) Load() error {
	if l.loaded {
		return ErrAlreadyLoaded
	}

	if l.Config.synthetic() {
		windows := l.generator(l.rng, SineSamples, SineSeqLen, SineFeatures)
		l.logger.Infow("Loaded self-generated dataset", "name", SineDatasetName, "windows", len(windows))
		return l.populate(windows, IdentityScaler(SineFeatures), nil)
	}
	if l.Config.DataDir == "" {
		return ErrNoSource
	}

	path := sourcePath(l.Config.DataDir, l.Config.DataName)
	l.logger.Infow("Data loader", "dataDir", l.Config.DataDir, "source", path)
	data, err := readCSVMatrix(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset %s: %w", l.Config.DataName, err)
	}
	rows, cols := data.Dims()
	l.logger.Infow("Loaded dataset", "source", path, "rows", rows, "features", cols)

	reverseRows(data)
	scaler := MinMaxScale(data)

	windows, err := cutWindows(data, l.Config.SeqLen)
	if err != nil {
		return fmt.Errorf("failed to window dataset %s: %w", l.Config.DataName, err)
	}
	return l.populate(windows, scaler, data)
}

// LoadWindows fills an empty loader with already prepared windows, then
// shuffles and splits them like Load. A nil scaler means the windows are in
// original units (Min 0, Range 1).
func (l *DataLoader) LoadWindows(windows []Window, scaler *Scaler) error {
	if l.loaded {
		return ErrAlreadyLoaded
	}
	if len(windows) == 0 {
		return fmt.Errorf("%w: no windows", ErrInsufficientSamples)
	}
	seqLen, features := len(windows[0]), 0
	if seqLen > 0 {
		features = len(windows[0][0])
	}
	if seqLen == 0 || features == 0 {
		return fmt.Errorf("%w: empty first window", ErrMalformedInput)
	}
	for i, w := range windows {
		if len(w) != seqLen {
			return fmt.Errorf("%w: window %d has %d steps, expected %d", ErrMalformedInput, i, len(w), seqLen)
		}
		for t, step := range w {
			if len(step) != features {
				return fmt.Errorf("%w: window %d step %d has %d features, expected %d",
					ErrMalformedInput, i, t, len(step), features)
			}
		}
	}
	if scaler == nil {
		scaler = IdentityScaler(features)
	} else if scaler.Features() != features || len(scaler.Range) != features {
		return fmt.Errorf("%w: scaler covers %d features, windows have %d", ErrMalformedInput, scaler.Features(), features)
	} else {
		scaler = scaler.clone()
	}
	return l.populate(windows, scaler, nil)
}

// cutWindows returns every window of seqLen consecutive rows of m, starting
// at offsets [0, rows-seqLen). The windows share m's storage.
func cutWindows(m *mat.Dense, seqLen int) ([]Window, error) {
	rows, _ := m.Dims()
	n := rows - seqLen
	if n < 1 {
		return nil, fmt.Errorf("%w: %d rows cannot fill a window of %d steps", ErrInsufficientSamples, rows, seqLen)
	}
	steps := make([][]float64, rows)
	for i := range rows {
		steps[i] = m.RawRowView(i)
	}
	out := make([]Window, n)
	for i := range n {
		out[i] = Window(steps[i : i+seqLen : i+seqLen])
	}
	return out, nil
}

func (l *DataLoader) populate(windows []Window, scaler *Scaler, data *mat.Dense) error {
	if len(windows) == 0 {
		return fmt.Errorf("%w: no windows", ErrInsufficientSamples)
	}
	l.seqLen = len(windows[0])
	l.numFeatures = scaler.Features()
	l.scaler = scaler
	l.data = data
	l.split(l.shuffle(windows))
	l.loaded = true
	return nil
}

// shuffle returns windows reordered by a uniform random permutation.
func (l *DataLoader) shuffle(windows []Window) []Window {
	idx := l.rng.Perm(len(windows))
	all := make([]Window, len(windows))
	for i, j := range idx {
		all[i] = windows[j]
	}
	return all
}

// split carves validation, then test, off the front of all; train keeps the
// rest. Sizes are percentages of the window count, rounded down.
func (l *DataLoader) split(all []Window) {
	total := len(all)
	valLen := splitLen(l.Config.ValidationPercentage, total)
	testLen := splitLen(l.Config.TestPercentage, total)
	if l.Config.GateOnTest && l.Config.TestPercentage == 0 {
		valLen = 0
	}

	l.parts[All] = all
	l.parts[Validation] = all[:valLen:valLen]
	l.parts[Test] = all[valLen : valLen+testLen : valLen+testLen]
	l.parts[Train] = all[valLen+testLen:]
	l.cursors = [len(partitionNames)]int{}

	l.logger.Infow("Split windows",
		"all", total,
		"validation", valLen,
		"test", testLen,
		"train", len(l.parts[Train]))
}

// splitLen returns floor(pct% of total). The tolerance absorbs products such
// as 0.57*10000 landing just below a whole number.
func splitLen(pct float64, total int) int {
	n := int(math.Floor(pct*float64(total)/100 + 1e-9))
	return min(n, total)
}

func (l *DataLoader) partition(part Partition) ([]Window, error) {
	if !part.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPartition, part)
	}
	return l.parts[part], nil
}

// GetBatch returns batchSize consecutive windows of part starting at a
// uniformly random offset.
func (l *DataLoader) GetBatch(batchSize int, part Partition) ([]Window, error) {
	windows, err := l.partition(part)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("get batch from %s: %w", part, ErrEmptyPartition)
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("get batch from %s: %w: %d", part, ErrInvalidBatchSize, batchSize)
	}
	if batchSize > len(windows) {
		return nil, fmt.Errorf("get batch from %s: %w: batch of %d from %d windows",
			part, ErrInsufficientSamples, batchSize, len(windows))
	}
	offset := l.rng.Intn(len(windows) - batchSize + 1)
	l.logger.Debugw("Random batch", "partition", part, "offset", offset, "size", batchSize)
	return slices.Clone(windows[offset : offset+batchSize]), nil
}

// GetSeqBatch returns the next batchSize windows of part and advances its
// cursor. The last batch may be short. Once every window has been served it
// returns ErrPartitionExhausted until ResetCursor is called.
func (l *DataLoader) GetSeqBatch(batchSize int, part Partition) ([]Window, error) {
	windows, err := l.partition(part)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("get sequential batch from %s: %w", part, ErrEmptyPartition)
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("get sequential batch from %s: %w: %d", part, ErrInvalidBatchSize, batchSize)
	}
	start := l.cursors[part]
	if start >= len(windows) {
		return nil, fmt.Errorf("get sequential batch from %s: %w", part, ErrPartitionExhausted)
	}
	end := min(start+batchSize, len(windows))
	l.cursors[part] = start + batchSize
	return slices.Clone(windows[start:end]), nil
}

// HasMore reports whether GetSeqBatch would return windows for part.
func (l *DataLoader) HasMore(part Partition) bool {
	if !part.valid() {
		return false
	}
	return l.cursors[part] < len(l.parts[part])
}

// ResetCursor rewinds the sequential cursor of part to the first window.
func (l *DataLoader) ResetCursor(part Partition) {
	if part.valid() {
		l.cursors[part] = 0
	}
}

// Cursor returns the sequential read offset of part. It may exceed the
// partition length after the final short batch.
func (l *DataLoader) Cursor(part Partition) int {
	if !part.valid() {
		return 0
	}
	return l.cursors[part]
}

// Loaded reports whether the loader holds windows.
func (l *DataLoader) Loaded() bool {
	return l.loaded
}

// NumFeatures returns the number of features per time step.
func (l *DataLoader) NumFeatures() int {
	return l.numFeatures
}

// SeqLen returns the number of time steps per window.
func (l *DataLoader) SeqLen() int {
	return l.seqLen
}

// Min returns the per-feature minimum used for normalization.
func (l *DataLoader) Min() []float64 {
	if l.scaler == nil {
		return nil
	}
	return append([]float64(nil), l.scaler.Min...)
}

// Range returns the per-feature max-min+ScaleEpsilon used for normalization.
func (l *DataLoader) Range() []float64 {
	if l.scaler == nil {
		return nil
	}
	return append([]float64(nil), l.scaler.Range...)
}

// Scaler returns the normalization parameters, or nil before loading.
func (l *DataLoader) Scaler() *Scaler {
	if l.scaler == nil {
		return nil
	}
	return l.scaler.clone()
}

// All returns every window in shuffled order. The slice is a copy; the
// windows themselves are shared.
func (l *DataLoader) All() []Window {
	return slices.Clone(l.parts[All])
}

// Windows returns a copy of the window list of part, or nil for an unknown
// partition.
func (l *DataLoader) Windows(part Partition) []Window {
	windows, _ := l.partition(part)
	return slices.Clone(windows)
}

// Len returns the number of windows in part.
func (l *DataLoader) Len(part Partition) int {
	windows, _ := l.partition(part)
	return len(windows)
}

// Data returns the normalized chronological dataset the windows were cut
// from, or nil when the windows did not come from a CSV file.
func (l *DataLoader) Data() mat.Matrix {
	if l.data == nil {
		return nil
	}
	return l.data
}
