// Package config resolves seqprep settings from defaults, an optional config
// file, SEQPREP_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Noofbiz/seqprep/datasets"
)

// EnvPrefix is prepended to every environment override, with "." in keys
// replaced by "_": SEQPREP_BATCH_SIZE sets batch.size.
const EnvPrefix = "SEQPREP"

// Config is the full seqprep configuration.
type Config struct {
	DataDir              string  `mapstructure:"data_dir"`
	DataName             string  `mapstructure:"data_name"`
	ValidationPercentage float64 `mapstructure:"validation_percentage"`
	TestPercentage       float64 `mapstructure:"test_percentage"`
	SeqLen               int     `mapstructure:"seq_len"`
	GateOnTest           bool    `mapstructure:"gate_on_test"`

	// Seed for shuffling and random batches. Zero means time-based.
	Seed int64 `mapstructure:"seed"`

	Batch BatchConfig `mapstructure:"batch"`
	Plot  PlotConfig  `mapstructure:"plot"`
}

// BatchConfig controls which batches the commands draw.
type BatchConfig struct {
	Size       int    `mapstructure:"size"`
	Partition  string `mapstructure:"partition"`
	Sequential bool   `mapstructure:"sequential"`
}

// PlotConfig controls the plot command output.
type PlotConfig struct {
	OutDir  string `mapstructure:"out_dir"`
	Windows int    `mapstructure:"windows"`
	Feature int    `mapstructure:"feature"`
}

var defaults = map[string]any{
	"data_dir":              "",
	"data_name":             datasets.SineDatasetName,
	"validation_percentage": 10.0,
	"test_percentage":       10.0,
	"seq_len":               datasets.DefaultSeqLen,
	"gate_on_test":          false,
	"seed":                  int64(0),
	"batch.size":            32,
	"batch.partition":       datasets.Train.String(),
	"batch.sequential":      false,
	"plot.out_dir":          "output",
	"plot.windows":          4,
	"plot.feature":          -1,
}

// FlagName returns the command line flag bound to a config key:
// "batch.size" is --batch-size.
func FlagName(key string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(key)
}

// Load reads the configuration. path may be empty to skip the config file;
// flags may be nil. Only flags named after a config key (see FlagName) and
// explicitly set on the command line override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key := range defaults {
			if f := flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the datasets package does not.
func (c *Config) Validate() error {
	if c.Batch.Size < 1 {
		return fmt.Errorf("batch.size must be >= 1, got %d", c.Batch.Size)
	}
	if _, err := datasets.ParsePartition(c.Batch.Partition); err != nil {
		return fmt.Errorf("batch.partition: %w", err)
	}
	if c.Plot.Windows < 1 {
		return fmt.Errorf("plot.windows must be >= 1, got %d", c.Plot.Windows)
	}
	return nil
}

// Partition returns the configured batch partition.
func (c *Config) Partition() datasets.Partition {
	p, _ := datasets.ParsePartition(c.Batch.Partition)
	return p
}

// LoaderConfig converts c into a datasets.Config.
func (c *Config) LoaderConfig() datasets.Config {
	return datasets.Config{
		DataDir:              c.DataDir,
		DataName:             c.DataName,
		ValidationPercentage: c.ValidationPercentage,
		TestPercentage:       c.TestPercentage,
		SeqLen:               c.SeqLen,
		GateOnTest:           c.GateOnTest,
	}
}

// LoaderOptions returns the datasets options implied by c.
func (c *Config) LoaderOptions(logger *zap.SugaredLogger) []datasets.Option {
	opts := []datasets.Option{datasets.WithLogger(logger)}
	if c.Seed != 0 {
		opts = append(opts, datasets.WithSeed(c.Seed))
	}
	return opts
}

// NewDataLoader builds the DataLoader described by c.
func (c *Config) NewDataLoader(logger *zap.SugaredLogger) (*datasets.DataLoader, error) {
	l, err := datasets.NewDataLoader(c.LoaderConfig(), c.LoaderOptions(logger)...)
	if err != nil {
		return nil, err
	}
	if c.DataDir == "" && c.DataName == datasets.SineDatasetName {
		if err := l.Load(); err != nil {
			return nil, err
		}
	}
	return l, nil
}
