// SPDX-License-Identifier: MIT

// Package config loads the ranking configuration of the fastrank CLI.
// Values come from .fastrank.yaml, FASTRANK_* env vars and CLI flags,
// resolved through viper in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/katalvlaran/fastrank/pagerank"
)

// EnvPrefix is the prefix of every environment override (FASTRANK_DAMPING, ...).
const EnvPrefix = "FASTRANK"

// Ranking methods.
const (
	MethodExact = "exact"
	MethodPower = "power"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds all runtime configuration for a ranking run.
type Config struct {
	Method         string  `mapstructure:"method"`
	Damping        float64 `mapstructure:"damping"`
	MaxIter        int     `mapstructure:"max_iter"`
	Tolerance      float64 `mapstructure:"tolerance"`
	Factorization  string  `mapstructure:"factorization"`
	PivotTolerance float64 `mapstructure:"pivot_tolerance"`
	Reverse        bool    `mapstructure:"reverse"`
	Personalize    string  `mapstructure:"personalize"` // path of a "label value" file
	Top            int     `mapstructure:"top"`         // 0 = all nodes
	Debug          bool    `mapstructure:"debug"`
}

// Init points viper at cfgFile, or at .fastrank.yaml in the working or
// home directory when cfgFile is empty, and enables FASTRANK_* env
// overrides. A missing default file is not an error; a missing or
// unreadable explicit file is.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".fastrank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", viper.ConfigFileUsed(), err)
	}

	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("method", MethodExact)
	viper.SetDefault("damping", pagerank.DefaultDamping)
	viper.SetDefault("max_iter", pagerank.DefaultMaxIter)
	viper.SetDefault("tolerance", pagerank.DefaultTolerance)
	viper.SetDefault("factorization", pagerank.SparseLU.String())
	viper.SetDefault("pivot_tolerance", pagerank.DefaultPivotTolerance)
	viper.SetDefault("reverse", false)
	viper.SetDefault("personalize", "")
	viper.SetDefault("top", 0)
	viper.SetDefault("debug", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the fields only the CLI knows about; numeric solver
// options are validated by the solvers themselves.
func (c Config) Validate() error {
	switch {
	case c.Method != MethodExact && c.Method != MethodPower:
		return fmt.Errorf("method %q, want %q or %q: %w", c.Method, MethodExact, MethodPower, ErrInvalidConfig)
	case c.Top < 0:
		return fmt.Errorf("top %d must be non-negative: %w", c.Top, ErrInvalidConfig)
	}
	if _, err := pagerank.ParseFactorization(c.Factorization); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// RankOptions converts c into solver options. Personalization is left
// nil: it needs the graph's label index and is filled in by the caller.
func (c Config) RankOptions() (pagerank.Options, error) {
	f, err := pagerank.ParseFactorization(c.Factorization)
	if err != nil {
		return pagerank.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	o := pagerank.DefaultOptions()
	o.Damping = c.Damping
	o.MaxIter = c.MaxIter
	o.Tolerance = c.Tolerance
	o.Factorization = f
	o.PivotTolerance = c.PivotTolerance
	o.Reverse = c.Reverse

	return o, nil
}
