package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fastrank/pagerank"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Method", cfg.Method, MethodExact},
		{"Damping", cfg.Damping, 0.85},
		{"MaxIter", cfg.MaxIter, 100},
		{"Tolerance", cfg.Tolerance, 1e-6},
		{"Factorization", cfg.Factorization, "sparse"},
		{"PivotTolerance", cfg.PivotTolerance, 0.1},
		{"Reverse", cfg.Reverse, false},
		{"Personalize", cfg.Personalize, ""},
		{"Top", cfg.Top, 0},
		{"Debug", cfg.Debug, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"method", "FASTRANK_METHOD", "power", func(c Config) any { return c.Method }, "power"},
		{"damping", "FASTRANK_DAMPING", "0.9", func(c Config) any { return c.Damping }, 0.9},
		{"max_iter", "FASTRANK_MAX_ITER", "250", func(c Config) any { return c.MaxIter }, 250},
		{"tolerance", "FASTRANK_TOLERANCE", "1e-9", func(c Config) any { return c.Tolerance }, 1e-9},
		{"factorization", "FASTRANK_FACTORIZATION", "dense", func(c Config) any { return c.Factorization }, "dense"},
		{"reverse", "FASTRANK_REVERSE", "true", func(c Config) any { return c.Reverse }, true},
		{"top", "FASTRANK_TOP", "5", func(c Config) any { return c.Top }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(tt.envKey, tt.envVal)
			require.NoError(t, Init(""))

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), "fastrank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: power\ndamping: 0.7\ntop: 3\n"), 0o600))
	require.NoError(t, Init(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MethodPower, cfg.Method)
	assert.Equal(t, 0.7, cfg.Damping)
	assert.Equal(t, 3, cfg.Top)
	assert.Equal(t, 100, cfg.MaxIter, "unset keys keep their defaults")
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper()

	err := Init(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"method", "method", "jacobi"},
		{"top", "top", -1},
		{"factorization", "factorization", "qr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			_, err := Load()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_RankOptions(t *testing.T) {
	resetViper()
	viper.Set("damping", 0.6)
	viper.Set("factorization", "dense")
	viper.Set("reverse", true)

	cfg, err := Load()
	require.NoError(t, err)
	o, err := cfg.RankOptions()
	require.NoError(t, err)

	assert.Equal(t, 0.6, o.Damping)
	assert.Equal(t, pagerank.DenseLU, o.Factorization)
	assert.True(t, o.Reverse)
	assert.Equal(t, pagerank.DefaultMaxIter, o.MaxIter)
	assert.Nil(t, o.Personalization)
	assert.NotNil(t, o.Logger)
}
