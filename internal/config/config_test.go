package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bloomsim/internal/hashing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10, cfg.Engine.TableSize)
	require.Equal(t, 10, cfg.Engine.SlotCapacity)
	require.Equal(t, 10, cfg.Engine.ReferenceCapacity)
	require.Equal(t, []string{hashing.NameLength}, cfg.Engine.HashFunctions)
	require.Equal(t, 300*time.Millisecond, cfg.Presentation.HighlightDelay())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
engine:
  table_size: 16
  hash_functions: [length, char-sum]
presentation:
  highlight_delay_ms: 0
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Engine.TableSize)
	require.Equal(t, 10, cfg.Engine.SlotCapacity)
	require.Equal(t, []string{hashing.NameLength, hashing.NameCharSum}, cfg.Engine.HashFunctions)
	require.Zero(t, cfg.Presentation.HighlightDelay())
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "engine:\n  table_size: 16\n")
	t.Setenv("BLOOMSIM_TABLE_SIZE", "32")
	t.Setenv("BLOOMSIM_HASH_FUNCTIONS", "char-avg, length,")
	t.Setenv("BLOOMSIM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Engine.TableSize)
	require.Equal(t, []string{hashing.NameCharAvg, hashing.NameLength}, cfg.Engine.HashFunctions)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "engine:\n  tablesize: 3\n"))
		require.Error(t, err)
	})

	t.Run("bad env table size", func(t *testing.T) {
		t.Setenv("BLOOMSIM_TABLE_SIZE", "ten")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("unknown hash function", func(t *testing.T) {
		_, err := Load(writeConfig(t, "engine:\n  hash_functions: [length, sha1]\n"))
		require.ErrorIs(t, err, ErrInvalid)
		require.ErrorIs(t, err, hashing.ErrUnknownFunction)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero table size", func(c *Config) { c.Engine.TableSize = 0 }},
		{"negative slot capacity", func(c *Config) { c.Engine.SlotCapacity = -1 }},
		{"zero reference capacity", func(c *Config) { c.Engine.ReferenceCapacity = 0 }},
		{"no hash functions", func(c *Config) { c.Engine.HashFunctions = nil }},
		{"negative delay", func(c *Config) { c.Presentation.HighlightDelayMS = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
