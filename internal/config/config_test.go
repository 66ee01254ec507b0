package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bcrypt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
cost: 12
version: 2a
pool:
  workers: 4
  queue_size: 16
logging:
  level: debug
  format: json
metrics:
  listen: ":9100"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Cost)
	v, err := cfg.BcryptVersion()
	require.NoError(t, err)
	assert.Equal(t, bcrypt.Version2a, v)
	assert.Equal(t, 4, cfg.Pool.Workers)
	assert.Equal(t, 16, cfg.Pool.QueueSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output, "unset fields keep their defaults")
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Cost)
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("BCRYPT_TEST_COST", "11")
	path := writeConfig(t, "cost: ${BCRYPT_TEST_COST}\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Cost)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "cost: [1, 2"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "cost: 3\n"))
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"minor-only version", func(c *Config) { c.Version = "y" }, false},
		{"max cost", func(c *Config) { c.Cost = bcrypt.MaxCost }, false},
		{"cost too low", func(c *Config) { c.Cost = 3 }, true},
		{"cost too high", func(c *Config) { c.Cost = 32 }, true},
		{"bad version", func(c *Config) { c.Version = "2c" }, true},
		{"negative workers", func(c *Config) { c.Pool.Workers = -1 }, true},
		{"negative queue", func(c *Config) { c.Pool.QueueSize = -1 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Cost = 2
	cfg.Version = "9z"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)
	assert.ErrorIs(t, err, bcrypt.ErrInvalidVersion)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bcrypt.yaml")
	cfg := Default()
	cfg.Cost = 13
	cfg.Pool.Workers = 2

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
