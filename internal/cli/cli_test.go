package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/internal/config"
	"github.com/hasbyte1/go-bcrypt/internal/logging"
	"github.com/hasbyte1/go-bcrypt/internal/version"
)

const (
	testSalt = "$2b$04$abcdefghijklmnopqrstuu"
	testHash = "$2b$04$abcdefghijklmnopqrstuuV3duMsC0HpUex6N9qapiuOHHWkwRXVm"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { _ = logging.Setup(logging.DefaultConfig()) })

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func writeConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bcrypt.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestSaltCommand(t *testing.T) {
	out, err := run(t, "", "salt", "--cost", "5", "--version", "a")
	require.NoError(t, err)
	assert.Len(t, out, bcrypt.SaltStringLen)
	assert.True(t, strings.HasPrefix(out, "$2a$05$"), out)
}

func TestSaltCommand_DefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cost = 7
	cfg.Version = "2y"

	out, err := run(t, "", "--config", writeConfig(t, cfg), "salt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$2y$07$"), out)
}

func TestSaltCommand_InvalidCost(t *testing.T) {
	_, err := run(t, "", "salt", "--cost", "40")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)
}

func TestHashCommand_WithSalt(t *testing.T) {
	out, err := run(t, "", "hash", "--salt", testSalt, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, testHash, out)
}

func TestHashCommand_Stdin(t *testing.T) {
	out, err := run(t, "hunter2\n", "hash", "--salt", testSalt, "-")
	require.NoError(t, err)
	assert.Equal(t, testHash, out)
}

func TestHashCommand_FreshSalt(t *testing.T) {
	out, err := run(t, "", "hash", "--cost", "4", "pw")
	require.NoError(t, err)
	assert.Len(t, out, bcrypt.HashLen)
	assert.True(t, strings.HasPrefix(out, "$2b$04$"), out)
	assert.True(t, bcrypt.Compare([]byte("pw"), out))
}

func TestHashCommand_MissingPassword(t *testing.T) {
	_, err := run(t, "", "hash")
	assert.ErrorIs(t, err, bcrypt.ErrEmptyInput)
}

func TestHashCommand_BadSalt(t *testing.T) {
	_, err := run(t, "", "hash", "--salt", "$2b$04$short", "pw")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidSaltLength)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "", "compare", "hunter2", testHash)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = run(t, "", "compare", "hunter3", testHash)
	require.NoError(t, err)
	assert.Equal(t, "false", out)

	out, err = run(t, "", "compare", "hunter2", "not-a-hash")
	require.NoError(t, err)
	assert.Equal(t, "false", out)

	_, err = run(t, "", "compare", "hunter2")
	assert.ErrorIs(t, err, bcrypt.ErrEmptyInput)
}

func TestRoundsCommand(t *testing.T) {
	out, err := run(t, "", "rounds", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	require.NoError(t, err)
	assert.Equal(t, "10", out)

	_, err = run(t, "", "rounds", "$2a$1")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidFormat)

	_, err = run(t, "", "rounds")
	assert.ErrorIs(t, err, bcrypt.ErrEmptyInput)
}

func TestBenchCommand(t *testing.T) {
	out, err := run(t, "", "bench", "--min", "4", "--max", "5", "--samples", "2")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, strconv.Itoa(4+i)+" rounds: "), line)
		assert.Contains(t, line, "ms (")
		assert.True(t, strings.HasSuffix(line, "hash/sec)"), line)
	}
}

func TestBenchCommand_InvalidRange(t *testing.T) {
	_, err := run(t, "", "bench", "--min", "3", "--max", "5")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)

	_, err = run(t, "", "bench", "--min", "6", "--max", "5")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)

	_, err = run(t, "", "bench", "--min", "4", "--max", "4", "--samples", "0")
	assert.Error(t, err)
}

func TestBench_CancelledContext(t *testing.T) {
	a := &app{cfg: config.Default(), logger: logging.Default()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.runBench(ctx, &bytes.Buffer{}, benchOptions{minCost: 4, maxCost: 4, samples: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bcrypt")
}

func TestVersionCommand_Short(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short(), out)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "bcrypt.yaml")

	out, err := run(t, "", "config", "init", "--output", path, "--cost", "6", "--version", "y")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Cost)
	assert.Equal(t, "2y", cfg.Version)
	assert.Equal(t, config.Default().Pool, cfg.Pool)

	// The written file drives later commands.
	out, err = run(t, "", "--config", path, "salt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$2y$06$"), out)
}

func TestConfigInitCommand_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bcrypt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cost: 12\n"), 0644))

	_, err := run(t, "", "config", "init", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "", "config", "init", "-o", path, "--force")
	require.NoError(t, err)
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigInitCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bcrypt.yaml")

	_, err := run(t, "", "config", "init", "-o", path, "--cost", "3")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)
	_, err = run(t, "", "config", "init", "-o", path, "--version", "2q")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidVersion)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigValidateCommand(t *testing.T) {
	out, err := run(t, "", "--config", writeConfig(t, config.Default()), "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "Configuration is valid", out)

	_, err = run(t, "", "config", "validate")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 2q\n"), 0644))
	_, err = run(t, "", "--config", path, "config", "validate")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidVersion)
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cost: 2\n"), 0644))
	_, err = run(t, "", "--config", path, "version")
	assert.ErrorIs(t, err, bcrypt.ErrInvalidCost)
}

func TestLogLevelFlag(t *testing.T) {
	_, err := run(t, "", "--log-level", "debug", "version")
	assert.NoError(t, err)

	_, err = run(t, "", "--log-level", "chatty", "version")
	assert.Error(t, err)
}
