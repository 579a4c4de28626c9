package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Logger)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.StrictArguments)
	assert.Equal(t, "linear", cfg.DefaultEase)
	assert.Equal(t, 40, cfg.FrameRate)
	assert.Zero(t, cfg.Seed)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sequencer.yaml")
	contents := "log_level: info\nstrict_arguments: false\nseed: 1234\ndefault_ease: easeInOutCubic\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.StrictArguments)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, "easeInOutCubic", cfg.DefaultEase)
	// untouched keys keep their defaults
	assert.Equal(t, 40, cfg.FrameRate)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	testCases := []string{
		"default_ease: wobbly\n",
		"frame_rate: 0\n",
		"log_level: loud\n",
	}

	for _, contents := range testCases {
		path := filepath.Join(t.TempDir(), "sequencer.yaml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		_, err := LoadConfig(path)
		require.Error(t, err, contents)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
