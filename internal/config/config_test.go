package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "state_gen.go", cfg.Output)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	t.Setenv("STATE_TEST_OUTPUT", "companions_gen.go")

	cfg := NewDefaultConfig()
	require.NoError(t, Load(filepath.Join("testdata", "config.yaml"), cfg))

	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.Equal(t, "companions_gen.go", cfg.Output)
	assert.Equal(t, "state-generator", cfg.Runtime, "unset keys keep their defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)

	gc := cfg.ToGenerator()
	assert.Equal(t, "companions_gen.go", gc.Filename)
	assert.Equal(t, "Live", gc.SharedPrefix)
	assert.Equal(t, "Local", gc.ScopedPrefix)
	assert.True(t, gc.DebugUnformatted)
}

func TestLoad_Invalid(t *testing.T) {
	err := Load(filepath.Join("testdata", "invalid.yaml"), NewDefaultConfig())
	require.Error(t, err)

	assert.Contains(t, err.Error(), "config validation failed")
	assert.Contains(t, err.Error(), "LogLevel")
	assert.Contains(t, err.Error(), "Output")
	assert.Contains(t, err.Error(), "ScopedPrefix")
}

func TestLoad_Missing(t *testing.T) {
	err := Load(filepath.Join("testdata", "missing.yaml"), NewDefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)

	t.Setenv("STATE_TEST_OUTPUT", "env_gen.go")
	t.Setenv(EnvConfigPath, filepath.Join("testdata", "config.yaml"))

	cfg, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "env_gen.go", cfg.Output)
}

func TestConfig_LevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
}
