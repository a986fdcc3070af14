// Package config provides YAML-based configuration for the state generator,
// with environment variable expansion and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"state-generator/internal/gen"
)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "STATE_GENERATOR_CONFIG"

// Log levels accepted in the config file.
var logLevels = []any{"debug", "info", "warn", "error"}

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Config represents the generator configuration.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	Output       string        `yaml:"output"`
	Runtime      string        `yaml:"runtime"`
	SharedPrefix string        `yaml:"shared_prefix"`
	ScopedPrefix string        `yaml:"scoped_prefix"`
	Debounce     time.Duration `yaml:"debounce"`
}

// NewDefaultConfig returns a new Config with the generator defaults.
func NewDefaultConfig() *Config {
	defaults := gen.DefaultGeneratorConfig()

	return &Config{
		LogLevel:     "info",
		Output:       defaults.Filename,
		Runtime:      defaults.RuntimeModule,
		SharedPrefix: defaults.SharedPrefix,
		ScopedPrefix: defaults.ScopedPrefix,
		Debounce:     200 * time.Millisecond,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
		validation.Field(&c.Output, validation.Required, validation.By(goFile)),
		validation.Field(&c.Runtime, validation.Required),
		validation.Field(&c.SharedPrefix, validation.Required),
		validation.Field(&c.ScopedPrefix, validation.Required, validation.NotIn(c.SharedPrefix)),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

func goFile(value any) error {
	name, _ := value.(string)
	if !strings.HasSuffix(name, ".go") || name == ".go" {
		return errors.New("must be a .go file name")
	}

	return nil
}

// Level returns the zap level of LogLevel.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}

// ToGenerator returns the generator settings described by c.
func (c *Config) ToGenerator() gen.GeneratorConfig {
	config := gen.DefaultGeneratorConfig()
	config.Filename = c.Output
	config.RuntimeModule = c.Runtime
	config.SharedPrefix = c.SharedPrefix
	config.ScopedPrefix = c.ScopedPrefix

	return config
}

// Load loads configuration from a YAML file with environment variable expansion.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// Resolve returns the configuration at filename over the defaults. An empty
// filename falls back to $STATE_GENERATOR_CONFIG; with neither set the
// validated defaults are returned.
func Resolve(filename string) (*Config, error) {
	if filename == "" {
		filename = os.Getenv(EnvConfigPath)
	}

	cfg := NewDefaultConfig()

	if filename == "" {
		return cfg, cfg.Validate()
	}

	if err := Load(filename, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
