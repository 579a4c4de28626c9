package config

import (
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
	"github.com/Git-GoR/FoundryVTT-Sequencer/logger"
)

// Config represents options that configure the global behavior of the sequencer
type Config struct {
	// Project logger
	Logger *logrus.Logger `yaml:"-"`

	// LogLevel is parsed by logrus, e.g. "debug" or "warn".
	LogLevel string `yaml:"log_level"`

	// StrictArguments stops a sequence from playing once any of its sections received an invalid argument.
	StrictArguments bool `yaml:"strict_arguments"`

	// Seed makes the random delays and offsets reproducible, and the file choices of runners given a Picker from
	// the sequence's NewRand. Zero seeds from the current time.
	Seed int64 `yaml:"seed"`

	// DefaultEase is applied to fades that don't name an ease.
	DefaultEase string `yaml:"default_ease"`

	// FrameRate is how many frames per second the frame renderer draws.
	FrameRate int `yaml:"frame_rate"`
}

// NewConfig creates a new Config object with reasonable defaults for real usage
func NewConfig() (*Config, error) {
	return &Config{
		Logger:          logger.GetProjectLogger(),
		LogLevel:        "info",
		StrictArguments: true,
		DefaultEase:     effect.DefaultEase,
		FrameRate:       40,
	}, nil
}

// LoadConfig reads a YAML file at path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that can't be defaulted, and applies the log level to the project logger.
func (c *Config) Validate() error {
	if _, ok := effect.LookupEase(c.DefaultEase); !ok {
		return errors.WithStackTrace(InvalidConfigError{Key: "default_ease", Reason: "unknown ease " + c.DefaultEase})
	}
	if c.FrameRate <= 0 {
		return errors.WithStackTrace(InvalidConfigError{Key: "frame_rate", Reason: "must be greater than 0"})
	}
	if c.Logger == nil {
		c.Logger = logger.GetProjectLogger()
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.WithStackTrace(InvalidConfigError{Key: "log_level", Reason: err.Error()})
	}
	c.Logger.SetLevel(lvl)
	return nil
}

// InvalidConfigError is returned when a config value can't be used.
type InvalidConfigError struct {
	Key    string
	Reason string
}

func (err InvalidConfigError) Error() string {
	return "invalid config value for " + err.Key + ": " + err.Reason
}
