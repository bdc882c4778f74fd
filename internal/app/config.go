package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// InputPath is a definition file or a directory of definition files.
	InputPath string
	// ConfigPath optionally points at an HCL analyzer config file.
	ConfigPath string

	LogFormat string
	LogLevel  string
	// ToStdout prints rendered reports instead of writing them beside
	// their inputs.
	ToStdout bool
}

// NewConfig validates a Config value.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
