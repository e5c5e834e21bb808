// Package config defines the autopilot configuration: the log level and which trajectory
// factories to start and on which services they listen.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/autopilot/logging"
)

// Config is the top level configuration.
type Config struct {
	ConfigFilePath string    `json:"-"`
	LogLevel       string    `json:"log_level,omitempty"`
	Factories      []Factory `json:"factories"`
}

// Default returns the configuration used when no file is given: one circle factory on its
// default service.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Factories: []Factory{{Type: "circle"}},
	}
}

// Validate ensures all parts of the config are valid. Every problem is reported, not just the
// first one.
func (cfg *Config) Validate() error {
	var errs error
	if cfg.LogLevel != "" {
		if _, err := logging.LevelFromString(cfg.LogLevel); err != nil {
			errs = multierr.Append(errs, goutils.NewConfigValidationError("log_level", err))
		}
	}

	seenServices := make(map[string]int, len(cfg.Factories))
	for idx := range cfg.Factories {
		factoryPath := fmt.Sprintf("%s.%d", "factories", idx)
		f := &cfg.Factories[idx]
		if err := f.Validate(factoryPath); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if f.Service == "" {
			continue
		}
		if prev, ok := seenServices[f.Service]; ok {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(factoryPath,
				errors.Errorf("service %q already used by factories.%d", f.Service, prev)))
			continue
		}
		seenServices[f.Service] = idx
	}
	return errs
}

// Level returns the configured log level, INFO when unset.
func (cfg *Config) Level() logging.Level {
	if cfg.LogLevel == "" {
		return logging.INFO
	}
	level, err := logging.LevelFromString(cfg.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// A Factory describes one trajectory factory and the service it answers on. An empty Service
// means the factory's own default.
type Factory struct {
	Type       string       `json:"type"`
	Service    string       `json:"service,omitempty"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (f *Factory) Validate(path string) error {
	if f.Type == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "type")
	}
	return nil
}
