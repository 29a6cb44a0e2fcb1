package config

import (
	"fmt"
	"strings"
)

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	ActiveModel   *string
	DatasetPath   *string
	MaxIterations *int
	LogLevel      *string
	LogFile       *string
}

func (o *RuntimeOverrides) apply(cfg *ConfigSchema) error {
	if o == nil {
		return nil
	}
	if o.ActiveModel != nil {
		name := strings.ToLower(*o.ActiveModel)
		if _, exists := cfg.Models[name]; !exists {
			return fmt.Errorf("model %q not found in configuration", *o.ActiveModel)
		}
		cfg.ActiveModel = name
		cfg.track("activeModel", name, "--model flag")
	}
	if o.DatasetPath != nil {
		cfg.Dataset.Path = *o.DatasetPath
		cfg.track("dataset.path", *o.DatasetPath, "--dataset flag")
	}
	if o.MaxIterations != nil {
		cfg.Agent.MaxIterations = *o.MaxIterations
		cfg.track("agent.maxIterations", *o.MaxIterations, "--max-iterations flag")
	}
	if o.LogLevel != nil {
		cfg.Log.LogLevel = strings.ToUpper(*o.LogLevel)
		cfg.track("log.logLevel", cfg.Log.LogLevel, "--log-level flag")
	}
	if o.LogFile != nil {
		cfg.Log.LogFile = *o.LogFile
		cfg.track("log.logFile", *o.LogFile, "--log-file flag")
	}
	return nil
}
