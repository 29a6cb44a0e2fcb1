package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Configuration is layered, highest priority first:

1. Command line flags (RuntimeOverrides)
2. Environment variables (secrets and a few crucial overrides)
3. Local project config (.realty/*.realty.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/realty/*.realty.{yaml,json})
5. Defaults embedded from defaults.realty.yaml

Files in one directory are merged alphabetically. Maps merge deeply and
scalars override. Every value remembers where it came from so that
`realty config --include-sources` can explain it.
*/

//go:embed defaults.realty.yaml
var defaultsYAML []byte

const localConfigDir = ".realty"

type configSource struct {
	value  interface{}
	source string
}

// New loads, merges and validates the configuration.
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	loadEnv()

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("could not read defaults: %w", err)
	}

	sources := make(map[string][]configSource)
	trackSources(sources, v.AllSettings(), "", "default")

	if err := loadConfigs(v, sources); err != nil {
		return nil, err
	}
	applyEnvVars(v, sources)

	var cfg ConfigSchema
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = sources
	cfg.ActiveModel = strings.ToLower(cfg.ActiveModel)

	if err := overrides.apply(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configDirs() ([]string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return []string{filepath.Join(xdgConfig, "realty"), localConfigDir}, nil
}

// findConfigFiles returns all *.realty.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".realty.yaml") ||
			strings.HasSuffix(name, ".realty.yml") ||
			strings.HasSuffix(name, ".realty.json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadConfigs(v *viper.Viper, sources map[string][]configSource) error {
	dirs, err := configDirs()
	if err != nil {
		return err
	}
	known := GetKnownKeys()

	for _, dir := range dirs {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		for _, f := range files {
			fv := viper.New()
			fv.SetConfigFile(f)
			if err := fv.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", f, err)
			}

			for _, key := range fv.AllKeys() {
				if !IsKnownKey(known, key) {
					slog.Warn("unknown config key", "key", key, "file", f)
				}
			}

			settings := fv.AllSettings()
			trackSources(sources, settings, "", f)
			if err := mergeConfig(v, settings); err != nil {
				return fmt.Errorf("error merging config from %s: %w", f, err)
			}
		}
	}
	return nil
}

func mergeConfig(v *viper.Viper, settings map[string]interface{}) error {
	for key, value := range settings {
		existing := v.Get(key)
		if existing == nil {
			v.Set(key, value)
			continue
		}

		switch existingVal := existing.(type) {
		case map[string]interface{}:
			newMap, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("type mismatch for key %s: expected map, got %T", key, value)
			}
			v.Set(key, mergeMapRecursive(existingVal, newMap))
		default:
			v.Set(key, value)
		}
	}
	return nil
}

func mergeMapRecursive(existing, new map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for k, v := range existing {
		result[k] = v
	}

	for k, v := range new {
		existingVal, ok := existing[k].(map[string]interface{})
		if !ok {
			result[k] = v
			continue
		}
		if newVal, ok := v.(map[string]interface{}); ok {
			result[k] = mergeMapRecursive(existingVal, newVal)
		} else {
			result[k] = v
		}
	}

	return result
}

// trackSources records the origin of every leaf value under its dotted,
// lowercased key.
func trackSources(sources map[string][]configSource, settings map[string]interface{}, prefix, source string) {
	for key, value := range settings {
		fullKey := normalizeKey(key)
		if prefix != "" {
			fullKey = prefix + "." + fullKey
		}
		if nested, ok := value.(map[string]interface{}); ok {
			trackSources(sources, nested, fullKey, source)
			continue
		}
		sources[fullKey] = append(sources[fullKey], configSource{value: value, source: source})
	}
}

func (s *ConfigSchema) track(key string, value interface{}, source string) {
	if s.sources == nil {
		s.sources = make(map[string][]configSource)
	}
	key = normalizeKey(key)
	s.sources[key] = append(s.sources[key], configSource{value: value, source: source})
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Validate validates the configuration against the schema
func (s *ConfigSchema) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	// Additional custom validations
	if _, ok := s.Models[s.ActiveModel]; !ok {
		names := make([]string, 0, len(s.Models))
		for name := range s.Models {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("activeModel %q must be one of the configured models: %v", s.ActiveModel, names)
	}
	if s.Agent.ModelTimeout <= 0 {
		return fmt.Errorf("agent.modelTimeout must be positive, got %s", s.Agent.ModelTimeout)
	}
	if s.Tracing.APIKey != "" && s.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when a tracing API key is set")
	}
	return nil
}
