package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envVarConfig defines an environment variable mapping
type envVarConfig struct {
	key      string // Key in the config
	envVar   string // Environment variable name
	isSecret bool   // Whether to redact in logs
}

// Environment variables to load
var envVars = []envVarConfig{
	{key: "providers.openai.apiKey", envVar: "OPENAI_API_KEY", isSecret: true},
	{key: "providers.anthropic.apiKey", envVar: "ANTHROPIC_API_KEY", isSecret: true},
	{key: "providers.googleai.apiKey", envVar: "GEMINI_API_KEY", isSecret: true},
	{key: "tracing.apiKey", envVar: "REALTY_TRACING_API_KEY", isSecret: true},
	{key: "tracing.endpoint", envVar: "REALTY_TRACING_ENDPOINT"},
	{key: "tracing.project", envVar: "REALTY_PROJECT"},
	{key: "dataset.path", envVar: "REALTY_DATASET_PATH"},
	{key: "log.logLevel", envVar: "REALTY_LOG_LEVEL"},
}

// loadEnv reads .env from the working directory, then ~/.realty.env.
// Variables already set in the environment win.
func loadEnv() {
	_ = godotenv.Load()
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".realty.env"))
	}
}

func applyEnvVars(v *viper.Viper, sources map[string][]configSource) {
	for _, env := range envVars {
		val, ok := os.LookupEnv(env.envVar)
		if !ok || val == "" {
			continue
		}
		v.Set(env.key, val)

		displayVal := any(val)
		if env.isSecret {
			displayVal = redacted
		}
		sources[normalizeKey(env.key)] = append(sources[normalizeKey(env.key)], configSource{
			value:  displayVal,
			source: fmt.Sprintf("%s environment variable", env.envVar),
		})
	}
}
