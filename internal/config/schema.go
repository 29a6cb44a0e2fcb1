package config

import "time"

type ModelPreset struct {
	Provider    string  `mapstructure:"provider" json:"provider" validate:"required,oneof=openai anthropic googleai" jsonschema:"required,enum=openai,enum=anthropic,enum=googleai"`
	Name        string  `mapstructure:"name" json:"name" validate:"required" jsonschema:"required,description=Provider model identifier"`
	Temperature float64 `mapstructure:"temperature" json:"temperature,omitempty" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"maxTokens" json:"maxTokens,omitempty" validate:"gte=0"`
}

type ProviderCredentials struct {
	APIKey string `mapstructure:"apiKey" json:"apiKey,omitempty"`
}

type Providers struct {
	OpenAI    ProviderCredentials `mapstructure:"openai" json:"openai,omitempty"`
	Anthropic ProviderCredentials `mapstructure:"anthropic" json:"anthropic,omitempty"`
	GoogleAI  ProviderCredentials `mapstructure:"googleai" json:"googleai,omitempty"`
}

// APIKey returns the credential configured for provider, or "" when none is.
func (p Providers) APIKey(provider string) string {
	switch provider {
	case "openai":
		return p.OpenAI.APIKey
	case "anthropic":
		return p.Anthropic.APIKey
	case "googleai":
		return p.GoogleAI.APIKey
	}
	return ""
}

type Dataset struct {
	// Path to the property CSV. Empty uses the bundled sample.
	Path string `mapstructure:"path" json:"path,omitempty"`
}

type Agent struct {
	MaxIterations int           `mapstructure:"maxIterations" json:"maxIterations" validate:"min=1,max=9"`
	ModelTimeout  time.Duration `mapstructure:"modelTimeout" json:"modelTimeout" jsonschema:"type=string,description=Per-call model deadline such as 60s"`
	HistoryLimit  int           `mapstructure:"historyLimit" json:"historyLimit" validate:"gte=0"`
	SystemMessage string        `mapstructure:"systemMessage" json:"systemMessage,omitempty"`
}

type Tracing struct {
	APIKey   string `mapstructure:"apiKey" json:"apiKey,omitempty"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint,omitempty" validate:"omitempty,url"`
	Project  string `mapstructure:"project" json:"project,omitempty"`
	DBPath   string `mapstructure:"dbPath" json:"dbPath,omitempty"`
	LogFile  string `mapstructure:"logFile" json:"logFile,omitempty"`
}

type Log struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR"`
	LogFile  string `mapstructure:"logFile" json:"logFile,omitempty"`
}

type ConfigSchema struct {
	ActiveModel string                 `mapstructure:"activeModel" json:"activeModel" validate:"required"`
	Models      map[string]ModelPreset `mapstructure:"models" json:"models" validate:"required,dive"`
	Providers   Providers              `mapstructure:"providers" json:"providers,omitempty"`
	Dataset     Dataset                `mapstructure:"dataset" json:"dataset,omitempty"`
	Agent       Agent                  `mapstructure:"agent" json:"agent"`
	Tracing     Tracing                `mapstructure:"tracing" json:"tracing,omitempty"`
	Log         Log                    `mapstructure:"log" json:"log,omitempty"`

	// Internal fields for printing
	sources map[string][]configSource
}

// Model returns the active model preset.
func (s *ConfigSchema) Model() ModelPreset {
	return s.Models[s.ActiveModel]
}
