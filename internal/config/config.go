package config

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

type Config struct {
	Source   Source `yaml:"source" validate:"required"`
	LLM      LLM    `yaml:"llm" validate:"required"`
	Report   Report `yaml:"report"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

type Source struct {
	Path string `yaml:"path" validate:"required"`
}

type LLM struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Model   string `yaml:"model" validate:"required"`
}

type Report struct {
	Template string `yaml:"template"`
	Color    string `yaml:"color" validate:"omitempty,oneof=auto always never"`
}

// Load reads, env-expands, parses and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Report.Color == "" {
		cfg.Report.Color = "auto"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// APIKeyFromEnv returns the capability credential. Its absence is a fatal
// startup condition, not a pipeline runtime error.
func APIKeyFromEnv() (string, error) {
	key := os.Getenv("PATROL_API_KEY")
	if key == "" {
		return "", fmt.Errorf("PATROL_API_KEY is not set")
	}
	return key, nil
}
