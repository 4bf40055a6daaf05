package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Version       string    `yaml:"version"`
	Subscription  string    `yaml:"subscription,omitempty"`
	ResourceGroup string    `yaml:"resource_group,omitempty"`
	Retry         Retry     `yaml:"retry,omitempty"`
	Verify        Verify    `yaml:"verify,omitempty"`
	Vault         Vault     `yaml:"vault,omitempty"`
	Destroy       Destroy   `yaml:"destroy,omitempty"`
	Telemetry     Telemetry `yaml:"telemetry,omitempty"`
}

// Retry controls the attempt budget for Azure operations
type Retry struct {
	MaxAttempts      int `yaml:"max_attempts"`
	BaseDelaySeconds int `yaml:"base_delay_seconds"`
}

// BaseDelay returns the configured delay as a duration
func (r Retry) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelaySeconds) * time.Second
}

// Verify names the deployment pieces a verify run checks
type Verify struct {
	FunctionApp    string `yaml:"function_app,omitempty"`
	StorageAccount string `yaml:"storage_account,omitempty"`
	AppInsights    string `yaml:"app_insights,omitempty"`
}

// Vault names the Key Vault secret operations target
type Vault struct {
	Name string `yaml:"name,omitempty"`
}

// Destroy controls teardown safety behavior
type Destroy struct {
	RequireTags     []string `yaml:"require_tags,omitempty"`
	AllowProduction bool     `yaml:"allow_production"`
}

// Telemetry configures log level and OTEL export
type Telemetry struct {
	OTELEndpoint string `yaml:"otel_endpoint,omitempty"`
	Insecure     bool   `yaml:"insecure"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Retry: Retry{
			MaxAttempts:      5,
			BaseDelaySeconds: 2,
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts cannot be negative")
	}
	if c.Retry.BaseDelaySeconds < 0 {
		return fmt.Errorf("retry.base_delay_seconds cannot be negative")
	}
	switch c.Telemetry.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Telemetry.LogLevel)
	}
	return nil
}
