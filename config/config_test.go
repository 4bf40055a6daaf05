package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Create a temp config file
	content := `
version: v1
subscription: 00000000-0000-0000-0000-000000000001
resource_group: rg-ci

retry:
  max_attempts: 7
  base_delay_seconds: 3

verify:
  function_app: func-orders
  storage_account: storders
  app_insights: ai-orders

vault:
  name: kv-orders

destroy:
  require_tags:
    - environment
    - owner
  allow_production: false

telemetry:
  otel_endpoint: localhost:4317
  insecure: true
  log_level: debug
`
	tmpfile, err := os.CreateTemp("", "valvo-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load the config
	cfg, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Verify config
	if cfg.Version != "v1" {
		t.Errorf("Version = %v, want v1", cfg.Version)
	}
	if cfg.Subscription != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("Subscription = %v", cfg.Subscription)
	}
	if cfg.ResourceGroup != "rg-ci" {
		t.Errorf("ResourceGroup = %v, want rg-ci", cfg.ResourceGroup)
	}
	if cfg.Retry.MaxAttempts != 7 {
		t.Errorf("Retry.MaxAttempts = %v, want 7", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay() != 3*time.Second {
		t.Errorf("Retry.BaseDelay() = %v, want 3s", cfg.Retry.BaseDelay())
	}
	if cfg.Verify.FunctionApp != "func-orders" {
		t.Errorf("Verify.FunctionApp = %v, want func-orders", cfg.Verify.FunctionApp)
	}
	if cfg.Vault.Name != "kv-orders" {
		t.Errorf("Vault.Name = %v, want kv-orders", cfg.Vault.Name)
	}
	if len(cfg.Destroy.RequireTags) != 2 {
		t.Errorf("Destroy.RequireTags count = %v, want 2", len(cfg.Destroy.RequireTags))
	}
	if cfg.Destroy.AllowProduction {
		t.Error("AllowProduction should be false")
	}
	if cfg.Telemetry.OTELEndpoint != "localhost:4317" {
		t.Errorf("Telemetry.OTELEndpoint = %v", cfg.Telemetry.OTELEndpoint)
	}
	if cfg.Telemetry.LogLevel != "debug" {
		t.Errorf("Telemetry.LogLevel = %v, want debug", cfg.Telemetry.LogLevel)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/valvo.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Retry.MaxAttempts = %v, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay() != 2*time.Second {
		t.Errorf("Retry.BaseDelay() = %v, want 2s", cfg.Retry.BaseDelay())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Version: "v1",
			},
			wantErr: false,
		},
		{
			name:    "missing version",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "negative max attempts",
			config: Config{
				Version: "v1",
				Retry:   Retry{MaxAttempts: -1},
			},
			wantErr: true,
		},
		{
			name: "negative base delay",
			config: Config{
				Version: "v1",
				Retry:   Retry{BaseDelaySeconds: -2},
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			config: Config{
				Version:   "v1",
				Telemetry: Telemetry{LogLevel: "loud"},
			},
			wantErr: true,
		},
		{
			name: "valid log level",
			config: Config{
				Version:   "v1",
				Telemetry: Telemetry{LogLevel: "warn"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
