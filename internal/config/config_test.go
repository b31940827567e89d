package config_test

import (
	"testing"
	"time"

	"github.com/vivekshiftai/integration-of-firewall/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FGT_API_TOKEN", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Expected 0.0.0.0:8000, got %s", cfg.Server.Addr())
	}
	if cfg.FortiGate.IsConfigured() {
		t.Error("Expected firewall to be unconfigured without a token")
	}
	if cfg.FortiGate.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", cfg.FortiGate.Timeout)
	}
	if cfg.ClickHouse.Addr() != "localhost:9000" {
		t.Errorf("Expected localhost:9000, got %s", cfg.ClickHouse.Addr())
	}
	if cfg.ClickHouse.Database != "firewall_configuration" {
		t.Errorf("Expected firewall_configuration, got %s", cfg.ClickHouse.Database)
	}
	if cfg.Sample.Dir != "sampledata" {
		t.Errorf("Expected sampledata, got %s", cfg.Sample.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FORTIGATE_IP", "10.1.2.3")
	t.Setenv("FGT_API_TOKEN", "secret")
	t.Setenv("FORTIGATE_API_VERSION", "v1")
	t.Setenv("USE_SAMPLE_DATA", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.FortiGate.APIEndpoint(); got != "https://10.1.2.3/api/v1/cmdb/firewall/policy" {
		t.Errorf("Unexpected endpoint: %s", got)
	}
	// USE_SAMPLE_DATA forces the fallback corpus even with a token set
	if cfg.FortiGate.IsConfigured() {
		t.Error("Expected IsConfigured false when sample data is forced")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero timeout", func(c *config.Config) { c.FortiGate.Timeout = 0 }},
		{"bad server port", func(c *config.Config) { c.Server.Port = 0 }},
		{"bad clickhouse port", func(c *config.Config) { c.ClickHouse.Port = 70000 }},
		{"empty database", func(c *config.Config) { c.ClickHouse.Database = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
