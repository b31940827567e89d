package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	FortiGate  FortiGateConfig
	ClickHouse ClickHouseConfig
	Sample     SampleConfig
	Export     ExportConfig
	Log        LogConfig
}

// FortiGateConfig holds firewall API connection configuration.
type FortiGateConfig struct {
	IPAddress     string        `env:"FORTIGATE_IP" envDefault:"192.168.1.99"`
	APIToken      string        `env:"FGT_API_TOKEN"`
	VerifySSL     bool          `env:"FORTIGATE_VERIFY_SSL" envDefault:"false"`
	Timeout       time.Duration `env:"FORTIGATE_TIMEOUT" envDefault:"30s"`
	APIVersion    string        `env:"FORTIGATE_API_VERSION" envDefault:"v2"`
	UseSampleData bool          `env:"USE_SAMPLE_DATA" envDefault:"false"` // Force the fallback corpus even when a token is set
}

// APIEndpoint returns the firewall policy endpoint URL.
func (c *FortiGateConfig) APIEndpoint() string {
	return fmt.Sprintf("https://%s/api/%s/cmdb/firewall/policy", c.IPAddress, c.APIVersion)
}

// IsConfigured returns true when the live API should be used: a token is
// set and sample data is not forced.
func (c *FortiGateConfig) IsConfigured() bool {
	return c.APIToken != "" && !c.UseSampleData
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `env:"API_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"API_PORT" envDefault:"8000"`
}

// ClickHouseConfig holds ClickHouse connection configuration.
type ClickHouseConfig struct {
	Host     string `env:"CLICKHOUSE_HOST" envDefault:"localhost"`
	Port     int    `env:"CLICKHOUSE_PORT" envDefault:"9000"`
	Database string `env:"CLICKHOUSE_DATABASE" envDefault:"firewall_configuration"`
	Username string `env:"CLICKHOUSE_USER" envDefault:"default"`
	Password string `env:"CLICKHOUSE_PASSWORD"`
	Secure   bool   `env:"CLICKHOUSE_SECURE" envDefault:"false"`
	Verify   bool   `env:"CLICKHOUSE_VERIFY" envDefault:"false"`
}

// Addr returns the ClickHouse address in host:port format.
func (c *ClickHouseConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SampleConfig holds fallback corpus configuration.
type SampleConfig struct {
	Dir  string `env:"SAMPLE_DATA_DIR" envDefault:"sampledata"`
	File string `env:"SAMPLE_DATA_FILE"` // Explicit file name; empty tries the default candidates
}

// ExportConfig holds JSON export configuration.
type ExportConfig struct {
	OutputFile string `env:"OUTPUT_FILE" envDefault:"fortigate_policies.json"`
	SaveToFile bool   `env:"SAVE_TO_FILE" envDefault:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.FortiGate); err != nil {
		return nil, fmt.Errorf("parsing fortigate config: %w", err)
	}
	if err := env.Parse(&cfg.ClickHouse); err != nil {
		return nil, fmt.Errorf("parsing clickhouse config: %w", err)
	}
	if err := env.Parse(&cfg.Sample); err != nil {
		return nil, fmt.Errorf("parsing sample data config: %w", err)
	}
	if err := env.Parse(&cfg.Export); err != nil {
		return nil, fmt.Errorf("parsing export config: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}

	return cfg, nil
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535")
	}
	if c.FortiGate.Timeout <= 0 {
		return fmt.Errorf("FORTIGATE_TIMEOUT must be positive")
	}
	if c.ClickHouse.Port < 1 || c.ClickHouse.Port > 65535 {
		return fmt.Errorf("CLICKHOUSE_PORT must be between 1 and 65535")
	}
	if c.ClickHouse.Database == "" {
		return fmt.Errorf("CLICKHOUSE_DATABASE is required")
	}
	return nil
}
