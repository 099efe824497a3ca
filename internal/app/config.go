package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete bridge configuration, loadable from environment
// variables (BRIDGE_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"Webhook server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (BRIDGE_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	Fira        FiraConfig
	RateLimit   RateLimitConfig
	Graceful    GracefulConfig
}

// FiraConfig holds the FIRA API connection settings.
type FiraConfig struct {
	URL         string        `default:"https://app.fira.finance/api/v1/webshop/order/custom" usage:"FIRA webshop order endpoint" flag:"fira-url"`
	APIKey      string        `usage:"FIRA API key (required, BRIDGE_FIRA_APIKEY)" flag:"fira-api-key"`
	InvoiceType string        `default:"PONUDA" usage:"FIRA invoice document type" flag:"fira-invoice-type"`
	Timeout     time.Duration `default:"30s" usage:"FIRA submission timeout" flag:"fira-timeout"`
}

// RateLimitConfig controls the per-client webhook rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults. The FIRA API key and database URL have no
// default and must be provided.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BRIDGE",
		Files:     []string{"config.yaml", "/etc/fira-bridge/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set BRIDGE_DATABASE_URL or DATABASE_URL")
	}
	if cfg.Fira.APIKey == "" {
		return nil, errors.New("FIRA API key is required: set BRIDGE_FIRA_APIKEY")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) with standard names like DATABASE_URL and PORT to
// the BRIDGE_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
