// Package config assembles the client runtime configuration from
// defaults, an optional JSON file, environment variables, and flags.
// Later sources take precedence over earlier ones.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/common"
)

// Config holds runtime settings for the pastebin CLI.
//
// Fields:
//   - BaseURL: the backend project URL (scheme + host).
//   - PublishableKey: the public API key sent with every request.
//   - StorageBucket: bucket name for file uploads.
//   - S3Endpoint: the bucket's S3-compatible endpoint; derived from
//     BaseURL when left empty.
//   - S3Region, S3AccessKey, S3SecretKey: object store credentials.
//   - DatabaseDSN: path of the local sqlite database holding the saved login.
//   - RequestTimeout: per-call deadline for backend requests.
type Config struct {
	BaseURL        string
	PublishableKey string
	StorageBucket  string
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBucket = "uploads"
	c.S3Region = "us-east-1"
	c.DatabaseDSN = "pastebin.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if cfg.S3Endpoint == "" && cfg.BaseURL != "" {
		cfg.S3Endpoint = cfg.BaseURL + "/storage/v1/s3"
	}
	return cfg
}

// Validate checks the settings a running client cannot do without.
// A missing backend URL or key is fatal at startup; there is no runtime
// recovery from it.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: backend url is not set", common.ErrConfig)
	}
	if c.PublishableKey == "" {
		return fmt.Errorf("%w: publishable api key is not set", common.ErrConfig)
	}
	if err := inspectPublishableKey(c.PublishableKey); err != nil {
		if errors.Is(err, errNotAToken) {
			// Opaque key formats are passed through as-is.
			return nil
		}
		return fmt.Errorf("%w: %v", common.ErrConfig, err)
	}
	return nil
}
