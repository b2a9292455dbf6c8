package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values from the environment. Unset
// variables leave the current value in place.
func parseEnv(cfg *Config) {
	setIfPresent := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setIfPresent("PASTEBIN_URL", &cfg.BaseURL)
	setIfPresent("PASTEBIN_PUBLISHABLE_KEY", &cfg.PublishableKey)
	setIfPresent("PASTEBIN_STORAGE_BUCKET", &cfg.StorageBucket)
	setIfPresent("PASTEBIN_S3_ENDPOINT", &cfg.S3Endpoint)
	setIfPresent("PASTEBIN_S3_REGION", &cfg.S3Region)
	setIfPresent("PASTEBIN_S3_ACCESS_KEY", &cfg.S3AccessKey)
	setIfPresent("PASTEBIN_S3_SECRET_KEY", &cfg.S3SecretKey)
	setIfPresent("PASTEBIN_DB", &cfg.DatabaseDSN)

	if v, ok := os.LookupEnv("PASTEBIN_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
