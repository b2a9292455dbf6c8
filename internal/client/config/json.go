package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pastebin/internal/flagx"
	"github.com/dmitrijs2005/pastebin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "10s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	PublishableKey string         `json:"publishable_key"`
	StorageBucket  string         `json:"storage_bucket"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3Region       string         `json:"s3_region"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	DatabaseDSN    string         `json:"database"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Empty JSON fields leave the current value in
// place. Read or parse errors panic; there is no sane way to continue
// with a half-applied config file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	apply := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	apply(jc.BaseURL, &cfg.BaseURL)
	apply(jc.PublishableKey, &cfg.PublishableKey)
	apply(jc.StorageBucket, &cfg.StorageBucket)
	apply(jc.S3Endpoint, &cfg.S3Endpoint)
	apply(jc.S3Region, &cfg.S3Region)
	apply(jc.S3AccessKey, &cfg.S3AccessKey)
	apply(jc.S3SecretKey, &cfg.S3SecretKey)
	apply(jc.DatabaseDSN, &cfg.DatabaseDSN)

	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
