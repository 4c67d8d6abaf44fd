package model

import "time"

// Config is the complete lifespan configuration, assembled from flags,
// environment variables, the config file, and defaults (in that order).
type Config struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Batch  BatchConfig  `yaml:"batch"`
	Output OutputConfig `yaml:"output"`
}

// APIConfig configures access to the prediction service.
type APIConfig struct {
	// BaseURL of the prediction service (scheme + host, no trailing slash)
	BaseURL string `yaml:"base_url"`

	// Timeout for one prediction request. The hosted service sleeps on
	// free tiers and can take tens of seconds to wake, hence the high default.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent sent with every request
	UserAgent string `yaml:"user_agent"`

	// InsecureTLS skips certificate verification (self-signed deployments)
	InsecureTLS bool `yaml:"insecure_tls"`

	// Proxy settings (empty falls back to environment)
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig configures the feature-info response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // Disk cache directory (empty: ~/.lifespan/cache)
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BatchConfig configures concurrent batch prediction.
type BatchConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   60 * time.Second,
			UserAgent: "Lifespan/0.1 (+https://github.com/ppiankov/lifespan)",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Batch: BatchConfig{
			Workers:           4,
			RequestsPerSecond: 5,
			Burst:             5,
		},
	}
}
