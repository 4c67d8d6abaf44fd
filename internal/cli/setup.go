package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/lifespan/internal/cache"
	"github.com/ppiankov/lifespan/internal/client"
	"github.com/ppiankov/lifespan/internal/model"
)

// loadConfig assembles the effective configuration: defaults overlaid
// with config-file/env values (via viper), then flags.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetDuration("api.timeout"); v > 0 {
		cfg.API.Timeout = v
	}
	if v := viper.GetString("api.user_agent"); v != "" {
		cfg.API.UserAgent = v
	}
	if viper.IsSet("api.insecure_tls") {
		cfg.API.InsecureTLS = viper.GetBool("api.insecure_tls")
	}
	cfg.API.HTTPProxy = viper.GetString("api.http_proxy")
	cfg.API.HTTPSProxy = viper.GetString("api.https_proxy")
	cfg.API.NoProxy = viper.GetString("api.no_proxy")

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v > 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v > 0 {
		cfg.Cache.DiskTTL = v
	}

	if v := viper.GetInt("batch.workers"); v > 0 {
		cfg.Batch.Workers = v
	}
	if v := viper.GetFloat64("batch.requests_per_second"); v > 0 {
		cfg.Batch.RequestsPerSecond = v
	}
	if v := viper.GetInt("batch.burst"); v > 0 {
		cfg.Batch.Burst = v
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// newResponseCache builds the layered feature-info cache, or nil when
// caching is disabled.
func newResponseCache(cfg model.Config) cache.Cache {
	if !cfg.Cache.Enabled || noCache {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// No home directory: memory-only still helps within one run
			return cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
		dir = filepath.Join(home, ".lifespan", "cache")
	}

	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
}

// newClient builds the prediction client for the effective config.
func newClient(cfg model.Config) *client.Client {
	return client.New(cfg.API, newResponseCache(cfg))
}
