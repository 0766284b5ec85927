// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the sevasetu server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig locates the reference data artifacts loaded at startup.
// All tables are immutable after load.
type DataConfig struct {
	// Dir is prepended to every relative artifact path below.
	Dir string `koanf:"dir"`

	ServicesFile   string `koanf:"services_file"`
	DistrictsFile  string `koanf:"districts_file"`
	CitizensFile   string `koanf:"citizens_file"`
	UsageFile      string `koanf:"usage_file"`
	ClusterFile    string `koanf:"cluster_file"`
	SimilarityFile string `koanf:"similarity_file"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// DistrictTopN and DemographicTopN cap the district and
	// demographic lists after filtering.
	DistrictTopN    int `koanf:"district_top_n"`
	DemographicTopN int `koanf:"demographic_top_n"`

	// ContentTopK caps the content-similarity neighbor list.
	ContentTopK int `koanf:"content_top_k"`

	// YouthMinAge and ElderlyMinAge bound the age buckets:
	// below YouthMinAge is child, below ElderlyMinAge is youth,
	// the rest elderly.
	YouthMinAge   int `koanf:"youth_min_age"`
	ElderlyMinAge int `koanf:"elderly_min_age"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// SecurityConfig holds CORS and rate-limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values the server cannot run
// with. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	for name, path := range map[string]string{
		"data.services_file":   c.Data.ServicesFile,
		"data.districts_file":  c.Data.DistrictsFile,
		"data.citizens_file":   c.Data.CitizensFile,
		"data.usage_file":      c.Data.UsageFile,
		"data.cluster_file":    c.Data.ClusterFile,
		"data.similarity_file": c.Data.SimilarityFile,
	} {
		if path == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.Recommend.DistrictTopN < 1 {
		return fmt.Errorf("recommend.district_top_n must be >= 1, got %d", c.Recommend.DistrictTopN)
	}
	if c.Recommend.DemographicTopN < 1 {
		return fmt.Errorf("recommend.demographic_top_n must be >= 1, got %d", c.Recommend.DemographicTopN)
	}
	if c.Recommend.ContentTopK < 1 {
		return fmt.Errorf("recommend.content_top_k must be >= 1, got %d", c.Recommend.ContentTopK)
	}
	if c.Recommend.YouthMinAge < 0 || c.Recommend.ElderlyMinAge <= c.Recommend.YouthMinAge {
		return fmt.Errorf("age bucket bounds invalid: youth_min_age=%d elderly_min_age=%d",
			c.Recommend.YouthMinAge, c.Recommend.ElderlyMinAge)
	}
	if c.Recommend.CacheEnabled {
		if c.Recommend.CacheTTL <= 0 {
			return fmt.Errorf("recommend.cache_ttl must be positive when cache enabled, got %s", c.Recommend.CacheTTL)
		}
		if c.Recommend.CacheMaxEntries < 1 {
			return fmt.Errorf("recommend.cache_max_entries must be >= 1 when cache enabled, got %d", c.Recommend.CacheMaxEntries)
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	return nil
}
