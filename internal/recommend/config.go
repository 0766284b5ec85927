// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import (
	"fmt"
	"time"
)

// Config tunes the engine. Obtain a baseline with DefaultConfig and
// override fields before passing it to NewEngine.
type Config struct {
	// DistrictTopN caps the district list after filtering.
	DistrictTopN int

	// DemographicTopN caps the demographic cluster list after
	// filtering.
	DemographicTopN int

	// ContentTopK caps each content-similarity neighbor list after
	// filtering.
	ContentTopK int

	// YouthMinAge and ElderlyMinAge bound the age buckets: ages below
	// YouthMinAge fall in the child bucket, below ElderlyMinAge in
	// youth, the rest in elderly.
	YouthMinAge   int
	ElderlyMinAge int

	// CacheEnabled turns the in-memory response cache on.
	CacheEnabled bool

	// CacheTTL is how long a cached response stays fresh.
	CacheTTL time.Duration

	// CacheMaxEntries bounds the cache; the oldest entry is evicted
	// when full.
	CacheMaxEntries int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DistrictTopN:    5,
		DemographicTopN: 5,
		ContentTopK:     5,
		YouthMinAge:     18,
		ElderlyMinAge:   60,
		CacheEnabled:    true,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 10000,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.DistrictTopN < 1 {
		return fmt.Errorf("district top-n must be >= 1, got %d", c.DistrictTopN)
	}
	if c.DemographicTopN < 1 {
		return fmt.Errorf("demographic top-n must be >= 1, got %d", c.DemographicTopN)
	}
	if c.ContentTopK < 1 {
		return fmt.Errorf("content top-k must be >= 1, got %d", c.ContentTopK)
	}
	if c.YouthMinAge < 0 {
		return fmt.Errorf("youth minimum age must not be negative, got %d", c.YouthMinAge)
	}
	if c.ElderlyMinAge <= c.YouthMinAge {
		return fmt.Errorf("elderly minimum age %d must exceed youth minimum age %d",
			c.ElderlyMinAge, c.YouthMinAge)
	}
	if c.CacheEnabled {
		if c.CacheTTL <= 0 {
			return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
		}
		if c.CacheMaxEntries < 1 {
			return fmt.Errorf("cache max entries must be >= 1, got %d", c.CacheMaxEntries)
		}
	}
	return nil
}

// AgeBucket places an age into its bucket name.
func (c Config) AgeBucket(age int) string {
	switch {
	case age < c.YouthMinAge:
		return BucketChild
	case age < c.ElderlyMinAge:
		return BucketYouth
	default:
		return BucketElderly
	}
}
