// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sevasetu/sevasetu/internal/directory"
)

// CitizenProvider is the directory view the engine needs for identity
// mode. Satisfied by *directory.Directory.
type CitizenProvider interface {
	FindByID(citizenID string) (directory.Citizen, bool)
}

// Engine composes the three ranking strategies behind one query
// surface. All lookup tables are immutable, so queries run without
// locks; only the response cache is synchronized.
type Engine struct {
	config     Config
	logger     zerolog.Logger
	citizens   CitizenProvider
	district   *DistrictRanker
	clusters   *ClusterMap
	similarity *SimilarityIndex
	resolver   ServiceResolver

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine builds the engine. The config is validated here so a
// misconfigured engine cannot be constructed.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(
	cfg Config,
	logger zerolog.Logger,
	citizens CitizenProvider,
	resolver ServiceResolver,
	district *DistrictRanker,
	clusters *ClusterMap,
	similarity *SimilarityIndex,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		citizens:   citizens,
		resolver:   resolver,
		district:   district,
		clusters:   clusters,
		similarity: similarity,
		cache:      make(map[string]cacheEntry),
	}, nil
}

// Recommend serves one query. Identity mode resolves the citizen's
// demographics from the directory and fails with ErrCitizenNotFound
// for unknown ids before any ranking work. Manual mode uses the
// demographics on the request. Per-strategy misses (unknown district,
// unseen signature, anchor without neighbors) are benign and produce
// empty lists, never errors.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommendation cancelled: %w", err)
	}

	sig, caste, err := e.resolveSignature(req)
	if err != nil {
		return nil, err
	}

	key := cacheKey(req, sig)
	if cached, ok := e.checkCache(key); ok {
		resp := *cached
		resp.Metadata.CacheHit = true
		resp.Metadata.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
		return &resp, nil
	}

	resp := &Response{
		DistrictRecommendations:    e.district.Recommend(sig.DistrictID, caste),
		DemographicRecommendations: e.clusters.Recommend(sig, caste),
		ContentRecommendations:     e.contentBlock(req.SelectedServiceID, caste),
		Metadata: ResponseMetadata{
			Mode:        req.Mode,
			GeneratedAt: time.Now().UTC(),
		},
	}
	resp.Metadata.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0

	e.storeCache(key, resp)

	e.logger.Debug().
		Str("mode", string(req.Mode)).
		Int("district", sig.DistrictID).
		Int("district_results", len(resp.DistrictRecommendations)).
		Int("demographic_results", len(resp.DemographicRecommendations)).
		Int("content_results", resp.contentTotal()).
		Float64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation served")

	return resp, nil
}

// resolveSignature produces the normalized demographic signature and
// the caste used for filtering.
func (e *Engine) resolveSignature(req *Request) (Signature, string, error) {
	switch req.Mode {
	case ModeIdentity:
		citizen, ok := e.citizens.FindByID(strings.TrimSpace(req.CitizenID))
		if !ok {
			return Signature{}, "", fmt.Errorf("%w: %s", ErrCitizenNotFound, req.CitizenID)
		}
		return Signature{
			DistrictID:    citizen.DistrictID,
			Gender:        citizen.Gender,
			Caste:         citizen.Caste,
			AgeBucket:     e.config.AgeBucket(citizen.Age),
			ReligionGroup: ReligionGroup(citizen.Religion),
		}, citizen.Caste, nil
	default: // validated already, must be manual
		return Signature{
			DistrictID:    req.DistrictID,
			Gender:        req.Gender,
			Caste:         req.Caste,
			AgeBucket:     e.config.AgeBucket(req.Age),
			ReligionGroup: ReligionGroup(req.Religion),
		}, req.Caste, nil
	}
}

// contentBlock builds the content-similarity map. No selected service
// means no content block; an anchor missing from the catalog is
// dropped like any other unresolvable id.
func (e *Engine) contentBlock(selectedServiceID int, caste string) map[string][]string {
	block := make(map[string][]string)
	if selectedServiceID == 0 {
		return block
	}
	anchorName, ok := e.resolver.ResolveName(selectedServiceID)
	if !ok {
		e.logger.Debug().Int("service_id", selectedServiceID).
			Msg("selected service not in catalog, skipping content block")
		return block
	}
	block[anchorName] = e.similarity.Recommend(selectedServiceID, caste)
	return block
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

func cacheKey(req *Request, sig Signature) string {
	return strings.Join([]string{
		string(req.Mode),
		req.CitizenID,
		sig.Key(),
		strconv.Itoa(req.SelectedServiceID),
	}, "|")
}

func (e *Engine) checkCache(key string) (*Response, bool) {
	if !e.config.CacheEnabled {
		return nil, false
	}

	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (e *Engine) storeCache(key string, resp *Response) {
	if !e.config.CacheEnabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.CacheMaxEntries {
		e.evictOldestLocked()
	}
	e.cache[key] = cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(e.config.CacheTTL),
	}
}

// evictOldestLocked removes the entry closest to expiry. Caller holds
// cacheMu.
func (e *Engine) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range e.cache {
		if oldestKey == "" || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(e.cache, oldestKey)
	}
}

// CacheLen returns the number of cached responses.
func (e *Engine) CacheLen() int {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return len(e.cache)
}
