// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sevasetu/sevasetu/internal/directory"
)

// fakeCitizens is a CitizenProvider that records whether it was asked.
type fakeCitizens struct {
	citizens map[string]directory.Citizen
	lookups  int
}

func (f *fakeCitizens) FindByID(citizenID string) (directory.Citizen, bool) {
	f.lookups++
	c, ok := f.citizens[citizenID]
	return c, ok
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *fakeCitizens) {
	t.Helper()

	cat := testCatalog()
	filter := NewFilterPolicy(cat)

	district := NewDistrictRanker(map[int][]int{
		1: {4, 5, 3, 6},
		2: {6, 7},
	}, filter, cfg.DistrictTopN)

	clusters := NewClusterMap(
		map[string]int{
			"1|Female|SC|youth|Hindu":      10,
			"1|Male|General|elderly|Hindu": 11,
		},
		map[int][]int{
			10: {3, 5, 4},
			11: {5, 7},
		},
		filter, cfg.DemographicTopN,
	)

	similarity := NewSimilarityIndex(map[int][]Neighbor{
		4: {
			{ServiceID: 5, Score: 0.9},
			{ServiceID: 7, Score: 0.8},
			{ServiceID: 1, Score: 0.7},
		},
	}, filter, cfg.ContentTopK)

	citizens := &fakeCitizens{citizens: map[string]directory.Citizen{
		"GRPA_100": {
			ID:         "GRPA_100",
			Name:       directory.MaskedName,
			Gender:     "Female",
			Caste:      "SC",
			Religion:   "Hindu",
			Age:        30,
			DistrictID: 1,
		},
		"GRPA_101": {
			ID:         "GRPA_101",
			Name:       directory.MaskedName,
			Gender:     "Male",
			Caste:      "General",
			Religion:   "Hindu",
			Age:        72,
			DistrictID: 1,
		},
	}}

	engine, err := NewEngine(cfg, zerolog.Nop(), citizens, cat, district, clusters, similarity)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	return engine, citizens
}

func TestEngineIdentityMode(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	resp, err := engine.Recommend(context.Background(), &Request{
		Mode:              ModeIdentity,
		CitizenID:         "GRPA_100",
		SelectedServiceID: 4,
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	equalStrings(t, resp.DistrictRecommendations,
		[]string{"Health Insurance Card", "Old Age Pension", "Caste Certificate", "Ration Card"})
	equalStrings(t, resp.DemographicRecommendations,
		[]string{"Caste Certificate", "Old Age Pension", "Health Insurance Card"})

	content, ok := resp.ContentRecommendations["Health Insurance Card"]
	if !ok {
		t.Fatalf("content block missing anchor, got %v", resp.ContentRecommendations)
	}
	equalStrings(t, content, []string{"Old Age Pension", "Widow Pension"})

	if resp.Metadata.Mode != ModeIdentity || resp.Metadata.CacheHit {
		t.Errorf("metadata = %+v, want fresh identity response", resp.Metadata)
	}
}

func TestEngineIdentityGeneralCasteFiltering(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	resp, err := engine.Recommend(context.Background(), &Request{
		Mode:      ModeIdentity,
		CitizenID: "GRPA_101",
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	// Caste Certificate is filtered for a General-caste citizen.
	equalStrings(t, resp.DistrictRecommendations,
		[]string{"Health Insurance Card", "Old Age Pension", "Ration Card"})
	equalStrings(t, resp.DemographicRecommendations,
		[]string{"Old Age Pension", "Widow Pension"})
	if len(resp.ContentRecommendations) != 0 {
		t.Errorf("no selected service but content block = %v", resp.ContentRecommendations)
	}
}

func TestEngineIdentityUnknownCitizen(t *testing.T) {
	engine, citizens := newTestEngine(t, DefaultConfig())

	_, err := engine.Recommend(context.Background(), &Request{
		Mode:      ModeIdentity,
		CitizenID: "GRPA_999",
	})
	if !errors.Is(err, ErrCitizenNotFound) {
		t.Fatalf("error = %v, want ErrCitizenNotFound", err)
	}
	if citizens.lookups != 1 {
		t.Errorf("directory lookups = %d, want exactly 1", citizens.lookups)
	}
}

func TestEngineManualMode(t *testing.T) {
	engine, citizens := newTestEngine(t, DefaultConfig())

	resp, err := engine.Recommend(context.Background(), &Request{
		Mode:       ModeManual,
		DistrictID: 1,
		Gender:     "Female",
		Caste:      "SC",
		Age:        25,
		Religion:   "Hindu",
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	if citizens.lookups != 0 {
		t.Errorf("manual mode touched the directory %d times", citizens.lookups)
	}
	equalStrings(t, resp.DemographicRecommendations,
		[]string{"Caste Certificate", "Old Age Pension", "Health Insurance Card"})
	if len(resp.ContentRecommendations) != 0 {
		t.Errorf("missing selected service must yield empty content map, got %v", resp.ContentRecommendations)
	}
}

func TestEngineManualModeValidation(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	_, err := engine.Recommend(context.Background(), &Request{
		Mode:       ModeManual,
		DistrictID: 0,
		Gender:     "Female",
		Caste:      "SC",
		Age:        25,
		Religion:   "Hindu",
	})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("error = %v, want ErrInvalidQuery", err)
	}
}

func TestEngineUnknownDistrictBenign(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	resp, err := engine.Recommend(context.Background(), &Request{
		Mode:       ModeManual,
		DistrictID: 77,
		Gender:     "Male",
		Caste:      "OBC",
		Age:        40,
		Religion:   "Muslim",
	})
	if err != nil {
		t.Fatalf("unknown district must not error: %v", err)
	}
	if len(resp.DistrictRecommendations) != 0 || len(resp.DemographicRecommendations) != 0 {
		t.Errorf("expected empty lists, got %+v", resp)
	}
}

func TestEngineUnresolvableAnchorSkipsContent(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	resp, err := engine.Recommend(context.Background(), &Request{
		Mode:              ModeManual,
		DistrictID:        1,
		Gender:            "Female",
		Caste:             "SC",
		Age:               25,
		Religion:          "Hindu",
		SelectedServiceID: 999,
	})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(resp.ContentRecommendations) != 0 {
		t.Errorf("unresolvable anchor produced content block: %v", resp.ContentRecommendations)
	}
}

func TestEngineCacheHit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTTL = time.Minute
	engine, citizens := newTestEngine(t, cfg)

	req := &Request{Mode: ModeIdentity, CitizenID: "GRPA_100", SelectedServiceID: 4}

	first, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("first Recommend() error: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first response reported a cache hit")
	}

	second, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("second Recommend() error: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second response missed the cache")
	}
	equalStrings(t, second.DistrictRecommendations, first.DistrictRecommendations)

	// Identity resolution still happens before the cache: two queries,
	// two lookups.
	if citizens.lookups != 2 {
		t.Errorf("directory lookups = %d, want 2", citizens.lookups)
	}
}

func TestEngineCacheExpiry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTTL = 10 * time.Millisecond
	engine, _ := newTestEngine(t, cfg)

	req := &Request{Mode: ModeManual, DistrictID: 1, Gender: "Female", Caste: "SC", Age: 25, Religion: "Hindu"}

	if _, err := engine.Recommend(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	resp, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Metadata.CacheHit {
		t.Error("expired entry served as cache hit")
	}
}

func TestEngineCacheEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheMaxEntries = 2
	engine, _ := newTestEngine(t, cfg)

	for _, district := range []int{1, 2, 77} {
		_, err := engine.Recommend(context.Background(), &Request{
			Mode: ModeManual, DistrictID: district, Gender: "Male", Caste: "OBC", Age: 40, Religion: "Muslim",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if got := engine.CacheLen(); got > 2 {
		t.Errorf("CacheLen() = %d, want <= 2", got)
	}
}

func TestEngineCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheEnabled = false
	engine, _ := newTestEngine(t, cfg)

	req := &Request{Mode: ModeManual, DistrictID: 1, Gender: "Female", Caste: "SC", Age: 25, Religion: "Hindu"}
	for i := 0; i < 2; i++ {
		resp, err := engine.Recommend(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Metadata.CacheHit {
			t.Error("cache hit with cache disabled")
		}
	}
	if engine.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0", engine.CacheLen())
	}
}

func TestEngineContextCancelled(t *testing.T) {
	engine, _ := newTestEngine(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recommend(ctx, &Request{Mode: ModeIdentity, CitizenID: "GRPA_100"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DistrictTopN = 0

	cat := testCatalog()
	filter := NewFilterPolicy(cat)
	_, err := NewEngine(cfg, zerolog.Nop(), &fakeCitizens{}, cat,
		NewDistrictRanker(nil, filter, 5),
		NewClusterMap(nil, nil, filter, 5),
		NewSimilarityIndex(map[int][]Neighbor{}, filter, 5),
	)
	if err == nil {
		t.Error("NewEngine accepted invalid config")
	}
}
