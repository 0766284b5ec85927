// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors returned by the engine. Callers match with
// errors.Is and map them onto transport status codes.
var (
	// ErrCitizenNotFound is returned by identity-mode queries for an
	// unregistered citizen id.
	ErrCitizenNotFound = errors.New("citizen not found")

	// ErrInvalidQuery is returned when a query fails structural
	// validation before any ranking work.
	ErrInvalidQuery = errors.New("invalid recommendation query")
)

// Mode selects how the engine obtains the citizen's demographics.
type Mode string

const (
	// ModeIdentity resolves demographics from the citizen directory.
	ModeIdentity Mode = "identity"

	// ModeManual takes demographics directly from the query.
	ModeManual Mode = "manual"
)

// Age bucket names. These feed the demographic cluster signature, so
// they must match the buckets the cluster artifact was built with.
const (
	BucketChild   = "child"
	BucketYouth   = "youth"
	BucketElderly = "elderly"
)

// Religion group names used in the cluster signature.
const (
	ReligionGroupHindu    = "Hindu"
	ReligionGroupMinority = "Minority"
)

// ReligionGroup collapses a recorded religion into the grouped value
// the cluster artifact is keyed on.
func ReligionGroup(religion string) string {
	if strings.EqualFold(strings.TrimSpace(religion), "hindu") {
		return ReligionGroupHindu
	}
	return ReligionGroupMinority
}

// Signature is the demographic key for cluster lookup. All fields are
// already normalized: the age bucket and religion group, not raw age
// and religion.
type Signature struct {
	DistrictID    int
	Gender        string
	Caste         string
	AgeBucket     string
	ReligionGroup string
}

// Key serializes the signature into the cluster artifact's key format.
func (s Signature) Key() string {
	return strings.Join([]string{
		strconv.Itoa(s.DistrictID),
		s.Gender,
		s.Caste,
		s.AgeBucket,
		s.ReligionGroup,
	}, "|")
}

// Request is one recommendation query. Mode decides which fields are
// read: CitizenID for identity mode, the demographic fields for manual
// mode. SelectedServiceID is optional in both modes; zero means no
// content block.
type Request struct {
	Mode Mode

	// Identity mode.
	CitizenID string

	// Manual mode.
	DistrictID int
	Gender     string
	Caste      string
	Age        int
	Religion   string

	// Anchor for the content-similarity block.
	SelectedServiceID int
}

// Response carries the three recommendation lists. Every entry is a
// resolved service display name; ids that could not be resolved never
// appear.
type Response struct {
	DistrictRecommendations    []string            `json:"district_recommendations"`
	DemographicRecommendations []string            `json:"demographic_recommendations"`
	ContentRecommendations     map[string][]string `json:"content_recommendations"`
	Metadata                   ResponseMetadata    `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Mode        Mode      `json:"mode"`
	CacheHit    bool      `json:"cache_hit"`
	LatencyMS   float64   `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// contentTotal counts entries across all content anchor lists.
func (r *Response) contentTotal() int {
	total := 0
	for _, names := range r.ContentRecommendations {
		total += len(names)
	}
	return total
}

// validate checks the structural invariants of a request.
func (r *Request) validate() error {
	switch r.Mode {
	case ModeIdentity:
		if strings.TrimSpace(r.CitizenID) == "" {
			return fmt.Errorf("%w: citizen id must not be empty", ErrInvalidQuery)
		}
	case ModeManual:
		if r.DistrictID < 1 {
			return fmt.Errorf("%w: district id %d out of range", ErrInvalidQuery, r.DistrictID)
		}
		if r.Age < 0 {
			return fmt.Errorf("%w: age %d must not be negative", ErrInvalidQuery, r.Age)
		}
		for field, value := range map[string]string{
			"gender":   r.Gender,
			"caste":    r.Caste,
			"religion": r.Religion,
		} {
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("%w: %s must not be empty", ErrInvalidQuery, field)
			}
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidQuery, r.Mode)
	}

	if r.SelectedServiceID < 0 {
		return fmt.Errorf("%w: selected service id %d must not be negative", ErrInvalidQuery, r.SelectedServiceID)
	}
	return nil
}
