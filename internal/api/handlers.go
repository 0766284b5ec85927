// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/sevasetu/sevasetu/internal/catalog"
	"github.com/sevasetu/sevasetu/internal/directory"
	"github.com/sevasetu/sevasetu/internal/logging"
	"github.com/sevasetu/sevasetu/internal/metrics"
	"github.com/sevasetu/sevasetu/internal/recommend"
	"github.com/sevasetu/sevasetu/internal/validation"
)

// Handler serves the citizen-facing API over the loaded reference
// data and the recommendation engine.
type Handler struct {
	catalog   *catalog.Catalog
	directory *directory.Directory
	engine    *recommend.Engine
	timeout   time.Duration
	startedAt time.Time
}

// NewHandler wires the handler over its collaborators. timeout bounds
// each request's work.
func NewHandler(cat *catalog.Catalog, dir *directory.Directory, engine *recommend.Engine, timeout time.Duration) *Handler {
	return &Handler{
		catalog:   cat,
		directory: dir,
		engine:    engine,
		timeout:   timeout,
		startedAt: time.Now().UTC(),
	}
}

// Health reports service status and loaded table sizes.
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"tables": map[string]int{
			"services":  h.catalog.Len(),
			"districts": len(h.catalog.Districts()),
			"citizens":  h.directory.Len(),
		},
	}, nil)
}

// ListServices returns every service ordered by id, for populating
// selection UIs. No ranking is applied.
//
// GET /api/v1/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.Services()
	respondJSON(w, r, http.StatusOK, services, &Meta{Count: len(services)})
}

// ListDistricts returns every district ordered by id.
//
// GET /api/v1/districts
func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts := h.catalog.Districts()
	respondJSON(w, r, http.StatusOK, districts, &Meta{Count: len(districts)})
}

// CitizenByPhone returns every citizen registered under a phone
// number. Zero matches is benign and returns an empty list.
//
// GET /api/v1/citizens/phone/{phone}
func (h *Handler) CitizenByPhone(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(chi.URLParam(r, "phone"))

	if verr := validation.ValidateStruct(&phoneLookupParams{Phone: phone}); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	citizens := h.directory.FindByPhone(phone)
	respondJSON(w, r, http.StatusOK, citizens, &Meta{Count: len(citizens)})
}

// CitizenServices summarizes a citizen's availed services, most used
// first. Unknown citizens get 404.
//
// GET /api/v1/citizens/{citizenID}/services
func (h *Handler) CitizenServices(w http.ResponseWriter, r *http.Request) {
	citizenID := strings.TrimSpace(chi.URLParam(r, "citizenID"))

	citizen, ok := h.directory.FindByID(citizenID)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "citizen not found", nil)
		return
	}

	history := h.directory.UsageHistory(citizenID)
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"citizen_id":            citizen.ID,
		"name":                  citizen.Name,
		"services":              history,
		"total_unique_services": len(history),
	}, nil)
}

// RecommendCitizen serves identity-mode recommendations.
//
// POST /api/v1/recommendations/citizen
func (h *Handler) RecommendCitizen(w http.ResponseWriter, r *http.Request) {
	var req IdentityRecommendationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.serveRecommendation(w, r, &recommend.Request{
		Mode:              recommend.ModeIdentity,
		CitizenID:         req.CitizenID,
		SelectedServiceID: req.SelectedServiceID,
	})
}

// RecommendManual serves manual-mode recommendations from caller
// supplied demographics.
//
// POST /api/v1/recommendations/manual
func (h *Handler) RecommendManual(w http.ResponseWriter, r *http.Request) {
	var req ManualRecommendationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.serveRecommendation(w, r, &recommend.Request{
		Mode:              recommend.ModeManual,
		DistrictID:        req.DistrictID,
		Gender:            req.Gender,
		Caste:             req.Caste,
		Age:               req.Age,
		Religion:          req.Religion,
		SelectedServiceID: req.SelectedServiceID,
	})
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, query *recommend.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, query)
	if err != nil {
		h.respondEngineError(w, r, query, err)
		return
	}

	if resp.Metadata.CacheHit {
		metrics.EngineCacheHits.Inc()
	} else {
		metrics.EngineCacheMisses.Inc()
	}
	metrics.RecordRecommendation(string(query.Mode), "ok",
		len(resp.DistrictRecommendations),
		len(resp.DemographicRecommendations),
		contentCount(resp.ContentRecommendations),
	)
	respondJSON(w, r, http.StatusOK, resp, nil)
}

func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, query *recommend.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrCitizenNotFound):
		metrics.RecordRecommendation(string(query.Mode), "not_found", 0, 0, 0)
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "citizen not found", nil)
	case errors.Is(err, recommend.ErrInvalidQuery):
		metrics.RecordRecommendation(string(query.Mode), "invalid", 0, 0, 0)
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
	default:
		metrics.RecordRecommendation(string(query.Mode), "error", 0, 0, 0)
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "recommendation failed", nil)
	}
}

func contentCount(block map[string][]string) int {
	total := 0
	for _, names := range block {
		total += len(names)
	}
	return total
}
