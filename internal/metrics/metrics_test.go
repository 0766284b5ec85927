// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200"))
	RecordAPIRequest("GET", "/api/v1/services", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200"))

	if after != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
	}
}

func TestRecordRecommendationOutcomes(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequestsTotal.WithLabelValues("identity", "not_found"))
	RecordRecommendation("identity", "not_found", 0, 0, 0)
	after := testutil.ToFloat64(RecommendationRequestsTotal.WithLabelValues("identity", "not_found"))

	if after != before+1 {
		t.Errorf("RecommendationRequestsTotal = %v, want %v", after, before+1)
	}
}

func TestLoadWarningAndTableRows(t *testing.T) {
	before := testutil.ToFloat64(ReferenceLoadWarnings.WithLabelValues("similarity"))
	RecordLoadWarning("similarity")
	after := testutil.ToFloat64(ReferenceLoadWarnings.WithLabelValues("similarity"))
	if after != before+1 {
		t.Errorf("ReferenceLoadWarnings = %v, want %v", after, before+1)
	}

	SetTableRows("services", 42)
	if got := testutil.ToFloat64(ReferenceTableRows.WithLabelValues("services")); got != 42 {
		t.Errorf("ReferenceTableRows = %v, want 42", got)
	}
}
