// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package api

// IdentityRecommendationRequest is the body of
// POST /api/v1/recommendations/citizen.
//
// Fields:
//   - CitizenID: registered citizen id (required)
//   - SelectedServiceID: anchor for the content block (optional)
type IdentityRecommendationRequest struct {
	CitizenID         string `json:"citizen_id" validate:"required,min=1"`
	SelectedServiceID int    `json:"selected_service_id" validate:"omitempty,min=1"`
}

// ManualRecommendationRequest is the body of
// POST /api/v1/recommendations/manual. All demographic fields are
// required; the selected service is optional.
type ManualRecommendationRequest struct {
	DistrictID        int    `json:"district_id" validate:"required,min=1"`
	Gender            string `json:"gender" validate:"required,min=1"`
	Caste             string `json:"caste" validate:"required,min=1"`
	Age               int    `json:"age" validate:"min=0,max=120"`
	Religion          string `json:"religion" validate:"required,min=1"`
	SelectedServiceID int    `json:"selected_service_id" validate:"omitempty,min=1"`
}

// phoneLookupParams validates the phone path parameter of
// GET /api/v1/citizens/phone/{phone}.
type phoneLookupParams struct {
	Phone string `validate:"required,phone"`
}
