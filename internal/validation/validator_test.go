// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package validation

import (
	"strings"
	"testing"
)

type manualRequestFixture struct {
	DistrictID int    `validate:"required,min=1"`
	Gender     string `validate:"required"`
	Caste      string `validate:"required"`
	Age        int    `validate:"min=0,max=120"`
	Religion   string `validate:"required"`
}

func TestValidateStructPasses(t *testing.T) {
	req := manualRequestFixture{
		DistrictID: 3,
		Gender:     "Female",
		Caste:      "General",
		Age:        42,
		Religion:   "Hindu",
	}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("valid struct rejected: %v", verr)
	}
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	req := manualRequestFixture{Age: 200}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("invalid struct accepted")
	}

	fields := make(map[string]bool)
	for _, fe := range verr.Errors() {
		fields[fe.Field()] = true
	}
	for _, want := range []string{"DistrictID", "Gender", "Caste", "Age", "Religion"} {
		if !fields[want] {
			t.Errorf("missing error for field %s, got %v", want, verr.Error())
		}
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	type phoneReq struct {
		Phone string `validate:"required,phone"`
	}
	verr := ValidateStruct(&phoneReq{Phone: "not-a-phone"})
	if verr == nil {
		t.Fatal("invalid phone accepted")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Phone" {
		t.Errorf("Details.field = %v, want Phone", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	verr := ValidateStruct(&manualRequestFixture{Age: -1})
	if verr == nil {
		t.Fatal("invalid struct accepted")
	}
	apiErr := verr.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("multi-field error missing fields detail: %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("multi-field message not joined: %q", apiErr.Message)
	}
}

func TestIsPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "ten digits", input: "9830012345", want: true},
		{name: "with country code", input: "+919830012345", want: true},
		{name: "six digits minimum", input: "123456", want: true},
		{name: "too short", input: "12345", want: false},
		{name: "too long", input: "1234567890123456", want: false},
		{name: "letters", input: "98300abcde", want: false},
		{name: "internal plus", input: "98+30012345", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPhone(tt.input); got != tt.want {
				t.Errorf("isPhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
