// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import "strings"

// casteGeneral is the caste value that never qualifies for
// caste-targeted services.
const casteGeneral = "general"

// ServiceResolver is the catalog view the engine needs: id-to-name
// resolution plus the exclusion flags. Satisfied by *catalog.Catalog.
type ServiceResolver interface {
	ResolveName(serviceID int) (string, bool)
	IsExcluded(serviceID int) bool
	IsCasteTargeted(serviceID int) bool
}

// FilterPolicy applies the shared eligibility rules to ranked
// candidate lists. All three strategies run every candidate through
// the same policy, so the exclusion behavior cannot drift between
// lists.
type FilterPolicy struct {
	resolver ServiceResolver
}

// NewFilterPolicy builds the policy over a service resolver.
func NewFilterPolicy(resolver ServiceResolver) *FilterPolicy {
	return &FilterPolicy{resolver: resolver}
}

// Apply walks candidates in rank order, drops ineligible ids, and
// returns up to limit resolved names. Filtering before truncation
// keeps the page full when enough eligible candidates exist.
//
// A candidate is dropped when its id does not resolve, when it is a
// life-event record service, or when it is caste-targeted and the
// query caste is General.
func (f *FilterPolicy) Apply(candidates []int, caste string, limit int) []string {
	names := make([]string, 0, min(limit, len(candidates)))
	for _, serviceID := range candidates {
		if len(names) >= limit {
			break
		}
		name, ok := f.eligible(serviceID, caste)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

// eligible resolves one candidate against the policy.
func (f *FilterPolicy) eligible(serviceID int, caste string) (string, bool) {
	name, ok := f.resolver.ResolveName(serviceID)
	if !ok {
		return "", false
	}
	if f.resolver.IsExcluded(serviceID) {
		return "", false
	}
	if f.resolver.IsCasteTargeted(serviceID) && isGeneralCaste(caste) {
		return "", false
	}
	return name, true
}

func isGeneralCaste(caste string) bool {
	return strings.EqualFold(strings.TrimSpace(caste), casteGeneral)
}
