// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

// DistrictRanker serves the precomputed per-district popularity
// ranking. Rankings are immutable after construction.
type DistrictRanker struct {
	rankings map[int][]int
	filter   *FilterPolicy
	topN     int
}

// NewDistrictRanker builds the ranker over district-to-ranked-ids
// rankings. The map is retained, not copied; the loader must not
// mutate it afterwards.
func NewDistrictRanker(rankings map[int][]int, filter *FilterPolicy, topN int) *DistrictRanker {
	return &DistrictRanker{rankings: rankings, filter: filter, topN: topN}
}

// Recommend returns up to topN filtered service names for the
// district, in popularity order. An unknown district is benign and
// yields an empty list.
func (r *DistrictRanker) Recommend(districtID int, caste string) []string {
	candidates, ok := r.rankings[districtID]
	if !ok {
		return []string{}
	}
	return r.filter.Apply(candidates, caste, r.topN)
}

// Districts returns the number of districts with rankings.
func (r *DistrictRanker) Districts() int {
	return len(r.rankings)
}
