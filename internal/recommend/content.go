// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

import "sort"

// Neighbor is one scored entry of a service's similarity list.
type Neighbor struct {
	ServiceID int
	Score     float64
}

// SimilarityIndex serves the precomputed content-similarity neighbor
// lists. Immutable after construction.
type SimilarityIndex struct {
	neighbors map[int][]Neighbor
	filter    *FilterPolicy
	topK      int
}

// NewSimilarityIndex normalizes the raw neighbor lists: self
// references are removed and each list is sorted by score descending
// with service id as the tiebreak. The input map is retained.
func NewSimilarityIndex(neighbors map[int][]Neighbor, filter *FilterPolicy, topK int) *SimilarityIndex {
	for anchorID, list := range neighbors {
		cleaned := list[:0]
		for _, n := range list {
			if n.ServiceID == anchorID {
				continue
			}
			cleaned = append(cleaned, n)
		}
		sort.Slice(cleaned, func(i, j int) bool {
			if cleaned[i].Score != cleaned[j].Score {
				return cleaned[i].Score > cleaned[j].Score
			}
			return cleaned[i].ServiceID < cleaned[j].ServiceID
		})
		neighbors[anchorID] = cleaned
	}
	return &SimilarityIndex{neighbors: neighbors, filter: filter, topK: topK}
}

// Recommend returns up to topK filtered neighbor names for the anchor
// service, most similar first. The anchor itself never appears in its
// own list. An anchor without neighbors is benign and yields an empty
// list.
func (s *SimilarityIndex) Recommend(anchorID int, caste string) []string {
	list, ok := s.neighbors[anchorID]
	if !ok {
		return []string{}
	}
	candidates := make([]int, len(list))
	for i, n := range list {
		candidates[i] = n.ServiceID
	}
	return s.filter.Apply(candidates, caste, s.topK)
}

// Neighbors returns the raw normalized neighbor list for an anchor,
// used by the loader's integrity report. Callers must not modify it.
func (s *SimilarityIndex) Neighbors(anchorID int) []Neighbor {
	return s.neighbors[anchorID]
}

// Anchors returns the number of services with neighbor lists.
func (s *SimilarityIndex) Anchors() int {
	return len(s.neighbors)
}
