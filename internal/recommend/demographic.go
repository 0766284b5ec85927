// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package recommend

// ClusterMap serves the precomputed demographic clustering: a
// signature-to-cluster assignment plus per-cluster popularity
// rankings. Both maps are immutable after construction.
type ClusterMap struct {
	assignments map[string]int
	rankings    map[int][]int
	filter      *FilterPolicy
	topN        int
}

// NewClusterMap builds the map over the loaded cluster artifact. The
// maps are retained, not copied.
func NewClusterMap(assignments map[string]int, rankings map[int][]int, filter *FilterPolicy, topN int) *ClusterMap {
	return &ClusterMap{
		assignments: assignments,
		rankings:    rankings,
		filter:      filter,
		topN:        topN,
	}
}

// Recommend returns up to topN filtered service names for the
// signature's cluster. A signature absent from the artifact, or a
// cluster with no ranking, is benign and yields an empty list.
func (m *ClusterMap) Recommend(sig Signature, caste string) []string {
	cluster, ok := m.assignments[sig.Key()]
	if !ok {
		return []string{}
	}
	candidates, ok := m.rankings[cluster]
	if !ok {
		return []string{}
	}
	return m.filter.Apply(candidates, caste, m.topN)
}

// Clusters returns the number of clusters with rankings.
func (m *ClusterMap) Clusters() int {
	return len(m.rankings)
}

// Signatures returns the number of known demographic signatures.
func (m *ClusterMap) Signatures() int {
	return len(m.assignments)
}
