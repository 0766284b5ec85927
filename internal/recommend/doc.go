// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package recommend implements the citizen service recommendation
// engine.
//
// Three strategies rank services from precomputed lookup tables:
//
//   - DistrictRanker: the most availed services in the citizen's
//     district
//   - ClusterMap: services popular within the citizen's demographic
//     cluster (district, gender, caste, age bucket, religion group)
//   - SimilarityIndex: services similar to a selected anchor service
//
// All three share one FilterPolicy that resolves ids to names, drops
// life-event record services, and drops caste-targeted services for
// General-caste queries. Filtering always happens before truncation so
// a full page of usable results survives when enough candidates exist.
//
// The Engine composes the strategies, serves identity-mode queries
// (resolved via the CitizenDirectory) and manual-mode queries
// (demographics supplied by the caller), and caches responses in
// memory with a TTL.
package recommend
