// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package api exposes the HTTP surface: citizen lookup, service and
// district listings, and the two recommendation endpoints, all wrapped
// in a standard JSON envelope and served through a chi router.
package api
