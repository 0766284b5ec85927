// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package logging provides structured logging built on zerolog.
//
// The package maintains a single global logger configured once at startup
// via Init. Request-scoped fields (request IDs) travel through
// context.Context and are attached automatically by Ctx.
package logging
