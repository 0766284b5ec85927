// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package config loads server configuration from layered sources
// (built-in defaults, an optional YAML file, environment variables)
// using koanf. Precedence is ENV > file > defaults.
package config
