// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

package supervisor

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v, want 5.0", cfg.FailureThreshold)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNewTreeAppliesDefaultsForZeroValues(t *testing.T) {
	// A zero-value config must not produce a tree that restarts
	// without backoff; NewTree fills in suture's defaults.
	tree := NewTree(newTestSlogLogger(), TreeConfig{})
	if tree == nil || tree.root == nil || tree.api == nil {
		t.Fatal("NewTree returned an incomplete tree")
	}
}
