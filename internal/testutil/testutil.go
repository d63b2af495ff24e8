// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estate-go/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestStores creates stores over a temporary data directory that is removed
// when the test finishes.
func TestStores(t *testing.T) *store.Stores {
	t.Helper()

	st, err := store.NewStores(t.TempDir())
	if err != nil {
		t.Fatalf("NewStores: %v", err)
	}
	return st
}

// TestSessionManager creates a cookie-backed session manager configured the
// way tests need it: short lifetime, no Secure flag.
func TestSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = time.Hour
	sm.Cookie.Secure = false
	return sm
}
