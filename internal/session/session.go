// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager that carries
// both login automatons: the persistent user session and the one-shot admin
// session.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// New creates a session manager backed by the in-memory store. Cookies
// carry only the random session token; all session data stays server-side.
func New(isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
