// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the session gates for user-facing and admin
// routes.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estate-go/internal/model"
	"github.com/olegiv/estate-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key holding the logged-in user.
const ContextKeyUser ContextKey = "user"

// Session keys for the two login automatons. They are independent: holding
// one says nothing about the other.
const (
	SessionKeyUsername      = "username"
	SessionKeyAdminUnlocked = "admin_logged_in"
)

// RequireUser gates page routes on the user session. Anonymous requests are
// redirected to the login page. A session whose user has meanwhile been
// deleted from the directory is destroyed and treated as anonymous.
func RequireUser(sm *scs.SessionManager, users *store.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), SessionKeyUsername)
			if username == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, ok := users.Find(username)
			if !ok {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUserAPI gates the JSON API on the user session, answering 401 JSON
// instead of redirecting.
func RequireUserAPI(sm *scs.SessionManager, users *store.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), SessionKeyUsername)
			if username == "" {
				writeUnauthorized(w)
				return
			}

			user, ok := users.Find(username)
			if !ok {
				_ = sm.Destroy(r.Context())
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin page routes on the one-shot admin session. It
// only checks the flag; consuming it on the dashboard and settings views is
// the handlers' job.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sm.GetBool(r.Context(), SessionKeyAdminUnlocked) {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminJSON is RequireAdmin for the AJAX delete endpoints: a missing
// admin session answers 401 JSON rather than redirecting.
func RequireAdminJSON(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sm.GetBool(r.Context(), SessionKeyAdminUnlocked) {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser retrieves the logged-in user placed in the context by RequireUser
// or RequireUserAPI. Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": "Unauthorized"})
}
