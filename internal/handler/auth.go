// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTML-facing request handlers: login and
// registration, the client workspace, and the password-gated admin panel.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estate-go/internal/middleware"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
)

// AuthHandler handles end-user login, registration and logout.
type AuthHandler struct {
	users          *store.Users
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *store.Users, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		users:          users,
		renderer:       renderer,
		sessionManager: sm,
	}
}

func (h *AuthHandler) loggedIn(r *http.Request) bool {
	return h.sessionManager.GetString(r.Context(), middleware.SessionKeyUsername) != ""
}

// LoginForm renders the login page. Already-authenticated users are sent
// back to the workspace.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}
	h.renderer.RenderPage(w, r, "auth/login", render.TemplateData{Title: "Login"})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, ok := h.users.Verify(username, password)
	if !ok {
		slog.Debug("invalid login attempt", "username", username)
		flashError(w, r, h.renderer, redirectLogin, "Invalid username or password")
		return
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, user.Username)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}
	h.renderer.RenderPage(w, r, "auth/register", render.TemplateData{Title: "Register"})
}

// Register handles the registration form submission. Usernames must be
// unique across the directory.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectRegister) {
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.users.Create(username, email, password)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		flashError(w, r, h.renderer, redirectRegister, "Username already exists")
	case err != nil:
		slog.Error("failed to save new user", "error", err, "username", username)
		flashError(w, r, h.renderer, redirectRegister, "Registration failed. Please try again.")
	default:
		slog.Info("user registered", "user_id", user.ID, "username", user.Username)
		flashSuccess(w, r, h.renderer, redirectLogin, "Registration successful! Please login.")
	}
}

// Logout destroys the session, clearing both the user session and any
// unlocked admin session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := h.sessionManager.GetString(r.Context(), middleware.SessionKeyUsername)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if username != "" {
		slog.Info("user logged out", "username", username)
	}
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}
