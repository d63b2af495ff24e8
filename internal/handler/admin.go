// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/estate-go/internal/middleware"
	"github.com/olegiv/estate-go/internal/model"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
)

// MinAdminPasswordLength is the minimum accepted length for a new admin
// password.
const MinAdminPasswordLength = 6

// recentClientCount is the number of recent clients shown on the dashboard.
const recentClientCount = 5

// AdminHandler handles the password-gated admin panel: login, dashboard and
// settings.
type AdminHandler struct {
	admin          *store.Admin
	users          *store.Users
	clients        *store.Clients
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(st *store.Stores, renderer *render.Renderer, sm *scs.SessionManager) *AdminHandler {
	return &AdminHandler{
		admin:          st.Admin,
		users:          st.Users,
		clients:        st.Clients,
		renderer:       renderer,
		sessionManager: sm,
	}
}

// LoginForm always renders the password prompt, even when an admin session
// is already unlocked.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "admin/login", render.TemplateData{Title: "Admin Login"})
}

// Login checks the submitted password against the stored admin credential
// and unlocks the admin session.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminLogin) {
		return
	}

	if r.FormValue("password") != h.admin.Password() {
		slog.Debug("invalid admin password attempt", "remote_addr", r.RemoteAddr)
		flashError(w, r, h.renderer, redirectAdminLogin, "Invalid admin password")
		return
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdminUnlocked, true)

	slog.Info("admin session unlocked", "remote_addr", r.RemoteAddr)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout locks the admin session, leaving any user session alive.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessionManager.Remove(r.Context(), middleware.SessionKeyAdminUnlocked)
	http.Redirect(w, r, redirectAdminLogin, http.StatusSeeOther)
}

// consume locks the admin session again. Called by the dashboard and
// settings views before their response is written, so that a second visit
// to either view re-prompts for the password. The other admin routes check
// the flag without consuming it.
func (h *AdminHandler) consume(r *http.Request) {
	h.sessionManager.Remove(r.Context(), middleware.SessionKeyAdminUnlocked)
}

// DashboardData holds the statistics displayed on the dashboard.
type DashboardData struct {
	TotalClients  int
	TotalUsers    int
	RecentClients []model.Client
}

// Dashboard renders the admin overview. Rendering it consumes the admin
// session.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.consume(r)

	clients := h.clients.List()
	users := h.users.List()

	recent := clients
	if len(recent) > recentClientCount {
		recent = recent[:recentClientCount]
	}

	h.renderer.RenderPage(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data: DashboardData{
			TotalClients:  len(clients),
			TotalUsers:    len(users),
			RecentClients: recent,
		},
	})
}

// SettingsData holds data for the settings template.
type SettingsData struct {
	TotalClients int
	TotalUsers   int
}

// SettingsForm renders the settings page. Like the dashboard, a successful
// render consumes the admin session.
func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	h.consume(r)

	h.renderer.RenderPage(w, r, "admin/settings", render.TemplateData{
		Title: "Settings",
		Data: SettingsData{
			TotalClients: len(h.clients.List()),
			TotalUsers:   len(h.users.List()),
		},
	})
}

// SettingsUpdate changes the admin password. Validation failures flash and
// redirect back to the form; the admin session is not consumed here.
func (h *AdminHandler) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	switch {
	case current != h.admin.Password():
		flashError(w, r, h.renderer, redirectAdminSettings, "Current password is incorrect")
	case newPassword != confirm:
		flashError(w, r, h.renderer, redirectAdminSettings, "New passwords do not match")
	case len(newPassword) < MinAdminPasswordLength:
		flashError(w, r, h.renderer, redirectAdminSettings, "Password must be at least 6 characters")
	default:
		if err := h.admin.SetPassword(newPassword); err != nil {
			slog.Error("failed to update admin password", "error", err)
			flashError(w, r, h.renderer, redirectAdminSettings, "Failed to update password")
			return
		}
		slog.Info("admin password changed")
		flashSuccess(w, r, h.renderer, redirectAdminSettings, "Admin password changed successfully!")
	}
}
