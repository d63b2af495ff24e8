// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estate-go/internal/model"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
)

// UsersHandler handles the admin user directory pages.
type UsersHandler struct {
	users    *store.Users
	renderer *render.Renderer
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users *store.Users, renderer *render.Renderer) *UsersHandler {
	return &UsersHandler{users: users, renderer: renderer}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users []model.User
}

// List handles GET /admin/users/list.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "admin/users_list", render.TemplateData{
		Title: "Users",
		Data:  UsersListData{Users: h.users.List()},
	})
}

// UserFormData holds data for the user form template.
type UserFormData struct {
	User   *model.User
	IsEdit bool
}

// CreateForm handles GET /admin/users/create.
func (h *UsersHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "admin/user_form", render.TemplateData{
		Title: "Create User",
		Data:  UserFormData{},
	})
}

// Create handles POST /admin/users/create.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdmin+RouteUsersCreate) {
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.users.Create(username, email, password)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		flashError(w, r, h.renderer, redirectAdmin+RouteUsersCreate, "Username already exists")
	case err != nil:
		slog.Error("failed to create user", "error", err, "username", username)
		flashError(w, r, h.renderer, redirectAdmin+RouteUsersCreate, "Failed to create user")
	default:
		slog.Info("user created by admin", "user_id", user.ID, "username", user.Username)
		flashSuccess(w, r, h.renderer, redirectAdminUsers, "User created successfully!")
	}
}

// EditForm handles GET /admin/users/edit/{id}.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, ok := h.users.Get(id)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminUsers, "User not found")
		return
	}

	h.renderer.RenderPage(w, r, "admin/user_form", render.TemplateData{
		Title: "Edit User",
		Data:  UserFormData{User: &user, IsEdit: true},
	})
}

// Edit handles POST /admin/users/edit/{id}. The password is only changed
// when the form supplies a new value.
func (h *UsersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editURL := redirectAdmin + "/users/edit/" + id

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.users.Update(id, username, email, password)
	switch {
	case errors.Is(err, store.ErrNotFound):
		flashError(w, r, h.renderer, redirectAdminUsers, "User not found")
	case errors.Is(err, store.ErrDuplicate):
		flashError(w, r, h.renderer, editURL, "Username already exists")
	case err != nil:
		slog.Error("failed to update user", "error", err, "user_id", id)
		flashError(w, r, h.renderer, editURL, "Failed to update user")
	default:
		slog.Info("user updated by admin", "user_id", user.ID, "username", user.Username)
		flashSuccess(w, r, h.renderer, redirectAdminUsers, "User updated successfully!")
	}
}

// Delete handles POST /admin/users/delete/{id} with a JSON response.
// Deleting an unknown id still reports success.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.users.Delete(id); err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete")
		return
	}
	writeJSONSuccess(w, nil)
}
