// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/estate-go/internal/middleware"
	"github.com/olegiv/estate-go/internal/render"
)

// AppHandler serves the logged-in client workspace.
type AppHandler struct {
	renderer *render.Renderer
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(renderer *render.Renderer) *AppHandler {
	return &AppHandler{renderer: renderer}
}

// HomeData holds data for the workspace template.
type HomeData struct {
	Username string
}

// Home renders the client workspace. The record list itself is fetched by
// the page from the JSON API.
func (h *AppHandler) Home(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	data := HomeData{}
	if user != nil {
		data.Username = user.Username
	}
	h.renderer.RenderPage(w, r, "app/index", render.TemplateData{
		Title: "Clients",
		Data:  data,
	})
}
