// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/estate-go/internal/model"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
)

// ClientsHandler handles the admin client directory pages.
type ClientsHandler struct {
	clients   *store.Clients
	renderer  *render.Renderer
	sanitizer *bluemonday.Policy
}

// NewClientsHandler creates a new ClientsHandler.
func NewClientsHandler(clients *store.Clients, renderer *render.Renderer) *ClientsHandler {
	return &ClientsHandler{
		clients:   clients,
		renderer:  renderer,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// clientFieldsFromForm collects the editable client fields from a parsed
// form. Absent fields become empty strings, except block, which defaults to
// model.DefaultBlock when the form omits it entirely. The free-text
// description is stripped of markup before it is persisted.
func (h *ClientsHandler) clientFieldsFromForm(r *http.Request) model.ClientFields {
	return model.ClientFields{
		Name:        r.FormValue("name"),
		Contact:     r.FormValue("contact"),
		Society:     r.FormValue("society"),
		PlotNo:      r.FormValue("plotNo"),
		Block:       formValueDefault(r, "block", model.DefaultBlock),
		Price:       r.FormValue("price"),
		Size:        r.FormValue("size"),
		Date:        r.FormValue("date"),
		Description: h.sanitizer.Sanitize(r.FormValue("description")),
	}
}

// ClientsListData holds data for the clients list template.
type ClientsListData struct {
	Clients []model.Client
}

// List handles GET /admin/clients.
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "admin/clients_list", render.TemplateData{
		Title: "Clients",
		Data:  ClientsListData{Clients: h.clients.List()},
	})
}

// ClientFormData holds data for the client form template.
type ClientFormData struct {
	Client *model.Client
	IsEdit bool
}

// CreateForm handles GET /admin/clients/create.
func (h *ClientsHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "admin/client_form", render.TemplateData{
		Title: "Create Client",
		Data:  ClientFormData{},
	})
}

// Create handles POST /admin/clients/create. The new record is prepended,
// so it appears first in every subsequent listing.
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdmin+RouteClientsCreate) {
		return
	}

	client, err := h.clients.Create(h.clientFieldsFromForm(r))
	if err != nil {
		slog.Error("failed to create client", "error", err)
		flashError(w, r, h.renderer, redirectAdmin+RouteClientsCreate, "Failed to create client")
		return
	}

	slog.Info("client created", "client_id", client.ID, "name", client.Name)
	flashSuccess(w, r, h.renderer, redirectAdminClients, "Client created successfully!")
}

// EditForm handles GET /admin/clients/edit/{id}.
func (h *ClientsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	client, ok := h.clients.Get(id)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminClients, "Client not found")
		return
	}

	h.renderer.RenderPage(w, r, "admin/client_form", render.TemplateData{
		Title: "Edit Client",
		Data:  ClientFormData{Client: &client, IsEdit: true},
	})
}

// Edit handles POST /admin/clients/edit/{id}. Every editable field is
// overwritten from the form; a field left out of the submission resets to
// its default.
func (h *ClientsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editURL := redirectAdmin + "/clients/edit/" + id

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	client, err := h.clients.UpdateReplace(id, h.clientFieldsFromForm(r))
	switch {
	case errors.Is(err, store.ErrNotFound):
		flashError(w, r, h.renderer, redirectAdminClients, "Client not found")
	case err != nil:
		slog.Error("failed to update client", "error", err, "client_id", id)
		flashError(w, r, h.renderer, editURL, "Failed to update client")
	default:
		slog.Info("client updated", "client_id", client.ID)
		flashSuccess(w, r, h.renderer, redirectAdminClients, "Client updated successfully!")
	}
}

// Delete handles POST /admin/clients/delete/{id} with a JSON response.
// Deleting an unknown id still reports success.
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.clients.Delete(id); err != nil {
		slog.Error("failed to delete client", "error", err, "client_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete")
		return
	}
	writeJSONSuccess(w, nil)
}
