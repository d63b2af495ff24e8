// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"

	"github.com/olegiv/estate-go/internal/model"
	"github.com/olegiv/estate-go/internal/store"
)

// editableFields are the JSON keys accepted by create and merge-patch
// payloads. Identity fields (id, createdAt) are never writable through the
// API.
var editableFields = []string{
	"name", "contact", "society", "plotNo", "block",
	"price", "size", "date", "description",
}

// ClientsHandler serves /api/clients.
type ClientsHandler struct {
	clients   *store.Clients
	sanitizer *bluemonday.Policy
}

// NewClientsHandler creates a new ClientsHandler.
func NewClientsHandler(clients *store.Clients) *ClientsHandler {
	return &ClientsHandler{
		clients:   clients,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// List handles GET /api/clients, returning the full collection in stored
// order.
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.clients.List())
}

// Create handles POST /api/clients. The record is built from the supplied
// fields plus a generated id and creation timestamp, and prepended to the
// collection.
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !gjson.ValidBytes(body) {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fields := model.ClientFields{
		Name:        gjson.GetBytes(body, "name").String(),
		Contact:     gjson.GetBytes(body, "contact").String(),
		Society:     gjson.GetBytes(body, "society").String(),
		PlotNo:      gjson.GetBytes(body, "plotNo").String(),
		Block:       gjson.GetBytes(body, "block").String(),
		Price:       gjson.GetBytes(body, "price").String(),
		Size:        gjson.GetBytes(body, "size").String(),
		Date:        gjson.GetBytes(body, "date").String(),
		Description: h.sanitizer.Sanitize(gjson.GetBytes(body, "description").String()),
	}

	client, err := h.clients.Create(fields)
	if err != nil {
		slog.Error("failed to save client", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// Update handles PUT /api/clients/{id} as a merge patch: only the keys
// present in the body overwrite the stored record, every other field
// survives untouched.
func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(r.Body)
	if err != nil || !gjson.ValidBytes(body) {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	patch := make(map[string]string)
	for _, key := range editableFields {
		if v := gjson.GetBytes(body, key); v.Exists() {
			value := v.String()
			if key == "description" {
				value = h.sanitizer.Sanitize(value)
			}
			patch[key] = value
		}
	}

	client, err := h.clients.UpdateMerge(id, patch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Client not found")
	case err != nil:
		slog.Error("failed to update client", "error", err, "client_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Failed to update")
	default:
		writeJSON(w, http.StatusOK, client)
	}
}

// Delete handles DELETE /api/clients/{id}. Deleting an unknown id still
// reports success.
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.clients.Delete(id); err != nil {
		slog.Error("failed to delete client", "error", err, "client_id", id)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Import handles POST /api/clients/import. The posted array replaces the
// whole collection verbatim; there is no merge with existing records.
func (h *ClientsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var records []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	count, err := h.clients.Import(records)
	if err != nil {
		slog.Error("failed to import clients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to import")
		return
	}

	slog.Info("clients imported", "count", count)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}
