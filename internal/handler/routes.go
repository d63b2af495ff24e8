// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estate-go/internal/handler/api"
	"github.com/olegiv/estate-go/internal/middleware"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
)

// Handlers bundles every HTTP handler of the application.
type Handlers struct {
	App     *AppHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
	Users   *UsersHandler
	Clients *ClientsHandler
	API     *api.ClientsHandler
}

// NewHandlers creates the full handler set over the given stores.
func NewHandlers(st *store.Stores, renderer *render.Renderer, sm *scs.SessionManager) *Handlers {
	return &Handlers{
		App:     NewAppHandler(renderer),
		Auth:    NewAuthHandler(st.Users, renderer, sm),
		Admin:   NewAdminHandler(st, renderer, sm),
		Users:   NewUsersHandler(st.Users, renderer),
		Clients: NewClientsHandler(st.Clients, renderer),
		API:     api.NewClientsHandler(st.Clients),
	}
}

// Register mounts all application routes on the router. The caller is
// expected to have wrapped the router with the session manager's
// LoadAndSave middleware.
func (h *Handlers) Register(r chi.Router, sm *scs.SessionManager, st *store.Stores) {
	// Staff authentication.
	r.Get(RouteLogin, h.Auth.LoginForm)
	r.Post(RouteLogin, h.Auth.Login)
	r.Get(RouteRegister, h.Auth.RegisterForm)
	r.Post(RouteRegister, h.Auth.Register)
	r.Get(RouteLogout, h.Auth.Logout)

	// Admin panel.
	r.Route(redirectAdmin, func(r chi.Router) {
		r.Get(RouteLogin, h.Admin.LoginForm)
		r.Post(RouteLogin, h.Admin.Login)
		r.Get(RouteLogout, h.Admin.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sm))

			r.Get(RouteRoot, h.Admin.Dashboard)
			r.Get(RouteSettings, h.Admin.SettingsForm)
			r.Post(RouteSettings, h.Admin.SettingsUpdate)

			r.Get(RouteUsersList, h.Users.List)
			r.Get(RouteUsersCreate, h.Users.CreateForm)
			r.Post(RouteUsersCreate, h.Users.Create)
			r.Get(RouteUsersEdit, h.Users.EditForm)
			r.Post(RouteUsersEdit, h.Users.Edit)

			r.Get(RouteClients, h.Clients.List)
			r.Get(RouteClientsCreate, h.Clients.CreateForm)
			r.Post(RouteClientsCreate, h.Clients.Create)
			r.Get(RouteClientsEdit, h.Clients.EditForm)
			r.Post(RouteClientsEdit, h.Clients.Edit)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminJSON(sm))

			r.Post(RouteUsersDelete, h.Users.Delete)
			r.Post(RouteClientsDelete, h.Clients.Delete)
		})
	})

	// JSON API for the client workspace.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireUserAPI(sm, st.Users))

		r.Get(RouteAPIClients, h.API.List)
		r.Post(RouteAPIClients, h.API.Create)
		r.Put(RouteAPIClientsID, h.API.Update)
		r.Delete(RouteAPIClientsID, h.API.Delete)
		r.Post(RouteAPIClientsImport, h.API.Import)
	})

	// Logged-in workspace.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(sm, st.Users))

		r.Get(RouteRoot, h.App.Home)
	})
}
