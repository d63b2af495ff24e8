// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/estate-go/internal/handler"
	"github.com/olegiv/estate-go/internal/render"
	"github.com/olegiv/estate-go/internal/store"
	"github.com/olegiv/estate-go/internal/testutil"
	"github.com/olegiv/estate-go/web"
)

type testApp struct {
	srv    *httptest.Server
	client *http.Client
	stores *store.Stores
}

// newTestApp boots the full application over a temporary data directory,
// with a cookie-jar client that does not follow redirects.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st, err := store.NewStores(t.TempDir())
	if err != nil {
		t.Fatalf("NewStores: %v", err)
	}

	sm := testutil.TestSessionManager()

	templates, err := web.Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	handlers := handler.NewHandlers(st, renderer, sm)
	handlers.Register(r, sm, st)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{srv: srv, client: client, stores: st}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	res, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	_ = res.Body.Close()
	return res
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	res, err := a.client.PostForm(a.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	_ = res.Body.Close()
	return res
}

func (a *testApp) jsonRequest(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func (a *testApp) loginUser(t *testing.T, username, password string) {
	t.Helper()
	if _, err := a.stores.Users.Create(username, username+"@example.com", password); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	res := a.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/" {
		t.Fatalf("login failed: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}
}

func (a *testApp) unlockAdmin(t *testing.T) {
	t.Helper()
	res := a.postForm(t, "/admin/login", url.Values{
		"password": {store.DefaultAdminPassword},
	})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin" {
		t.Fatalf("admin unlock failed: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}
}

func decodeJSON(t *testing.T, res *http.Response, dst any) {
	t.Helper()
	defer func() { _ = res.Body.Close() }()
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHome_AnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	res := app.get(t, "/")
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)

	res := app.postForm(t, "/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret"},
	})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/login" {
		t.Fatalf("register: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}

	res = app.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret"},
	})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/" {
		t.Fatalf("login: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}

	if res = app.get(t, "/"); res.StatusCode != http.StatusOK {
		t.Errorf("workspace after login: status = %d, want 200", res.StatusCode)
	}

	res = app.get(t, "/logout")
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/login" {
		t.Fatalf("logout: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}

	if res = app.get(t, "/"); res.StatusCode != http.StatusSeeOther {
		t.Errorf("workspace after logout: status = %d, want 303", res.StatusCode)
	}
}

func TestRegister_DuplicateUsernameBouncesBack(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret"},
	}
	app.postForm(t, "/register", form)

	res := app.postForm(t, "/register", form)
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/register" {
		t.Errorf("duplicate register: status=%d location=%q, want bounce to /register",
			res.StatusCode, res.Header.Get("Location"))
	}
}

func TestLogin_WrongPasswordBouncesBack(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.stores.Users.Create("alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := app.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/login" {
		t.Errorf("wrong password: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestAdmin_DashboardConsumesSession(t *testing.T) {
	app := newTestApp(t)
	app.unlockAdmin(t)

	if res := app.get(t, "/admin"); res.StatusCode != http.StatusOK {
		t.Fatalf("first dashboard visit: status = %d, want 200", res.StatusCode)
	}

	// The first render consumed the session, so the second visit re-prompts.
	res := app.get(t, "/admin")
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/login" {
		t.Errorf("second dashboard visit: status=%d location=%q, want bounce to /admin/login",
			res.StatusCode, res.Header.Get("Location"))
	}
}

func TestAdmin_SettingsConsumesSession(t *testing.T) {
	app := newTestApp(t)
	app.unlockAdmin(t)

	if res := app.get(t, "/admin/settings"); res.StatusCode != http.StatusOK {
		t.Fatalf("settings visit: status = %d, want 200", res.StatusCode)
	}

	res := app.get(t, "/admin/settings")
	if res.StatusCode != http.StatusSeeOther {
		t.Errorf("second settings visit: status = %d, want 303", res.StatusCode)
	}
}

func TestAdmin_WrongPasswordStaysLocked(t *testing.T) {
	app := newTestApp(t)

	res := app.postForm(t, "/admin/login", url.Values{"password": {"wrong"}})
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/login" {
		t.Fatalf("wrong admin password: status=%d location=%q", res.StatusCode, res.Header.Get("Location"))
	}

	if res = app.get(t, "/admin"); res.StatusCode != http.StatusSeeOther {
		t.Errorf("dashboard stays locked: status = %d, want 303", res.StatusCode)
	}
}

func TestAdmin_SettingsUpdateChangesPassword(t *testing.T) {
	app := newTestApp(t)
	app.unlockAdmin(t)

	res := app.postForm(t, "/admin/settings", url.Values{
		"current_password": {store.DefaultAdminPassword},
		"new_password":     {"fresh-secret"},
		"confirm_password": {"fresh-secret"},
	})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("settings update: status = %d, want 303", res.StatusCode)
	}

	if got := app.stores.Admin.Password(); got != "fresh-secret" {
		t.Errorf("stored admin password = %q, want %q", got, "fresh-secret")
	}
}

func TestAdmin_SettingsUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{
			"wrong current password",
			url.Values{
				"current_password": {"wrong"},
				"new_password":     {"fresh-secret"},
				"confirm_password": {"fresh-secret"},
			},
		},
		{
			"confirmation mismatch",
			url.Values{
				"current_password": {store.DefaultAdminPassword},
				"new_password":     {"fresh-secret"},
				"confirm_password": {"other-secret"},
			},
		},
		{
			"too short",
			url.Values{
				"current_password": {store.DefaultAdminPassword},
				"new_password":     {"abc"},
				"confirm_password": {"abc"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.unlockAdmin(t)

			res := app.postForm(t, "/admin/settings", tt.form)
			if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/settings" {
				t.Fatalf("status=%d location=%q, want bounce to /admin/settings",
					res.StatusCode, res.Header.Get("Location"))
			}
			if got := app.stores.Admin.Password(); got != store.DefaultAdminPassword {
				t.Errorf("password changed to %q despite invalid form", got)
			}
		})
	}
}

func TestAdmin_UserAndClientPagesDoNotConsume(t *testing.T) {
	app := newTestApp(t)
	app.unlockAdmin(t)

	// Management pages check the flag without consuming it.
	for _, path := range []string{"/admin/users/list", "/admin/clients", "/admin/users/list"} {
		if res := app.get(t, path); res.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, res.StatusCode)
		}
	}
}

func TestAdmin_DeleteEndpointsAnswer401WhenLocked(t *testing.T) {
	app := newTestApp(t)

	res, err := app.client.Post(app.srv.URL+"/admin/users/delete/123", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", res.StatusCode)
	}
}

func TestAPI_RequiresUserSession(t *testing.T) {
	app := newTestApp(t)

	res := app.jsonRequest(t, http.MethodGet, "/api/clients", nil)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", res.StatusCode)
	}
}

func TestAPI_ClientLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.loginUser(t, "alice", "secret")

	// Create
	res := app.jsonRequest(t, http.MethodPost, "/api/clients", map[string]string{
		"name":  "Bob",
		"price": "100000",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", res.StatusCode)
	}
	var created map[string]any
	decodeJSON(t, res, &created)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created client has no id")
	}
	if created["createdAt"] == nil {
		t.Error("created client has no createdAt")
	}

	// List: new record is first
	res = app.jsonRequest(t, http.MethodGet, "/api/clients", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", res.StatusCode)
	}
	var list []map[string]any
	decodeJSON(t, res, &list)
	if len(list) != 1 || list[0]["name"] != "Bob" {
		t.Fatalf("list = %v, want single client Bob", list)
	}

	// Merge patch: price changes, name survives
	res = app.jsonRequest(t, http.MethodPut, "/api/clients/"+id, map[string]string{
		"price": "120000",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update: status = %d, want 200", res.StatusCode)
	}
	var updated map[string]any
	decodeJSON(t, res, &updated)
	if updated["price"] != "120000" || updated["name"] != "Bob" {
		t.Errorf("updated = %v, want price=120000 name=Bob", updated)
	}

	// Delete
	res = app.jsonRequest(t, http.MethodDelete, "/api/clients/"+id, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("delete: status = %d, want 200", res.StatusCode)
	}
	_ = res.Body.Close()

	// Delete again: still a success
	res = app.jsonRequest(t, http.MethodDelete, "/api/clients/"+id, nil)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("second delete: status = %d, want 200", res.StatusCode)
	}
}

func TestAPI_UpdateUnknownClient(t *testing.T) {
	app := newTestApp(t)
	app.loginUser(t, "alice", "secret")

	res := app.jsonRequest(t, http.MethodPut, "/api/clients/12345", map[string]string{"price": "1"})
	_ = res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.StatusCode)
	}
}

func TestAPI_CreateInvalidBody(t *testing.T) {
	app := newTestApp(t)
	app.loginUser(t, "alice", "secret")

	req, err := http.NewRequest(http.MethodPost, app.srv.URL+"/api/clients", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := app.client.Do(req)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestAPI_CreateSanitizesDescription(t *testing.T) {
	app := newTestApp(t)
	app.loginUser(t, "alice", "secret")

	res := app.jsonRequest(t, http.MethodPost, "/api/clients", map[string]string{
		"name":        "Bob",
		"description": `<script>alert(1)</script>plot notes`,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", res.StatusCode)
	}
	var created map[string]any
	decodeJSON(t, res, &created)
	if created["description"] != "plot notes" {
		t.Errorf("description = %q, want markup stripped", created["description"])
	}
}

func TestAPI_Import(t *testing.T) {
	app := newTestApp(t)
	app.loginUser(t, "alice", "secret")

	// Seed a record that the import must wipe.
	app.jsonRequest(t, http.MethodPost, "/api/clients", map[string]string{"name": "Old"})

	res := app.jsonRequest(t, http.MethodPost, "/api/clients/import", []map[string]string{
		{"id": "1", "name": "Imported One"},
		{"id": "2", "name": "Imported Two"},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("import: status = %d, want 200", res.StatusCode)
	}
	var result map[string]any
	decodeJSON(t, res, &result)
	if result["success"] != true || result["count"] != float64(2) {
		t.Errorf("import result = %v, want success=true count=2", result)
	}

	res = app.jsonRequest(t, http.MethodGet, "/api/clients", nil)
	var list []map[string]any
	decodeJSON(t, res, &list)
	if len(list) != 2 || list[0]["name"] != "Imported One" {
		t.Errorf("list after import = %v, want the two imported records", list)
	}
}

func TestAdminSessionIndependentOfUserSession(t *testing.T) {
	app := newTestApp(t)
	app.unlockAdmin(t)

	// Admin unlock alone does not grant API access.
	res := app.jsonRequest(t, http.MethodGet, "/api/clients", nil)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("API with only admin session: status = %d, want 401", res.StatusCode)
	}
}
