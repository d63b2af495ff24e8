package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// Admin panel routes, relative to the /admin mount.
	RouteSettings      = "/settings"
	RouteUsersList     = "/users/list"
	RouteUsersCreate   = "/users/create"
	RouteUsersEdit     = "/users/edit" + RouteParamID
	RouteUsersDelete   = "/users/delete" + RouteParamID
	RouteClients       = "/clients"
	RouteClientsCreate = "/clients/create"
	RouteClientsEdit   = "/clients/edit" + RouteParamID
	RouteClientsDelete = "/clients/delete" + RouteParamID

	// API routes, relative to the /api mount.
	RouteAPIClients       = "/clients"
	RouteAPIClientsID     = "/clients" + RouteParamID
	RouteAPIClientsImport = "/clients/import"
)

const (
	redirectRoot          = "/"
	redirectLogin         = RouteLogin
	redirectRegister      = RouteRegister
	redirectAdmin         = "/admin"
	redirectAdminLogin    = "/admin/login"
	redirectAdminSettings = redirectAdmin + RouteSettings
	redirectAdminUsers    = redirectAdmin + RouteUsersList
	redirectAdminClients  = redirectAdmin + RouteClients
)
