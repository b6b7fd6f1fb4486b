package router

// Route names.
const (
	NameLogin      = "login"
	NameLayout     = "layout"
	NameHome       = "home"
	NameUsers      = "users"
	NameUserDetail = "userDetail"
	NameRoles      = "roles"
	NameRoleDetail = "roleDetail"
	NameAbout      = "about"
)

// Well-known paths.
const (
	LoginPath = "/login"
	HomePath  = "/home"
)

// RedirectQueryKey carries the originally requested path to the login screen.
const RedirectQueryKey = "redirect"

// Route is one screen of the console. Path is a gorilla/mux template.
type Route struct {
	Name  string
	Path  string
	Title string

	// Anonymous routes are reachable without a session.
	Anonymous bool
	// Hidden routes are not listed in menus.
	Hidden bool
	// Redirect, when set, forwards navigation to another path.
	Redirect string
}

// DefaultRoutes is the screen table of the console.
func DefaultRoutes() []Route {
	return []Route{
		{Name: NameLogin, Path: LoginPath, Title: "Login", Anonymous: true, Hidden: true},
		{Name: NameLayout, Path: "/", Hidden: true, Redirect: HomePath},
		{Name: NameHome, Path: HomePath, Title: "Home"},
		{Name: NameUsers, Path: "/users", Title: "User management"},
		{Name: NameUserDetail, Path: "/users/{id}", Title: "User detail", Hidden: true},
		{Name: NameRoles, Path: "/roles", Title: "Role management"},
		{Name: NameRoleDetail, Path: "/roles/{id}", Title: "Role detail", Hidden: true},
		{Name: NameAbout, Path: "/about", Title: "About"},
	}
}
