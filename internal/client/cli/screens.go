package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophadmin/internal/buildinfo"
	"github.com/dmitrijs2005/gophadmin/internal/client/models"
	"github.com/dmitrijs2005/gophadmin/internal/client/router"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Go navigates to target and renders whatever screen the router commits,
// which is the login screen whenever the guard refuses target.
func (a *App) Go(ctx context.Context, target string) error {
	loc, err := a.router.Navigate(ctx, target)
	if err != nil {
		a.printError(err)
		return err
	}
	return a.render(ctx, loc)
}

// enter moves to target without rendering it. It reports false when the
// guard sent the user to the login screen instead.
func (a *App) enter(ctx context.Context, target string) bool {
	loc, err := a.router.Navigate(ctx, target)
	if err != nil {
		a.printError(err)
		return false
	}
	if loc.Route.Name == router.NameLogin {
		noticeColor.Fprintln(a.out, "Please log in first (type 'login').")
		return false
	}
	return true
}

func (a *App) render(ctx context.Context, loc router.Location) error {
	titleColor.Fprintln(a.out, loc.Route.Title)

	switch loc.Route.Name {
	case router.NameLogin:
		fmt.Fprintln(a.out, "You are not logged in. Type 'login' to authenticate.")
		return nil
	case router.NameHome:
		a.renderHome()
		return nil
	case router.NameUsers:
		return a.renderUsers(ctx, loc.Query)
	case router.NameUserDetail:
		return a.renderUser(ctx, loc.Params["id"])
	case router.NameRoles:
		return a.renderRoles(ctx, loc.Query)
	case router.NameRoleDetail:
		return a.renderRole(ctx, loc.Params["id"])
	case router.NameAbout:
		a.renderAbout()
		return nil
	default:
		return nil
	}
}

func (a *App) renderHome() {
	if id, ok := a.session.Identity(); ok {
		fmt.Fprintf(a.out, "Welcome, %s (%s)\n", id.Name, id.Role)
	}
	for _, rt := range a.menu() {
		fmt.Fprintf(a.out, "  %-8s %s\n", rt.Path, rt.Title)
	}
}

func (a *App) renderAbout() {
	fmt.Fprintf(a.out, "%s %s\n", a.config.AppName, a.config.AppVersion)
	fmt.Fprintf(a.out, "API: %s\n", a.config.BaseURL)
	buildinfo.PrintBuildData(a.out)
}

func (a *App) renderUsers(ctx context.Context, q url.Values) error {
	query, err := userQuery(q)
	if err != nil {
		a.printError(err)
		return err
	}
	list, err := a.userService.List(ctx, query)
	if err != nil {
		a.printError(err)
		return err
	}

	tw := newTable(a.out)
	tw.AppendHeader(table.Row{"ID", "Username", "Email", "Role", "Phone", "Active"})
	for _, u := range list.Users {
		tw.AppendRow(table.Row{u.ID, u.Username, u.Email, u.Role, u.Phone, u.IsActive})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "Total", list.Total})
	tw.Render()
	return nil
}

func (a *App) renderUser(ctx context.Context, id string) error {
	u, err := a.userService.Get(ctx, id)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printUser(u)
	return nil
}

func (a *App) printUser(u *models.User) {
	tw := newTable(a.out)
	tw.AppendRows([]table.Row{
		{"ID", u.ID},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Role", u.Role},
		{"Phone", u.Phone},
		{"Active", u.IsActive},
		{"Created", u.CreatedAt},
		{"Updated", u.UpdatedAt},
	})
	tw.Render()
}

func (a *App) renderRoles(ctx context.Context, q url.Values) error {
	query, err := roleQuery(q)
	if err != nil {
		a.printError(err)
		return err
	}
	list, err := a.roleService.List(ctx, query)
	if err != nil {
		a.printError(err)
		return err
	}

	tw := newTable(a.out)
	tw.AppendHeader(table.Row{"ID", "Name", "Description"})
	for _, r := range list.Roles {
		tw.AppendRow(table.Row{r.ID, r.Name, r.Description})
	}
	tw.AppendFooter(table.Row{"", "Total", list.Total})
	tw.Render()
	return nil
}

func (a *App) renderRole(ctx context.Context, id string) error {
	r, err := a.roleService.Get(ctx, id)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printRole(r)
	return nil
}

func (a *App) printRole(r *models.Role) {
	tw := newTable(a.out)
	tw.AppendRows([]table.Row{
		{"ID", r.ID},
		{"Name", r.Name},
		{"Description", r.Description},
		{"Created", r.CreatedAt},
		{"Updated", r.UpdatedAt},
	})
	tw.Render()
}

// WhoAmI prints the identity and the expiry of the stored token.
func (a *App) WhoAmI(ctx context.Context) error {
	id, ok := a.session.Identity()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	name := id.Name
	if id.Placeholder {
		name += " (placeholder)"
	}
	expires := "unknown"
	if exp, ok := a.session.ExpiresAt(ctx); ok {
		expires = exp.Local().Format(time.RFC3339)
	}
	if a.session.IsExpired(ctx) {
		expires += " (expired)"
	}

	tw := newTable(a.out)
	tw.AppendRows([]table.Row{
		{"User", name},
		{"Role", id.Role},
		{"Token expires", expires},
	})
	tw.Render()
	return nil
}

func (a *App) menu() []router.Route {
	return a.router.Menu(a.isLoggedIn())
}

func (a *App) takeNotice() (string, bool) {
	return a.router.TakeNotice()
}

// screenPath builds "/users?role=admin" from a base path and key=value args.
func screenPath(base string, args []string) (string, error) {
	if len(args) == 0 {
		return base, nil
	}
	v := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return "", fmt.Errorf("expected key=value, got %q", arg)
		}
		v.Add(key, value)
	}
	return base + "?" + v.Encode(), nil
}

func userQuery(v url.Values) (models.UserQuery, error) {
	q := models.UserQuery{
		Username: v.Get("username"),
		Email:    v.Get("email"),
		Role:     v.Get("role"),
		Phone:    v.Get("phone"),
	}
	if s := v.Get("is_active"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, fmt.Errorf("is_active: %w", err)
		}
		q.IsActive = &b
	}
	var err error
	if q.Page, q.PageSize, err = paging(v); err != nil {
		return q, err
	}
	return q, nil
}

func roleQuery(v url.Values) (models.RoleQuery, error) {
	q := models.RoleQuery{RoleName: v.Get("role_name")}
	var err error
	if q.Page, q.PageSize, err = paging(v); err != nil {
		return q, err
	}
	return q, nil
}

func paging(v url.Values) (page, size int, err error) {
	if s := v.Get("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil {
			return 0, 0, fmt.Errorf("page: %w", err)
		}
	}
	if s := v.Get("page_size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			return 0, 0, fmt.Errorf("page_size: %w", err)
		}
	}
	return page, size, nil
}
