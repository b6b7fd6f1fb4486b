package router

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophadmin/internal/client/client"
	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeSession struct {
	mu       sync.Mutex
	expired  bool
	loggedIn bool
	cleared  []session.Reason
	subs     []func(context.Context, session.Event)

	// afterCheck runs once, right after the next IsExpired read.
	afterCheck func()
}

func (f *fakeSession) IsExpired(context.Context) bool {
	f.mu.Lock()
	expired, hook := f.expired, f.afterCheck
	f.afterCheck = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return expired
}

func (f *fakeSession) IsLoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *fakeSession) Clear(ctx context.Context, reason session.Reason) error {
	f.mu.Lock()
	f.cleared = append(f.cleared, reason)
	f.expired, f.loggedIn = true, false
	subs := append([]func(context.Context, session.Event){}, f.subs...)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, session.Event{Reason: reason})
	}
	return nil
}

func (f *fakeSession) Subscribe(fn func(context.Context, session.Event)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
	return func() {}
}

type countingProgress struct {
	starts, dones int
	active        bool
}

func (p *countingProgress) Start()       { p.starts++; p.active = true }
func (p *countingProgress) Done()        { p.dones++; p.active = false }
func (p *countingProgress) Active() bool { return p.active }

func live() *fakeSession    { return &fakeSession{loggedIn: true} }
func expired() *fakeSession { return &fakeSession{expired: true, loggedIn: true} }

// ---- resolve ----

func TestResolve(t *testing.T) {
	r := New(live())

	loc, err := r.Resolve("/users/42?tab=roles")
	require.NoError(t, err)
	assert.Equal(t, NameUserDetail, loc.Route.Name)
	assert.Equal(t, "42", loc.Params["id"])
	assert.Equal(t, "/users/42", loc.Path)
	assert.Equal(t, "/users/42?tab=roles", loc.FullPath)
	assert.Equal(t, "roles", loc.Query.Get("tab"))

	loc, err = r.Resolve("roles/")
	require.NoError(t, err)
	assert.Equal(t, NameRoles, loc.Route.Name)

	_, err = r.Resolve("/nowhere")
	require.ErrorIs(t, err, common.ErrRouteNotFound)
}

// ---- guard ----

func TestNavigate_ExpiredSession_RedirectsToLoginWithOrigin(t *testing.T) {
	s := expired()
	r := New(s)

	loc, err := r.Navigate(context.Background(), "/users")
	require.NoError(t, err)

	assert.Equal(t, NameLogin, loc.Route.Name)
	assert.Equal(t, "/users", loc.Query.Get(RedirectQueryKey))
	assert.Equal(t, []session.Reason{session.ReasonExpired}, s.cleared)

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, loc, cur)
}

func TestNavigate_LiveSession_Permitted(t *testing.T) {
	s := live()
	r := New(s)

	loc, err := r.Navigate(context.Background(), "/roles/7")
	require.NoError(t, err)
	assert.Equal(t, NameRoleDetail, loc.Route.Name)
	assert.Empty(t, s.cleared)
}

func TestNavigate_Login(t *testing.T) {
	t.Run("authenticated user is sent home", func(t *testing.T) {
		loc, err := New(live()).Navigate(context.Background(), "/login")
		require.NoError(t, err)
		assert.Equal(t, NameHome, loc.Route.Name)
	})

	t.Run("expired session may log in", func(t *testing.T) {
		s := expired()
		loc, err := New(s).Navigate(context.Background(), "/login")
		require.NoError(t, err)
		assert.Equal(t, NameLogin, loc.Route.Name)
		assert.Empty(t, s.cleared, "login screen never clears the session")
	})

	t.Run("live token without identity may log in", func(t *testing.T) {
		loc, err := New(&fakeSession{}).Navigate(context.Background(), "/login")
		require.NoError(t, err)
		assert.Equal(t, NameLogin, loc.Route.Name)
	})
}

func TestNavigate_RootRedirectsHome(t *testing.T) {
	loc, err := New(live()).Navigate(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, NameHome, loc.Route.Name)
}

func TestNavigate_UnknownRoute(t *testing.T) {
	r := New(live())
	_, err := r.Navigate(context.Background(), "/missing")
	require.ErrorIs(t, err, common.ErrRouteNotFound)

	_, ok := r.Current()
	assert.False(t, ok)
}

func TestNavigate_RedirectLoop(t *testing.T) {
	r := New(live(), WithRoutes([]Route{
		{Name: "a", Path: "/a", Redirect: "/b"},
		{Name: "b", Path: "/b", Redirect: "/a"},
	}))
	_, err := r.Navigate(context.Background(), "/a")
	require.ErrorIs(t, err, common.ErrTooManyRedirects)
}

func TestNavigate_ProgressStartsAndSettles(t *testing.T) {
	p := &countingProgress{}
	r := New(expired(), WithProgress(p))

	_, _ = r.Navigate(context.Background(), "/users")
	_, _ = r.Navigate(context.Background(), "/missing")

	assert.Equal(t, 2, p.starts)
	assert.Equal(t, 2, p.dones)
	assert.False(t, p.Active())
}

// ---- session events ----

func TestSessionEnded_OnProtectedScreen(t *testing.T) {
	s := live()
	r := New(s)
	r.Attach()

	_, err := r.Navigate(context.Background(), "/users?page=2")
	require.NoError(t, err)

	require.NoError(t, s.Clear(context.Background(), session.ReasonUnauthorized))

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, NameLogin, cur.Route.Name)
	assert.Equal(t, "/users?page=2", cur.Query.Get(RedirectQueryKey))

	n, ok := r.TakeNotice()
	assert.True(t, ok)
	assert.Contains(t, n, "log in again")

	_, ok = r.TakeNotice()
	assert.False(t, ok, "notice is consumed")
}

func TestSessionEnded_Logout_NoRedirectNoNotice(t *testing.T) {
	s := live()
	r := New(s)
	r.Attach()

	_, err := r.Navigate(context.Background(), "/home")
	require.NoError(t, err)
	require.NoError(t, s.Clear(context.Background(), session.ReasonLogout))

	cur, _ := r.Current()
	assert.Equal(t, LoginPath, cur.FullPath)
	_, ok := r.TakeNotice()
	assert.False(t, ok)
}

func TestSessionEnded_OnLoginScreen_Ignored(t *testing.T) {
	s := expired()
	r := New(s)
	r.Attach()

	_, err := r.Navigate(context.Background(), "/login")
	require.NoError(t, err)
	require.NoError(t, s.Clear(context.Background(), session.ReasonUnauthorized))

	cur, _ := r.Current()
	assert.Equal(t, LoginPath, cur.FullPath)
	_, ok := r.TakeNotice()
	assert.False(t, ok)
}

func TestSessionEnded_DuringGuard_NoNotice(t *testing.T) {
	s := live()
	r := New(s)
	r.Attach()

	_, err := r.Navigate(context.Background(), "/home")
	require.NoError(t, err)

	s.mu.Lock()
	s.expired = true
	s.mu.Unlock()
	loc, err := r.Navigate(context.Background(), "/roles")
	require.NoError(t, err)
	assert.Equal(t, "/roles", loc.Query.Get(RedirectQueryKey))

	_, ok := r.TakeNotice()
	assert.False(t, ok, "guard-driven redirects are reported by Navigate itself")
}

func TestSessionEnded_ConcurrentWithNavigate_EndsOnLogin(t *testing.T) {
	s := live()
	r := New(s)
	r.Attach()

	_, err := r.Navigate(context.Background(), "/home")
	require.NoError(t, err)

	// Another caller's request gets a 401 between the guard's check and
	// the commit of the new screen.
	s.afterCheck = func() {
		require.NoError(t, s.Clear(context.Background(), session.ReasonUnauthorized))
	}

	loc, err := r.Navigate(context.Background(), "/users")
	require.NoError(t, err)
	assert.Equal(t, NameLogin, loc.Route.Name)
	assert.Equal(t, "/users", loc.Query.Get(RedirectQueryKey))

	cur, _ := r.Current()
	assert.Equal(t, loc, cur)

	n, ok := r.TakeNotice()
	assert.True(t, ok)
	assert.Contains(t, n, "rejected")
}

// ---- helpers ----

func TestPostLoginTarget(t *testing.T) {
	r := New(expired())
	assert.Equal(t, HomePath, r.PostLoginTarget(), "no current screen")

	_, err := r.Navigate(context.Background(), "/users/3")
	require.NoError(t, err)
	assert.Equal(t, "/users/3", r.PostLoginTarget())

	_, err = r.Navigate(context.Background(), LoginRedirect("//evil.example"))
	require.NoError(t, err)
	assert.Equal(t, HomePath, r.PostLoginTarget())

	_, err = r.Navigate(context.Background(), LoginRedirect("/nope"))
	require.NoError(t, err)
	assert.Equal(t, HomePath, r.PostLoginTarget())
}

func TestMenu(t *testing.T) {
	r := New(live())

	var names []string
	for _, rt := range r.Menu(true) {
		names = append(names, rt.Name)
	}
	assert.Equal(t, []string{NameHome, NameUsers, NameRoles, NameAbout}, names)
	assert.Empty(t, r.Menu(false))
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/login", LoginRedirect(""))
	assert.Equal(t, "/login?redirect=%2Fusers%3Fpage%3D2", LoginRedirect("/users?page=2"))
}

// ---- with the real store ----

func TestNavigate_WithStore_ExpiredTokenClearsSlots(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	enc := base64.RawURLEncoding.EncodeToString
	tok := enc([]byte(`{}`)) + "." + enc([]byte(fmt.Sprintf(`{"exp":%d}`, time.Now().Add(-time.Hour).Unix()))) + ".s"

	store := session.NewStore(db)
	require.NoError(t, store.Start(ctx, tok, session.Identity{Name: "alice", Role: "admin"}))
	require.True(t, store.IsLoggedIn())

	r := New(store)
	r.Attach()

	loc, err := r.Navigate(ctx, "/users")
	require.NoError(t, err)
	assert.Equal(t, LoginRedirect("/users"), loc.FullPath)
	assert.False(t, store.IsLoggedIn())

	got, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
