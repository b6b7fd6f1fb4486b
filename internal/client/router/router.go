// Package router maps in-app paths onto console screens and runs the
// navigation guard before every screen transition.
package router

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/common"
	"github.com/dmitrijs2005/gophadmin/internal/logging"
	"github.com/gorilla/mux"
)

const maxRedirects = 5

// navigatingKey marks contexts of an ongoing Navigate call, so that
// session-ended events raised by its own guard are not handled twice.
type navigatingKey struct{}

// Location is a resolved navigation target.
type Location struct {
	Route    Route
	Path     string
	FullPath string
	Params   map[string]string
	Query    url.Values
}

// Option configures a Router.
type Option func(*Router)

func WithProgress(p Progress) Option {
	return func(r *Router) { r.progress = p }
}

func WithLogger(l logging.Logger) Option {
	return func(r *Router) { r.log = l }
}

func WithRoutes(routes []Route) Option {
	return func(r *Router) { r.routes = routes }
}

// Router resolves paths, guards navigation and tracks the current screen.
type Router struct {
	mux      *mux.Router
	routes   []Route
	byName   map[string]Route
	guard    *Guard
	session  Session
	progress Progress
	log      logging.Logger

	mu      sync.Mutex
	current *Location
	notice  string
}

// New builds a Router guarded by s.
func New(s Session, opts ...Option) *Router {
	r := &Router{
		routes:   DefaultRoutes(),
		session:  s,
		progress: nopProgress{},
		log:      logging.Nop(),
	}
	for _, o := range opts {
		o(r)
	}

	r.guard = NewGuard(s, r.log)
	r.mux = mux.NewRouter()
	r.byName = make(map[string]Route, len(r.routes))
	for _, rt := range r.routes {
		r.mux.NewRoute().Methods(http.MethodGet).Path(rt.Path).Name(rt.Name)
		r.byName[rt.Name] = rt
	}
	return r
}

// Attach subscribes the router to session-ended events: while a protected
// screen is shown, the router moves to the login screen and leaves a notice
// for the console. The returned func detaches it.
func (r *Router) Attach() (detach func()) {
	return r.session.Subscribe(r.onSessionEnded)
}

// Resolve parses target ("/users/3?tab=roles") into a Location without
// running the guard.
func (r *Router) Resolve(target string) (Location, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Location{}, fmt.Errorf("parse %q: %w", target, err)
	}

	p := u.Path
	if p == "" {
		p = "/"
	}
	p = path.Clean("/" + p)

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: p}}
	var match mux.RouteMatch
	if !r.mux.Match(req, &match) || match.Route == nil {
		return Location{}, fmt.Errorf("%s: %w", p, common.ErrRouteNotFound)
	}

	full := p
	if u.RawQuery != "" {
		full += "?" + u.RawQuery
	}
	return Location{
		Route:    r.byName[match.Route.GetName()],
		Path:     p,
		FullPath: full,
		Params:   match.Vars,
		Query:    u.Query(),
	}, nil
}

// Navigate moves to target. Route redirects and guard redirects are
// followed; the returned Location is the screen that was committed.
func (r *Router) Navigate(ctx context.Context, target string) (Location, error) {
	ctx = context.WithValue(ctx, navigatingKey{}, true)

	r.progress.Start()
	defer r.progress.Done()

	for hop := 0; hop <= maxRedirects; hop++ {
		to, err := r.Resolve(target)
		if err != nil {
			return Location{}, err
		}

		if to.Route.Redirect != "" {
			target = to.Route.Redirect
			continue
		}

		v := r.guard.Check(ctx, to)
		if v.Permit {
			r.commit(to)
			// A concurrent caller may have ended the session after the
			// guard ran; its event saw the previous screen.
			if to.Route.Anonymous || !r.session.IsExpired(ctx) {
				return to, nil
			}
			continue
		}

		r.log.Info(ctx, "navigation redirected", "from", to.FullPath, "to", v.Redirect)
		target = v.Redirect
	}
	return Location{}, fmt.Errorf("%s: %w", target, common.ErrTooManyRedirects)
}

// Current returns the committed screen.
func (r *Router) Current() (Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Location{}, false
	}
	return *r.current, true
}

// TakeNotice returns and resets the message left by a session-ended event.
func (r *Router) TakeNotice() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.notice
	r.notice = ""
	return n, n != ""
}

// Menu returns the routes visible in menus for the given login state.
func (r *Router) Menu(loggedIn bool) []Route {
	var out []Route
	for _, rt := range r.routes {
		if rt.Hidden || rt.Redirect != "" {
			continue
		}
		if loggedIn == rt.Anonymous {
			continue
		}
		out = append(out, rt)
	}
	return out
}

// PostLoginTarget returns where to go after a successful login: the
// remembered redirect of the current login screen when it resolves to an
// in-app route, otherwise the home screen.
func (r *Router) PostLoginTarget() string {
	cur, ok := r.Current()
	if !ok {
		return HomePath
	}
	target := cur.Query.Get(RedirectQueryKey)
	if target == "" || target[0] != '/' || (len(target) > 1 && target[1] == '/') {
		return HomePath
	}
	if _, err := r.Resolve(target); err != nil {
		return HomePath
	}
	return target
}

func (r *Router) commit(to Location) {
	r.mu.Lock()
	r.current = &to
	r.mu.Unlock()
}

func (r *Router) onSessionEnded(ctx context.Context, ev session.Event) {
	if nav, _ := ctx.Value(navigatingKey{}).(bool); nav {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.Route.Anonymous {
		return
	}

	target := LoginRedirect(r.current.FullPath)
	if ev.Reason == session.ReasonLogout {
		target = LoginPath
	}
	loc, err := r.Resolve(target)
	if err != nil {
		r.log.Error(ctx, "resolving login screen failed", "error", err)
		return
	}

	r.log.Info(ctx, "session ended, moving to login", "reason", ev.Reason, "from", r.current.FullPath)
	r.current = &loc
	r.notice = noticeFor(ev.Reason)
}

func noticeFor(reason session.Reason) string {
	switch reason {
	case session.ReasonUnauthorized:
		return "The server rejected your session, please log in again."
	case session.ReasonExpired:
		return "Your session has expired, please log in again."
	default:
		return ""
	}
}
