package router

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/logging"
)

// Session is the part of the session store navigation depends on.
type Session interface {
	IsExpired(ctx context.Context) bool
	IsLoggedIn() bool
	Clear(ctx context.Context, reason session.Reason) error
	Subscribe(fn func(context.Context, session.Event)) (unsubscribe func())
}

// Verdict is the outcome of a guard check: either permitted, or redirected
// to another in-app path.
type Verdict struct {
	Permit   bool
	Redirect string
}

// Guard decides whether a navigation may commit.
//
// Token expiry is the authority: every non-anonymous destination requires a
// live token, and a stale identity is cleared on the way to the login
// screen. An authenticated user is sent away from the login screen.
type Guard struct {
	session Session
	log     logging.Logger
}

func NewGuard(s Session, log logging.Logger) *Guard {
	return &Guard{session: s, log: log}
}

// Check evaluates the guard for destination to.
func (g *Guard) Check(ctx context.Context, to Location) Verdict {
	if to.Route.Name == NameLogin {
		if g.session.IsLoggedIn() && !g.session.IsExpired(ctx) {
			return Verdict{Redirect: HomePath}
		}
		return Verdict{Permit: true}
	}

	if to.Route.Anonymous {
		return Verdict{Permit: true}
	}

	if g.session.IsExpired(ctx) {
		if err := g.session.Clear(ctx, session.ReasonExpired); err != nil {
			g.log.Warn(ctx, "clearing expired session failed", "error", err)
		}
		return Verdict{Redirect: LoginRedirect(to.FullPath)}
	}
	return Verdict{Permit: true}
}

// LoginRedirect returns the login path remembering from for the return trip.
func LoginRedirect(from string) string {
	if from == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{RedirectQueryKey: {from}}.Encode()
}
