// Package services contains the application services of the console.
// This file defines authentication: login against the API, logout, and the
// profile lookup used when a bare token is restored.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophadmin/internal/client/client"
	"github.com/dmitrijs2005/gophadmin/internal/client/models"
	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/common"
)

// LoginPath is the login endpoint of the API.
const LoginPath = "/login"

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login: exchange credentials for a token and start the session.
//   - Logout: end the session locally.
//   - ProfileLoader: resolve the identity behind a restored token.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Identity, error)
	Logout(ctx context.Context) error
	ProfileLoader(path string) session.ProfileLoader
}

// SessionWriter is the part of the session store the auth service drives.
type SessionWriter interface {
	Start(ctx context.Context, token string, id session.Identity) error
	Clear(ctx context.Context, reason session.Reason) error
}

type authService struct {
	client  client.Client
	session SessionWriter
}

// NewAuthService constructs an AuthService bound to the API client and the
// session store.
func NewAuthService(c client.Client, s SessionWriter) AuthService {
	return &authService{client: c, session: s}
}

// Login posts the credentials, then persists the returned token and the
// identity {username, role}. The password is sent as-is; callers wipe it.
func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Identity, error) {
	resp, err := a.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   LoginPath,
		Body:   models.LoginRequest{Username: username, Password: string(password)},
	})
	if err != nil {
		return session.Identity{}, fmt.Errorf("login error: %w", err)
	}

	var lr models.LoginResponse
	if err := resp.JSON(&lr); err != nil {
		return session.Identity{}, fmt.Errorf("decode login response: %w", err)
	}
	tok := lr.BearerToken()
	if tok == "" {
		return session.Identity{}, fmt.Errorf("login response carries no token: %w", common.ErrInvalidInput)
	}

	id := session.Identity{Name: lr.Username, Role: lr.Role}
	if id.Name == "" {
		id.Name = username
	}
	if err := a.session.Start(ctx, tok, id); err != nil {
		return session.Identity{}, err
	}
	return id, nil
}

// Logout clears the local session. The API keeps no server-side session.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx, session.ReasonLogout)
}

// ProfileLoader returns a loader that fetches the current user from path.
func (a *authService) ProfileLoader(path string) session.ProfileLoader {
	return func(ctx context.Context) (session.Identity, error) {
		resp, err := a.client.Get(ctx, path, nil)
		if err != nil {
			return session.Identity{}, err
		}
		var p models.Profile
		if err := resp.JSON(&p); err != nil {
			return session.Identity{}, fmt.Errorf("decode profile: %w", err)
		}
		if p.DisplayName() == "" {
			return session.Identity{}, fmt.Errorf("profile without name: %w", common.ErrInvalidInput)
		}
		return session.Identity{Name: p.DisplayName(), Role: p.Role}, nil
	}
}
