package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, starts a session and then opens the screen
// remembered by the login screen's redirect, or the home screen.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.session.IsAuthenticated(ctx) {
		id, _ := a.session.Identity()
		fmt.Fprintf(a.out, "Already logged in as %s.\n", id.Name)
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "user", userName, "error", err)
		a.printError(err)
		return err
	}

	a.log.Info(ctx, "login successful", "user", id.Name)
	a.printOK("Logged in as %s (%s)", id.Name, id.Role)
	return a.Go(ctx, a.router.PostLoginTarget())
}

// Logout ends the session. The router moves to the login screen on its own.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printError(err)
		return err
	}
	a.printOK("Logged out.")
	return nil
}
