package cli

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/models"
	"github.com/dmitrijs2005/gophadmin/internal/common"
)

// AddUser prompts for the fields of a new account and creates it.
func (a *App) AddUser(ctx context.Context) error {
	if !a.enter(ctx, "/users") {
		return nil
	}

	var req models.CreateUserRequest
	var err error
	if req.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.Role, err = getSimpleText(a.reader, "Role", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	if req.IsActive, err = GetOptionalBool(a.reader, "Active", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	u, err := a.userService.Create(ctx, req)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printOK("User %s created.", u.Username)
	a.printUser(u)
	return nil
}

// EditUser prompts for new values; empty answers keep the current ones.
func (a *App) EditUser(ctx context.Context, id string) error {
	if !a.enter(ctx, "/users/"+url.PathEscape(id)) {
		return nil
	}

	var req models.UpdateUserRequest
	var err error
	if req.Username, err = getSimpleText(a.reader, "Username (empty to keep)", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email (empty to keep)", a.out); err != nil {
		return err
	}
	if req.Role, err = getSimpleText(a.reader, "Role (empty to keep)", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (empty to keep)", a.out); err != nil {
		return err
	}
	if req.IsActive, err = GetOptionalBool(a.reader, "Active", a.out); err != nil {
		return err
	}

	u, err := a.userService.Update(ctx, id, req)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printOK("User %s updated.", u.Username)
	a.printUser(u)
	return nil
}

// DeleteUser removes a user after confirmation.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	if !a.enter(ctx, "/users/"+url.PathEscape(id)) {
		return nil
	}
	if !a.confirm("Delete user " + id + "?") {
		return nil
	}
	if err := a.userService.Delete(ctx, id); err != nil {
		a.printError(err)
		return err
	}
	a.printOK("User %s deleted.", id)
	return nil
}

func (a *App) confirm(prompt string) bool {
	answer, err := GetOptionalBool(a.reader, prompt, a.out)
	return err == nil && answer != nil && *answer
}
