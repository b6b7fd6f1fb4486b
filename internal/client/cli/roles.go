package cli

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/models"
)

// AddRole prompts for a name and description and creates the role.
func (a *App) AddRole(ctx context.Context) error {
	if !a.enter(ctx, "/roles") {
		return nil
	}

	var req models.CreateRoleRequest
	var err error
	if req.Name, err = getSimpleText(a.reader, "Role name", a.out); err != nil {
		return err
	}
	if req.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}

	r, err := a.roleService.Create(ctx, req)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printOK("Role %s created.", r.Name)
	a.printRole(r)
	return nil
}

func (a *App) EditRole(ctx context.Context, id string) error {
	if !a.enter(ctx, "/roles/"+url.PathEscape(id)) {
		return nil
	}

	var req models.UpdateRoleRequest
	var err error
	if req.Name, err = getSimpleText(a.reader, "Role name (empty to keep)", a.out); err != nil {
		return err
	}
	if req.Description, err = getSimpleText(a.reader, "Description (empty to keep)", a.out); err != nil {
		return err
	}

	r, err := a.roleService.Update(ctx, id, req)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printOK("Role %s updated.", r.Name)
	a.printRole(r)
	return nil
}

func (a *App) DeleteRole(ctx context.Context, id string) error {
	if !a.enter(ctx, "/roles/"+url.PathEscape(id)) {
		return nil
	}
	if !a.confirm("Delete role " + id + "?") {
		return nil
	}
	if err := a.roleService.Delete(ctx, id); err != nil {
		a.printError(err)
		return err
	}
	a.printOK("Role %s deleted.", id)
	return nil
}
