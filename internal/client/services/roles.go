package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/client"
	"github.com/dmitrijs2005/gophadmin/internal/client/models"
)

const rolesPath = "/role/roles"

// RoleService manages roles through the API.
type RoleService interface {
	List(ctx context.Context, q models.RoleQuery) (*models.RoleList, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, req models.CreateRoleRequest) (*models.Role, error)
	Update(ctx context.Context, id string, req models.UpdateRoleRequest) (*models.Role, error)
	Delete(ctx context.Context, id string) error
}

type roleService struct {
	client client.Client
}

func NewRoleService(c client.Client) RoleService {
	return &roleService{client: c}
}

func (s *roleService) List(ctx context.Context, q models.RoleQuery) (*models.RoleList, error) {
	resp, err := s.client.Get(ctx, rolesPath, q.Values())
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var out models.RoleList
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &out, nil
}

func (s *roleService) Get(ctx context.Context, id string) (*models.Role, error) {
	resp, err := s.client.Get(ctx, rolePath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get role %s: %w", id, err)
	}
	return decodeRole(resp)
}

func (s *roleService) Create(ctx context.Context, req models.CreateRoleRequest) (*models.Role, error) {
	resp, err := s.client.Post(ctx, rolesPath, req)
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return decodeRole(resp)
}

func (s *roleService) Update(ctx context.Context, id string, req models.UpdateRoleRequest) (*models.Role, error) {
	resp, err := s.client.Put(ctx, rolePath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update role %s: %w", id, err)
	}
	return decodeRole(resp)
}

func (s *roleService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, rolePath(id)); err != nil {
		return fmt.Errorf("delete role %s: %w", id, err)
	}
	return nil
}

func rolePath(id string) string {
	return rolesPath + "/" + url.PathEscape(id)
}

func decodeRole(resp *client.Response) (*models.Role, error) {
	var r models.Role
	if err := resp.JSON(&r); err != nil {
		return nil, fmt.Errorf("decode role: %w", err)
	}
	return &r, nil
}
