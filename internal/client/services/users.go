package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/client"
	"github.com/dmitrijs2005/gophadmin/internal/client/models"
)

const usersPath = "/userusers"

// UserService manages user accounts through the API.
type UserService interface {
	List(ctx context.Context, q models.UserQuery) (*models.UserList, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) List(ctx context.Context, q models.UserQuery) (*models.UserList, error) {
	resp, err := s.client.Get(ctx, usersPath, q.Values())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var out models.UserList
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return &out, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	resp, err := s.client.Get(ctx, userPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return decodeUser(resp)
}

func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	resp, err := s.client.Post(ctx, usersPath, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return decodeUser(resp)
}

func (s *userService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	resp, err := s.client.Put(ctx, userPath(id), req)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return decodeUser(resp)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, userPath(id)); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}

func decodeUser(resp *client.Response) (*models.User, error) {
	var u models.User
	if err := resp.JSON(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
