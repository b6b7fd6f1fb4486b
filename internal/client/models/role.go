package models

import "net/url"

// Role groups permissions assigned to users.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type RoleList struct {
	Roles    []Role `json:"roles"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type RoleQuery struct {
	RoleName string
	Page     int
	PageSize int
}

func (q RoleQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "role_name", q.RoleName)
	setPage(v, q.Page, q.PageSize)
	return v
}

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
