// Package models holds the request and response shapes of the admin API.
package models

import (
	"net/url"
	"strconv"
)

// User is an account managed through the console.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UserList is one page of users.
type UserList struct {
	Users    []User `json:"users"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// UserQuery filters the user list. Zero values are not sent.
type UserQuery struct {
	Username string
	Email    string
	Role     string
	Phone    string
	IsActive *bool
	Page     int
	PageSize int
}

// Values encodes q as query parameters.
func (q UserQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "username", q.Username)
	setString(v, "email", q.Email)
	setString(v, "role", q.Role)
	setString(v, "phone", q.Phone)
	if q.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	setPage(v, q.Page, q.PageSize)
	return v
}

// CreateUserRequest is the body of POST /userusers.
type CreateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UpdateUserRequest is the body of PUT /userusers/{id}; only set fields change.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setPage(v url.Values, page, size int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		v.Set("page_size", strconv.Itoa(size))
	}
}
