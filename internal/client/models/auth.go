package models

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login. Servers name the token either
// "access_token" or "token".
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// BearerToken returns whichever token field is set.
func (r LoginResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Profile is the identity returned by a profile endpoint.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// DisplayName prefers the username over the free-form name.
func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.Name
}
