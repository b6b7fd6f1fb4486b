package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophadmin/internal/client/session"
)

// Client is the transport contract used by the console services.
type Client interface {
	Do(ctx context.Context, r Request) (*Response, error)
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// Session is the part of the session store the client depends on.
type Session interface {
	ActiveToken(ctx context.Context) (tok string, ok bool)
	Clear(ctx context.Context, reason session.Reason) error
}

// Request describes one outbound call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Response is the complete answer of the remote API, handed back to the
// caller as-is.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	// RequestID is the X-Request-ID the call was sent with.
	RequestID string
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
