package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/common"
	"github.com/dmitrijs2005/gophadmin/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultLoginPath is the endpoint exempt from the session check.
const DefaultLoginPath = "/login"

const contentTypeJSON = "application/json;charset=UTF-8"

// HTTPClient talks to the admin REST API.
//
// Before a request leaves, the session is checked: calls other than login
// fail locally with common.ErrSessionExpired when the token is expired, and
// carry "Authorization: Bearer <token>" otherwise. After the response
// arrives, non-2xx statuses become *StatusError; a 401 additionally clears
// the session. Nothing is retried.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	session   Session
	log       logging.Logger
	loginPath string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (and its timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithLoginPath changes the endpoint that bypasses the session check.
func WithLoginPath(p string) Option {
	return func(c *HTTPClient) { c.loginPath = p }
}

// NewHTTPClient builds a client for the API at baseURL. Each call is bounded
// by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, s Session, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q: %w", baseURL, common.ErrInvalidInput)
	}

	c := &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session:   s,
		log:       logging.Nop(),
		loginPath: DefaultLoginPath,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *HTTPClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *HTTPClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Do sends r. On success the full response is returned. Failures are
// common.ErrSessionExpired (nothing sent), *StatusError (non-2xx) or the
// transport error unchanged.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Response, error) {
	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", r.Method, "path", r.Path)

	req, err := c.newRequest(ctx, r, requestID)
	if err != nil {
		return nil, err
	}

	if err := c.authorize(ctx, req, r.Path); err != nil {
		log.Warn(ctx, "request rejected locally", "error", err)
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "network error", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "reading response failed", "error", err)
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
		RequestID:  requestID,
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Debug(ctx, "request completed", "status", resp.StatusCode)
		return out, nil
	}

	return nil, c.classify(ctx, log, r, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, r Request, requestID string) (*http.Request, error) {
	u := c.baseURL.JoinPath(r.Path)
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	return req, nil
}

// authorize is the outbound half of the pipeline.
func (c *HTTPClient) authorize(ctx context.Context, req *http.Request, path string) error {
	if strings.Contains(path, c.loginPath) {
		return nil
	}

	tok, ok := c.session.ActiveToken(ctx)
	if !ok {
		if err := c.session.Clear(ctx, session.ReasonExpired); err != nil {
			c.log.Warn(ctx, "clearing expired session failed", "error", err)
		}
		return fmt.Errorf("%s %s: %w", req.Method, path, common.ErrSessionExpired)
	}

	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	return nil
}

// classify is the inbound half of the pipeline for failed responses. Only a
// 401 has a side effect; every status is returned to the caller.
func (c *HTTPClient) classify(ctx context.Context, log logging.Logger, r Request, resp *Response) error {
	serr := &StatusError{Method: r.Method, Path: r.Path, Response: resp}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		log.Warn(ctx, "unauthorized, clearing session", "status", resp.StatusCode)
		if err := c.session.Clear(ctx, session.ReasonUnauthorized); err != nil {
			log.Warn(ctx, "clearing session failed", "error", err)
		}
	case http.StatusForbidden:
		log.Warn(ctx, "access denied", "status", resp.StatusCode)
	case http.StatusNotFound:
		log.Warn(ctx, "resource not found", "status", resp.StatusCode)
	case http.StatusInternalServerError:
		log.Error(ctx, "internal server error", "status", resp.StatusCode)
	default:
		log.Error(ctx, "unexpected status", "status", resp.StatusCode)
	}
	return serr
}
