package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophadmin/internal/common"
)

// StatusError is returned for every non-2xx response. It keeps the full
// response and matches the common status sentinels through errors.Is.
type StatusError struct {
	Method   string
	Path     string
	Response *Response
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Response.Status)
	if detail := serverMessage(e.Response.Body); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Is maps the status code onto common.ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrServer or ErrBadStatus.
func (e *StatusError) Is(target error) bool {
	return statusSentinel(e.Response.StatusCode) == target
}

// StatusCode returns the HTTP status of the failed call.
func (e *StatusError) StatusCode() int {
	return e.Response.StatusCode
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case code == http.StatusForbidden:
		return common.ErrForbidden
	case code == http.StatusNotFound:
		return common.ErrNotFound
	case code >= http.StatusInternalServerError:
		return common.ErrServer
	default:
		return common.ErrBadStatus
	}
}

// serverMessage pulls a human readable message out of a JSON error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Error != "":
		return payload.Error
	default:
		return payload.Detail
	}
}
