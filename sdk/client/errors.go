package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrTransport wraps failures that happened before a response arrived.
	ErrTransport = errors.New("transport failure")
	// ErrNotFound matches an HTTPError with status 404.
	ErrNotFound = errors.New("not found")
)

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func restyErr(method, path string, resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	if len(body) > 512 {
		body = body[:512]
	}
	return &HTTPError{Method: method, Path: path, StatusCode: resp.StatusCode(), Status: resp.Status(), Body: body}
}
