// Package upstream is the defensive client layer over the AussieMate core
// API. The upstream contract is inconsistent across deployments, so this
// package owns the compensations: bearer injection from the request context,
// forced session invalidation on 401, best-effort error message extraction,
// multi-path value hunting, and ordered endpoint-shape probing.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrUnauthorized is returned when the upstream rejects the session token.
// The configured hook has already cleared the session by the time callers
// see it.
var ErrUnauthorized = errors.New("upstream rejected the session token")

// APIError is a non-2xx upstream response with its best-effort human message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
}

// NotSupported reports whether the error looks like "this endpoint shape does
// not exist here" rather than a genuine failure.
func (e *APIError) NotSupported() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusMethodNotAllowed
}

// UnauthorizedHook runs when the upstream returns 401 for a request.
type UnauthorizedHook func(ctx context.Context)

// Client is the single configured request client for the upstream API.
type Client struct {
	http           *resty.Client
	logger         *zap.Logger
	onUnauthorized UnauthorizedHook
}

// NewClient builds the upstream client. The base URL is mandatory and the
// timeout is flat per request; there are no retries.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: hc, logger: logger}
}

// SetUnauthorizedHook installs the 401 callback (session clear).
func (c *Client) SetUnauthorizedHook(h UnauthorizedHook) {
	c.onUnauthorized = h
}

type ctxKey int

const tokenKey ctxKey = iota

// WithToken attaches the upstream bearer token to a context. The auth
// middleware does this once per request; every client call picks it up.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the upstream bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey).(string); ok {
		return v
	}
	return ""
}

func (c *Client) newRequest(ctx context.Context, query map[string]string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := TokenFromContext(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return req
}

func (c *Client) finish(ctx context.Context, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, ErrUnauthorized
	}
	if resp.IsError() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    ExtractMessage(resp.Body()),
		}
	}
	return resp.Body(), nil
}

// Do performs a JSON request and returns the raw response body.
func (c *Client) Do(ctx context.Context, method, path string, query map[string]string, body interface{}) ([]byte, error) {
	req := c.newRequest(ctx, query)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	return c.finish(ctx, resp, err)
}

// DoJSON performs a JSON request and decodes the response object.
func (c *Client) DoJSON(ctx context.Context, method, path string, query map[string]string, body interface{}) (map[string]interface{}, error) {
	raw, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			// Some write endpoints answer with plain text or an array; the
			// callers only care that the call landed.
			return map[string]interface{}{}, nil
		}
	}
	return out, nil
}

// GetInto performs a GET and decodes the response body into out.
func (c *Client) GetInto(ctx context.Context, path string, query map[string]string, out interface{}) error {
	raw, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

// PostMultipart uploads a file as multipart form data. No Content-Type is set
// by hand; the multipart writer owns the boundary.
func (c *Client) PostMultipart(ctx context.Context, path, field, fileName string, file io.Reader, fields map[string]string) (map[string]interface{}, error) {
	req := c.newRequest(ctx, nil).SetFileReader(field, fileName, file)
	if len(fields) > 0 {
		req.SetFormData(fields)
	}
	resp, err := req.Post(path)
	raw, err := c.finish(ctx, resp, err)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return map[string]interface{}{}, nil
		}
	}
	return out, nil
}

// ExtractMessage digs a human-readable message out of an upstream error body.
// Tries message, error, msg at the top level and under data; falls back to a
// generic string.
func ExtractMessage(body []byte) string {
	const fallback = "request failed"
	if len(body) == 0 {
		return fallback
	}
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return fallback
	}
	for _, key := range []string{"message", "error", "msg"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	if data, ok := m["data"].(map[string]interface{}); ok {
		for _, key := range []string{"message", "error", "msg"} {
			if s, ok := data[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}
