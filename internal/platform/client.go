// internal/platform/client.go
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single backend call when the caller's context
// carries no earlier deadline.
const DefaultTimeout = 30 * time.Second

// Client is the HTTP adapter for the platform backend. It is stateless per
// call: the bearer token travels in the request context (WithToken), never in
// the client itself, so one Client serves every session.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New builds a client for the given base URL (e.g.
// "https://api.lovebiteglobal.com/api/v1"). A zero timeout means
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("platform: base URL is empty")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("platform: invalid base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:    u,
		http:    &http.Client{},
		timeout: timeout,
		log:     logger,
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.base.String() }

type tokenKey struct{}

// WithToken attaches a bearer token to ctx for the duration of a call chain.
// The session layer is the single writer of tokens; the adapter only reads.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx, if any.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

// envelope is the uniform response wrapper the backend uses everywhere.
type envelope struct {
	Status     string              `json:"status"`
	Data       json.RawMessage     `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

// do issues one request and decodes the envelope's data field into out.
// It returns the pagination block when the backend sent one.
//
// Empty params are never serialized (the values() builders drop them), the
// bearer token is attached when present in ctx, and every failure mode is
// folded into *Error here and nowhere else.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) (*Pagination, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("platform: encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("platform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.Warn("backend call timed out",
				zap.String("method", method),
				zap.String("path", path),
				zap.Duration("elapsed", time.Since(start)))
			return nil, timeoutError(err)
		}
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, netError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		// The deadline can also expire mid-body.
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			c.log.Warn("backend call timed out",
				zap.String("method", method),
				zap.String("path", path),
				zap.Duration("elapsed", time.Since(start)))
			return nil, timeoutError(err)
		}
		return nil, netError(err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on a non-2xx status still yields a useful error
		// below, so decode failures only matter for success responses.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, &Error{
				StatusCode: resp.StatusCode,
				Message:    "backend returned an unreadable response",
				cause:      err,
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{
			StatusCode:  resp.StatusCode,
			Message:     msg,
			FieldErrors: env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{
				StatusCode: resp.StatusCode,
				Message:    "backend returned an unexpected payload",
				cause:      err,
			}
		}
	}
	return env.Pagination, nil
}

// Ping reports whether the backend is reachable. Any HTTP answer counts,
// including 401 from the unauthenticated probe; only transport-level
// failures and timeouts are errors.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/admin/auth/profile", nil, nil)
	if err == nil || !(IsNetwork(err) || IsTimeout(err)) {
		return nil
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (*Pagination, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPatch, path, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}
