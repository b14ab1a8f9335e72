// Package client is the typed HTTP layer the data-entry frontends build on.
// Every request goes through one wrapper that injects the stored bearer
// token, maps transport and HTTP failures onto a small error taxonomy, and
// drops the local session the moment the backend answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coachpad/coachpad/internal/auth"
)

// CredentialStore is the slice of the session store the HTTP layer needs:
// the current token, the cached profile for local scope checks, and a way
// to wipe both when the server declares the session dead.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
	Profile(ctx context.Context) (*auth.Profile, error)
	Clear(ctx context.Context) error
}

// Client issues authenticated requests against the coachpad API.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the given API base URL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, creds CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// messageBody is the failure shape every endpoint shares.
type messageBody struct {
	Message string `json:"message"`
}

// do sends one authenticated request and decodes the answer into out
// (unless out is nil). The stored token, when present, rides along as a
// bearer header. A 401 clears the stored session before returning
// ErrAuthExpired so no later call retries a token the server already
// rejected.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

// doUnauth sends a request without credentials. Login and register use it:
// they must not attach a stale token, and a 401 from them means bad
// credentials, not a dead session.
func (c *Client) doUnauth(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if withAuth {
		token, err := c.creds.Token(ctx)
		if err != nil {
			return fmt.Errorf("read stored token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &NetworkError{Err: err}
	}

	if withAuth && resp.StatusCode == http.StatusUnauthorized {
		// Session is dead either way; a failed wipe must not mask that.
		_ = c.creds.Clear(ctx)
		return fmt.Errorf("%w: %s", ErrAuthExpired, remoteMessage(raw))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: remoteMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func remoteMessage(raw []byte) string {
	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return strings.TrimSpace(string(raw))
	}
	return body.Message
}
