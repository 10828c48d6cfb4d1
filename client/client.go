// Package client is the consuming side of the auth API: login, logout
// and a cached "who am I" query.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ddalisay/tanod/core"
)

// ErrNoSession means no token is held - the caller never logged in or
// already logged out. Distinct from a transport failure, which surfaces
// as its own error, and from a server-side rejection (ErrUnauthorized).
var ErrNoSession = errors.New("no active session")

// ErrUnauthorized means the server rejected the held token (expired,
// revoked or unknown). The held token and cache are dropped.
var ErrUnauthorized = errors.New("session rejected by server")

// Client talks to a mounted tanod auth API.
//
// CurrentUser answers from a local cache once it has seen a successful
// response for the held token; Login, Logout and SetToken invalidate
// the cache.
type Client struct {
	base string
	http *http.Client

	mu     sync.Mutex
	token  string
	cached *core.User
}

// Options tune the client.
type Options struct {
	// HTTPClient overrides the transport. Nil selects a client with a
	// 10s timeout.
	HTTPClient *http.Client
}

// New builds a client for an auth API mounted at baseURL, e.g.
// "https://app.example.com/api/auth".
func New(baseURL string, opts ...Options) *Client {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		base: baseURL,
		http: o.HTTPClient,
	}
}

type loginResponse struct {
	User  *core.User `json:"user"`
	Token string     `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login authenticates and holds the issued token for later calls. The
// returned user is cached for CurrentUser.
func (c *Client) Login(ctx context.Context, creds core.Credentials) (*core.User, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	c.mu.Lock()
	c.token = out.Token
	c.cached = out.User
	c.mu.Unlock()

	return out.User, nil
}

// Logout destroys the held session server-side and always drops the
// local token and cache. Idempotent - logging out without a session is
// not an error.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.cached = nil
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// CurrentUser answers "who is logged in".
//
// Three outcomes are kept distinct: no held token (ErrNoSession), a
// definite server-side rejection (ErrUnauthorized), and a transport or
// server failure (the underlying error) - the last leaves the cache and
// token alone so a retry can still succeed.
func (c *Client) CurrentUser(ctx context.Context) (*core.User, error) {
	c.mu.Lock()
	token := c.token
	cached := c.cached
	c.mu.Unlock()

	if token == "" {
		return nil, ErrNoSession
	}
	if cached != nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/session", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		c.mu.Lock()
		if c.token == token {
			c.token = ""
			c.cached = nil
		}
		c.mu.Unlock()
		return nil, ErrUnauthorized
	default:
		return nil, decodeError(resp)
	}

	var data core.SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	c.mu.Lock()
	if c.token == token {
		c.cached = data.User
	}
	c.mu.Unlock()

	return data.User, nil
}

// Token returns the held session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken resumes an existing session (e.g. restored from a cookie
// jar). The user cache is invalidated; the next CurrentUser revalidates
// against the server.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.cached = nil
	c.mu.Unlock()
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var out errorResponse
	if err := json.Unmarshal(body, &out); err == nil && out.Error != "" {
		return fmt.Errorf("auth api: %s (status %d)", out.Error, resp.StatusCode)
	}
	return fmt.Errorf("auth api: unexpected status %d", resp.StatusCode)
}
