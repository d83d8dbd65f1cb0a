package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spex2024/ug-dashboard/internal/roster"
)

// TokenCookie is the session cookie both the upstream backend and the
// local route guard key on.
const TokenCookie = "authToken"

const defaultTimeout = 15 * time.Second

// Client is a typed client for the remote personnel REST API. All calls
// carry the session cookie; GetUser additionally sends a bearer token.
type Client struct {
	base string
	http *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (useful for tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New constructs a client for the given base URL. A cookie jar is
// installed so Set-Cookie responses from the backend are replayed on
// subsequent calls.
func New(base string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: defaultTimeout, Jar: jar},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the session token replayed as the authToken cookie.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Officers ---

// ListOfficers fetches the full officer collection.
func (c *Client) ListOfficers(ctx context.Context) ([]roster.Officer, error) {
	var out []roster.Officer
	if err := c.do(ctx, http.MethodGet, "/api/employee/getAll", nil, &out, "An error occurred"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOfficer submits a partial update for one officer.
func (c *Client) UpdateOfficer(ctx context.Context, id string, fields map[string]string) (string, error) {
	var resp messageEnvelope
	path := "/api/employee/update/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, fields, &resp, "An error occurred"); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteOfficer removes one officer.
func (c *Client) DeleteOfficer(ctx context.Context, id string) (string, error) {
	var resp messageEnvelope
	path := "/api/employee/delete/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp, "An error occurred"); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// --- Admins ---

type adminEnvelope struct {
	Admin   roster.Admin `json:"admin"`
	Message string       `json:"message"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// ListAdmins fetches the full admin collection.
func (c *Client) ListAdmins(ctx context.Context) ([]roster.Admin, error) {
	var out []roster.Admin
	if err := c.do(ctx, http.MethodGet, "/api/admin/admins", nil, &out, "Failed to fetch admins"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAdmin submits a new admin account and returns the server-created
// record with the server message.
func (c *Client) CreateAdmin(ctx context.Context, payload roster.Admin) (roster.Admin, string, error) {
	var resp adminEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/admin/add", payload, &resp, "Failed to add admin"); err != nil {
		return roster.Admin{}, "", err
	}
	return resp.Admin, resp.Message, nil
}

// UpdateAdmin submits an admin update and returns the server-side record.
func (c *Client) UpdateAdmin(ctx context.Context, id string, payload roster.Admin) (roster.Admin, string, error) {
	var resp adminEnvelope
	path := "/api/admin/update/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, payload, &resp, "Failed to update admin"); err != nil {
		return roster.Admin{}, "", err
	}
	return resp.Admin, resp.Message, nil
}

// DeleteAdmin removes one admin account.
func (c *Client) DeleteAdmin(ctx context.Context, id string) (string, error) {
	var resp messageEnvelope
	path := "/api/admin/delete/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp, "Failed to delete admin"); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// --- Auth ---

// LoginResult carries the authenticated identity and session token.
type LoginResult struct {
	User    *roster.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// Login checks credentials against the backend.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &resp, "An error occurred during login"); err != nil {
		return LoginResult{}, err
	}
	return resp, nil
}

// Logout notifies the backend that the session ended. Failures are
// reported but the caller clears local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil, "An error occurred during logout")
}

type userEnvelope struct {
	User    *roster.User `json:"user"`
	Message string       `json:"message"`
}

// GetUser fetches one user by id, authenticating with the bearer token.
func (c *Client) GetUser(ctx context.Context, id string) (*roster.User, error) {
	var resp userEnvelope
	path := "/api/admin/get/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, "An error occurred while fetching user data"); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// --- Logs ---

// ListLogs fetches the backend activity log.
func (c *Client) ListLogs(ctx context.Context) ([]roster.LogEntry, error) {
	var out []roster.LogEntry
	if err := c.do(ctx, http.MethodGet, "/api/admin/logs", nil, &out, "Failed to fetch logs"); err != nil {
		return nil, err
	}
	return out, nil
}

// --- transport ---

// errorBody covers the two error payload shapes the backend produces.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: fallback}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: fallback}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err, fallback)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err, fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		message := eb.Message
		if message == "" {
			message = eb.Err
		}
		return serverError(resp.StatusCode, message, fallback)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return nil
}
