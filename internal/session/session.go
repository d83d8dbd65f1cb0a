// Package session manages the dashboard's authentication lifecycle: one
// operator identity per running instance, checked against the remote
// backend and mirrored to local state so a restart preserves the login.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spex2024/ug-dashboard/internal/audit"
	"github.com/spex2024/ug-dashboard/internal/localstore"
	"github.com/spex2024/ug-dashboard/internal/roster"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// CookieMaxAge is the authToken cookie lifetime.
const CookieMaxAge = 7 * 24 * time.Hour

// ErrCredentialsRequired is the validation message for empty credentials.
const ErrCredentialsRequired = "Username and password are required"

// persisted is the identity document mirrored to local state. The token
// rides along because the service has no separate cookie store the way a
// browser does.
type persisted struct {
	User  roster.User `json:"user"`
	Token string      `json:"token"`
}

// Store holds the current session.
type Store struct {
	client *upstream.Client
	state  *localstore.Store

	mu      sync.RWMutex
	user    *roster.User
	loading bool
	err     string
}

// New constructs a session store, restoring a previously persisted
// identity so a restart does not force a re-login. Restoration is pure
// client trust: no token validation happens locally.
func New(client *upstream.Client, state *localstore.Store) *Store {
	s := &Store{client: client, state: state}

	var saved persisted
	if state != nil && state.Get(localstore.KeyAuthUser, &saved) && saved.User.ID != "" {
		u := saved.User
		s.user = &u
		client.SetToken(saved.Token)
	}
	return s
}

// Login validates and submits credentials. Empty credentials fail
// immediately without a network call. Returns true only when the backend
// accepted the credentials; the token is then held for the cookie and
// the identity mirrored to local state.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	if username == "" || password == "" {
		s.mu.Lock()
		s.err = ErrCredentialsRequired
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = upstream.Message(err, "An error occurred during login")
		s.mu.Unlock()
		return false
	}

	user := res.User
	if user == nil {
		user = &roster.User{ID: "1", Username: username, Role: "admin"}
	}
	token := res.Token
	if token == "" {
		token = "dummy-token"
	}

	s.client.SetToken(token)
	if s.state != nil {
		_ = s.state.Put(localstore.KeyAuthUser, persisted{User: *user, Token: token})
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	ctx = audit.WithActor(ctx, audit.Actor{ID: user.ID, Username: user.Username})
	_ = audit.LogEvent(ctx, "session.login", map[string]any{"role": user.Role})
	return true
}

// Logout ends the session: the remote call is best effort, local state
// is cleared unconditionally and immediately.
func (s *Store) Logout(ctx context.Context) {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()

	_ = s.client.Logout(ctx)

	s.client.SetToken("")
	if s.state != nil {
		_ = s.state.Delete(localstore.KeyAuthUser)
	}

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	if user != nil {
		ctx = audit.WithActor(ctx, audit.Actor{ID: user.ID, Username: user.Username})
	}
	_ = audit.LogEvent(ctx, "session.logout", nil)
}

// GetUser refreshes the session identity from the backend using the
// bearer token, mirroring the result to local state.
func (s *Store) GetUser(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	user, err := s.client.GetUser(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = upstream.Message(err, "An error occurred while fetching user data")
		return err
	}
	s.user = user
	if s.state != nil && user != nil {
		_ = s.state.Put(localstore.KeyAuthUser, persisted{User: *user, Token: s.client.Token()})
	}
	return nil
}

// User returns a copy of the current identity, nil when logged out.
func (s *Store) User() *roster.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the raw session token, empty when logged out.
func (s *Store) Token() string {
	return s.client.Token()
}

// State reports the loading flag and the last error message.
func (s *Store) State() (loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.err
}

// TokenExpiry decodes the expiry claim from the session token without
// verifying the signature. Diagnostic only: the route guard deliberately
// checks cookie presence, nothing more.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.client.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
