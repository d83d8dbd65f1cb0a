package store

import (
	"context"
	"strings"
	"sync"

	"github.com/spex2024/ug-dashboard/internal/roster"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// Admins caches the operator accounts.
type Admins struct {
	client *upstream.Client

	mu      sync.RWMutex
	list    []roster.Admin
	loading bool
	err     string
}

// NewAdmins constructs an empty admin store.
func NewAdmins(client *upstream.Client) *Admins {
	return &Admins{client: client}
}

// FetchAll replaces the cached list with the server collection, keeping
// the old list and retaining the message on failure.
func (s *Admins) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	admins, err := s.client.ListAdmins(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = upstream.Message(err, "Failed to fetch admins")
		return err
	}
	s.list = admins
	return nil
}

// Create submits a new admin and appends the server-returned record once
// confirmed. The cached list is unchanged on failure.
func (s *Admins) Create(ctx context.Context, payload roster.Admin) (string, error) {
	admin, msg, err := s.client.CreateAdmin(ctx, payload)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, admin)
	return msg, nil
}

// Update submits an admin update and replaces the cached entry with the
// server-returned object (admins take the server copy verbatim, unlike
// officers which merge locally).
func (s *Admins) Update(ctx context.Context, id string, payload roster.Admin) (string, error) {
	admin, msg, err := s.client.UpdateAdmin(ctx, id, payload)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i] = admin
			break
		}
	}
	return msg, nil
}

// Delete removes one admin, locally only after the server confirms.
func (s *Admins) Delete(ctx context.Context, id string) (string, error) {
	msg, err := s.client.DeleteAdmin(ctx, id)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.list[:0]
	for _, a := range s.list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.list = kept
	return msg, nil
}

// Snapshot returns a copy of the cached list.
func (s *Admins) Snapshot() []roster.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]roster.Admin, len(s.list))
	copy(out, s.list)
	return out
}

// State reports the loading flag and the retained fetch error, if any.
func (s *Admins) State() (loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.err
}

// Search filters the cached list by a case-insensitive substring over
// full name and username.
func (s *Admins) Search(q string) []roster.Admin {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.Snapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []roster.Admin
	for _, a := range s.list {
		if strings.Contains(strings.ToLower(a.FullName+" "+a.Username), q) {
			out = append(out, a)
		}
	}
	return out
}
