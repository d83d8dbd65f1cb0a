// Package store holds the in-memory entity stores the dashboard serves
// from: one cached list per resource type, refreshed from the remote API
// and mutated only after the remote call confirms.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/spex2024/ug-dashboard/internal/roster"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// Officers caches the officer roster.
type Officers struct {
	client *upstream.Client

	mu      sync.RWMutex
	list    []roster.Officer
	loading bool
	err     string
}

// NewOfficers constructs an empty officer store.
func NewOfficers(client *upstream.Client) *Officers {
	return &Officers{client: client}
}

// FetchAll replaces the cached list with the server collection. On
// failure the cached list is left untouched and the error message is
// retained for inline display until the next successful fetch.
// Concurrent fetches are not coordinated: the later response wins.
func (s *Officers) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	officers, err := s.client.ListOfficers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = upstream.Message(err, "An error occurred")
		return err
	}
	s.list = officers
	return nil
}

// Update submits a partial update and, once confirmed, merges the
// submitted fields into the cached copy. Returns the server message.
func (s *Officers) Update(ctx context.Context, id string, fields map[string]string) (string, error) {
	msg, err := s.client.UpdateOfficer(ctx, id, fields)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i] = s.list[i].Merge(fields)
			break
		}
	}
	return msg, nil
}

// Delete removes one officer, locally only after the server confirms.
func (s *Officers) Delete(ctx context.Context, id string) (string, error) {
	msg, err := s.client.DeleteOfficer(ctx, id)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.list[:0]
	for _, o := range s.list {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.list = kept
	return msg, nil
}

// Snapshot returns a copy of the cached list.
func (s *Officers) Snapshot() []roster.Officer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]roster.Officer, len(s.list))
	copy(out, s.list)
	return out
}

// State reports the loading flag and the retained fetch error, if any.
func (s *Officers) State() (loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.err
}

// Search filters the cached list by a case-insensitive substring over
// name, rank, staff id and service number, the way the staff page does.
func (s *Officers) Search(q string) []roster.Officer {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.Snapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []roster.Officer
	for _, o := range s.list {
		haystack := strings.ToLower(strings.Join([]string{
			o.FullName(), o.Rank, roster.FullRankName(o.Rank), o.StaffID, o.ServiceNumber,
		}, " "))
		if strings.Contains(haystack, q) {
			out = append(out, o)
		}
	}
	return out
}
