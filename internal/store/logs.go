package store

import (
	"context"
	"sync"

	"github.com/spex2024/ug-dashboard/internal/roster"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// Logs caches the backend activity log. Read-only: the backend appends,
// the dashboard fetches.
type Logs struct {
	client *upstream.Client

	mu      sync.RWMutex
	list    []roster.LogEntry
	loading bool
	err     string
}

// NewLogs constructs an empty log store.
func NewLogs(client *upstream.Client) *Logs {
	return &Logs{client: client}
}

// FetchAll replaces the cached entries with the server collection.
func (s *Logs) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	entries, err := s.client.ListLogs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = upstream.Message(err, "Failed to fetch logs")
		return err
	}
	s.list = entries
	return nil
}

// Snapshot returns a copy of the cached entries.
func (s *Logs) Snapshot() []roster.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]roster.LogEntry, len(s.list))
	copy(out, s.list)
	return out
}

// State reports the loading flag and the retained fetch error, if any.
func (s *Logs) State() (loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.err
}
