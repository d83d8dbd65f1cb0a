package notify

import (
	"sync"

	"github.com/spex2024/ug-dashboard/internal/localstore"
)

// DefaultFeedCap bounds the persisted feed. The browser version grew
// without bound; the cap keeps the feed a live ticker instead of an
// accidental audit trail.
const DefaultFeedCap = 200

// Feed is the bounded, persisted notification list, newest first.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	cap   int
	state *localstore.Store
}

// NewFeed rehydrates the feed from local state. cap <= 0 means
// unbounded.
func NewFeed(state *localstore.Store, cap int) *Feed {
	f := &Feed{cap: cap, state: state}
	if state != nil {
		var saved []Notification
		if state.Get(localstore.KeyNotifications, &saved) {
			f.items = saved
			f.trim()
		}
	}
	return f
}

// Add prepends a batch of new notifications and persists the feed. A
// "create" for an entity that already has a stored create is suppressed,
// which keeps re-polls and restarts from duplicating arrival notices.
// Returns the notifications actually accepted.
func (f *Feed) Add(batch []Notification) []Notification {
	if len(batch) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var accepted []Notification
	for _, n := range batch {
		if n.Type == TypeCreate && f.hasCreateLocked(n) {
			continue
		}
		accepted = append(accepted, n)
	}
	if len(accepted) == 0 {
		return nil
	}

	f.items = append(accepted, f.items...)
	f.trim()
	f.persistLocked()
	return accepted
}

func (f *Feed) hasCreateLocked(n Notification) bool {
	for _, existing := range f.items {
		if existing.Type != TypeCreate {
			continue
		}
		if n.OfficerID != "" && existing.OfficerID == n.OfficerID {
			return true
		}
		if n.AdminID != "" && existing.AdminID == n.AdminID {
			return true
		}
	}
	return false
}

// All returns a copy of the feed, newest first.
func (f *Feed) All() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Unread counts notifications not yet marked read.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flips the read flag on one notification and persists.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			if !f.items[i].Read {
				f.items[i].Read = true
				f.persistLocked()
			}
			return true
		}
	}
	return false
}

// MarkAllRead flips every read flag and persists.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	changed := false
	for i := range f.items {
		if !f.items[i].Read {
			f.items[i].Read = true
			changed = true
		}
	}
	if changed {
		f.persistLocked()
	}
}

func (f *Feed) trim() {
	if f.cap > 0 && len(f.items) > f.cap {
		f.items = f.items[:f.cap]
	}
}

func (f *Feed) persistLocked() {
	if f.state == nil {
		return
	}
	_ = f.state.Put(localstore.KeyNotifications, f.items)
}
