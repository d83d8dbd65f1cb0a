package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/spex2024/ug-dashboard/internal/ids"
	"github.com/spex2024/ug-dashboard/internal/localstore"
)

func openState(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	return s
}

func mkNotification(typ Type, officerID string) Notification {
	return Notification{
		ID:        ids.Notification(string(typ), officerID),
		Message:   "test",
		Timestamp: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC),
		OfficerID: officerID,
		Type:      typ,
	}
}

func TestFeedCreateSuppression(t *testing.T) {
	f := NewFeed(openState(t), DefaultFeedCap)

	if got := f.Add([]Notification{mkNotification(TypeCreate, "o1")}); len(got) != 1 {
		t.Fatalf("first create must be accepted, got %+v", got)
	}
	// Re-polls that re-report the same entity as new are suppressed.
	if got := f.Add([]Notification{mkNotification(TypeCreate, "o1")}); got != nil {
		t.Fatalf("duplicate create must be suppressed, got %+v", got)
	}
	// Updates are never suppressed.
	if got := f.Add([]Notification{mkNotification(TypeUpdate, "o1")}); len(got) != 1 {
		t.Fatalf("update must be accepted, got %+v", got)
	}
	if got := f.Add([]Notification{mkNotification(TypeUpdate, "o1")}); len(got) != 1 {
		t.Fatalf("repeated update must be accepted, got %+v", got)
	}

	createCount := 0
	for _, n := range f.All() {
		if n.Type == TypeCreate && n.OfficerID == "o1" {
			createCount++
		}
	}
	if createCount != 1 {
		t.Fatalf("at most one stored create per entity, found %d", createCount)
	}
}

func TestFeedPersistenceRoundTrip(t *testing.T) {
	state := openState(t)
	f := NewFeed(state, DefaultFeedCap)
	in := []Notification{
		mkNotification(TypeCreate, "o1"),
		mkNotification(TypeDelete, "o2"),
	}
	f.Add(in)
	f.MarkRead(in[0].ID)

	// A fresh feed over the same state reproduces the notifications,
	// timestamps parsed back to equivalent instants.
	reloaded := NewFeed(state, DefaultFeedCap)
	got := reloaded.All()
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	byID := map[string]Notification{}
	for _, n := range got {
		byID[n.ID] = n
	}
	for _, want := range in {
		have, ok := byID[want.ID]
		if !ok {
			t.Fatalf("notification %s lost in round trip", want.ID)
		}
		if !have.Timestamp.Equal(want.Timestamp) {
			t.Fatalf("timestamp drift: %s != %s", have.Timestamp, want.Timestamp)
		}
	}
	if !byID[in[0].ID].Read {
		t.Fatal("read flag lost in round trip")
	}
	if reloaded.Unread() != 1 {
		t.Fatalf("expected 1 unread, got %d", reloaded.Unread())
	}
}

func TestFeedCapDropsOldest(t *testing.T) {
	f := NewFeed(openState(t), 3)
	for i := 0; i < 5; i++ {
		f.Add([]Notification{mkNotification(TypeUpdate, fmt.Sprintf("o%d", i))})
	}
	got := f.All()
	if len(got) != 3 {
		t.Fatalf("cap not enforced: %d items", len(got))
	}
	// Newest first: the survivors are the three most recent.
	if got[0].OfficerID != "o4" || got[2].OfficerID != "o2" {
		t.Fatalf("wrong items survived: %+v", got)
	}
}

func TestFeedMarkRead(t *testing.T) {
	f := NewFeed(openState(t), 0)
	n := mkNotification(TypeUpdate, "o1")
	f.Add([]Notification{n, mkNotification(TypeUpdate, "o2")})

	if !f.MarkRead(n.ID) {
		t.Fatal("expected known id")
	}
	if f.MarkRead("missing") {
		t.Fatal("unknown id must report false")
	}
	if f.Unread() != 1 {
		t.Fatalf("expected 1 unread, got %d", f.Unread())
	}

	f.MarkAllRead()
	if f.Unread() != 0 {
		t.Fatalf("expected 0 unread, got %d", f.Unread())
	}
}
