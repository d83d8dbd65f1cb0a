package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spex2024/ug-dashboard/internal/roster"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// backend is a scriptable stand-in for the remote personnel API.
type backend struct {
	officers []roster.Officer
	admins   []roster.Admin
	failing  atomic.Bool
}

func (b *backend) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "backend down"})
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/employee/getAll":
			_ = json.NewEncoder(w).Encode(b.officers)
		case r.Method == http.MethodGet && r.URL.Path == "/api/admin/admins":
			_ = json.NewEncoder(w).Encode(b.admins)
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/employee/update/"):
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Officer updated"})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/employee/delete/"):
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Officer deleted"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/admin/add":
			var payload roster.Admin
			_ = json.NewDecoder(r.Body).Decode(&payload)
			payload.ID = "a-new"
			payload.Password = ""
			_ = json.NewEncoder(w).Encode(map[string]any{"admin": payload, "message": "Created"})
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/admin/update/"):
			var payload roster.Admin
			_ = json.NewDecoder(r.Body).Decode(&payload)
			payload.ID = strings.TrimPrefix(r.URL.Path, "/api/admin/update/")
			payload.Password = ""
			_ = json.NewEncoder(w).Encode(map[string]any{"admin": payload, "message": "Updated"})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/admin/delete/"):
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Deleted"})
		default:
			http.NotFound(w, r)
		}
	})
}

func newFixture(t *testing.T) (*backend, *upstream.Client) {
	t.Helper()
	b := &backend{
		officers: []roster.Officer{
			{ID: "o1", FirstName: "Kwame", LastName: "Mensah", Rank: "FM", StaffID: "GNFS-001"},
			{ID: "o2", FirstName: "Ama", LastName: "Owusu", Rank: "SUB", StaffID: "GNFS-002"},
		},
		admins: []roster.Admin{
			{ID: "a1", FullName: "Akosua Boateng", Username: "akosua", Role: roster.RoleAdmin},
		},
	}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	return b, upstream.New(srv.URL)
}

func TestOfficersFetchAllSuccess(t *testing.T) {
	b, client := newFixture(t)
	s := NewOfficers(client)

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	got := s.Snapshot()
	if len(got) != len(b.officers) {
		t.Fatalf("expected %d officers, got %d", len(b.officers), len(got))
	}
	for i := range got {
		if !got[i].Equal(b.officers[i]) {
			t.Fatalf("officer %d mismatch: %+v != %+v", i, got[i], b.officers[i])
		}
	}
	loading, errMsg := s.State()
	if loading || errMsg != "" {
		t.Fatalf("expected idle clean state, got loading=%v err=%q", loading, errMsg)
	}
}

func TestOfficersFetchAllFailureKeepsList(t *testing.T) {
	b, client := newFixture(t)
	s := NewOfficers(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll: %v", err)
	}
	before := s.Snapshot()

	b.failing.Store(true)
	if err := s.FetchAll(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	after := s.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("list changed on failed fetch: %d != %d", len(after), len(before))
	}
	loading, errMsg := s.State()
	if loading {
		t.Fatal("loading must be cleared after a failed fetch")
	}
	if errMsg != "backend down" {
		t.Fatalf("expected retained server message, got %q", errMsg)
	}

	// Next successful fetch clears the error.
	b.failing.Store(false)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("recovery FetchAll: %v", err)
	}
	if _, errMsg := s.State(); errMsg != "" {
		t.Fatalf("expected error cleared, got %q", errMsg)
	}
}

func TestOfficersUpdateMergesSubmittedFields(t *testing.T) {
	_, client := newFixture(t)
	s := NewOfficers(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	before := s.Snapshot()

	msg, err := s.Update(context.Background(), "o1", map[string]string{"rank": "LFM"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if msg != "Officer updated" {
		t.Fatalf("unexpected message %q", msg)
	}

	after := s.Snapshot()
	for i, o := range after {
		switch o.ID {
		case "o1":
			if o.Rank != "LFM" {
				t.Fatalf("update not applied: %+v", o)
			}
			if o.FirstName != before[i].FirstName || o.StaffID != before[i].StaffID {
				t.Fatalf("unrelated fields changed: %+v", o)
			}
		default:
			if !o.Equal(before[i]) {
				t.Fatalf("other entity mutated: %+v", o)
			}
		}
	}
}

func TestOfficersDeleteRemovesExactlyOne(t *testing.T) {
	_, client := newFixture(t)
	s := NewOfficers(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if _, err := s.Delete(context.Background(), "o1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	after := s.Snapshot()
	if len(after) != 1 || after[0].ID != "o2" {
		t.Fatalf("unexpected list after delete: %+v", after)
	}
}

func TestOfficersMutationFailureLeavesListUntouched(t *testing.T) {
	b, client := newFixture(t)
	s := NewOfficers(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	before := s.Snapshot()

	b.failing.Store(true)
	if _, err := s.Delete(context.Background(), "o1"); err == nil {
		t.Fatal("expected delete error")
	}
	if _, err := s.Update(context.Background(), "o2", map[string]string{"rank": "GO"}); err == nil {
		t.Fatal("expected update error")
	}

	after := s.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("list mutated on failure")
	}
	for i := range after {
		if !after[i].Equal(before[i]) {
			t.Fatalf("entry %d mutated on failure", i)
		}
	}
}

func TestAdminsCreateAppendsServerRecordOnce(t *testing.T) {
	_, client := newFixture(t)
	s := NewAdmins(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	msg, err := s.Create(context.Background(), roster.Admin{
		FullName: "Yaw Darko", Username: "yaw", Role: roster.RoleStats, Password: "secret",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg != "Created" {
		t.Fatalf("expected server message, got %q", msg)
	}

	after := s.Snapshot()
	count := 0
	for _, a := range after {
		if a.ID == "a-new" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the new admin appended exactly once, found %d", count)
	}
}

func TestAdminsUpdateReplacesWithServerCopy(t *testing.T) {
	_, client := newFixture(t)
	s := NewAdmins(client)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	_, err := s.Update(context.Background(), "a1", roster.Admin{
		FullName: "Akosua B.", Username: "akosua", Role: roster.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	after := s.Snapshot()
	if len(after) != 1 || after[0].FullName != "Akosua B." || after[0].ID != "a1" {
		t.Fatalf("server copy not applied: %+v", after)
	}
}

func TestSearchFilters(t *testing.T) {
	_, client := newFixture(t)
	officers := NewOfficers(client)
	admins := NewAdmins(client)
	if err := officers.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if err := admins.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if got := officers.Search("ama"); len(got) != 1 || got[0].ID != "o2" {
		t.Fatalf("officer search broken: %+v", got)
	}
	// Rank codes expand, so the full rank name matches too.
	if got := officers.Search("sub-officer"); len(got) != 1 || got[0].ID != "o2" {
		t.Fatalf("rank name search broken: %+v", got)
	}
	if got := admins.Search("akosua"); len(got) != 1 {
		t.Fatalf("admin search broken: %+v", got)
	}
	if got := officers.Search(""); len(got) != 2 {
		t.Fatalf("empty query must return everything, got %+v", got)
	}
}
