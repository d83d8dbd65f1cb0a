package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/spex2024/ug-dashboard/internal/roster"
)

var diffTime = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func TestDiffOfficersLifecycle(t *testing.T) {
	d := NewDiffer()

	first := []roster.Officer{
		{ID: "o1", FirstName: "Kwame", LastName: "Mensah", Rank: "FM"},
		{ID: "o2", FirstName: "Ama", LastName: "Owusu", Rank: "SUB"},
	}
	created := d.DiffOfficers(first, diffTime)
	if len(created) != 2 {
		t.Fatalf("first pass must report every officer created, got %d", len(created))
	}
	for _, n := range created {
		if n.Type != TypeCreate {
			t.Fatalf("expected create, got %q", n.Type)
		}
		if !strings.HasPrefix(n.Message, "New officer added: ") {
			t.Fatalf("unexpected message %q", n.Message)
		}
	}

	// No change: no notifications.
	if got := d.DiffOfficers(first, diffTime); len(got) != 0 {
		t.Fatalf("identical snapshot must produce nothing, got %+v", got)
	}

	// One update, one delete.
	second := []roster.Officer{
		{ID: "o1", FirstName: "Kwame", LastName: "Mensah", Rank: "LFM"},
	}
	got := d.DiffOfficers(second, diffTime)
	if len(got) != 2 {
		t.Fatalf("expected update+delete, got %+v", got)
	}
	var sawUpdate, sawDelete bool
	for _, n := range got {
		switch n.Type {
		case TypeUpdate:
			sawUpdate = true
			if n.OfficerID != "o1" || n.Message != "Officer Kwame Mensah was updated" {
				t.Fatalf("unexpected update notification %+v", n)
			}
		case TypeDelete:
			sawDelete = true
			if n.OfficerID != "o2" || n.Message != "Officer Ama Owusu was removed" {
				t.Fatalf("unexpected delete notification %+v", n)
			}
		}
	}
	if !sawUpdate || !sawDelete {
		t.Fatalf("missing kinds: %+v", got)
	}
}

func TestDiffExactlyOneDeletePerDisappearance(t *testing.T) {
	d := NewDiffer()
	d.DiffOfficers([]roster.Officer{{ID: "x", FirstName: "Yaw"}}, diffTime)

	got := d.DiffOfficers(nil, diffTime)
	if len(got) != 1 || got[0].Type != TypeDelete || got[0].OfficerID != "x" {
		t.Fatalf("expected exactly one delete for x, got %+v", got)
	}

	// The empty list replaced the snapshot: nothing further to report.
	if again := d.DiffOfficers(nil, diffTime); len(again) != 0 {
		t.Fatalf("snapshot must have been replaced, got %+v", again)
	}
}

func TestDiffAdminsIgnoresPasswordChurn(t *testing.T) {
	d := NewDiffer()
	base := []roster.Admin{{ID: "a1", FullName: "Akosua Boateng", Username: "akosua", Role: roster.RoleAdmin}}
	d.DiffAdmins(base, diffTime)

	// The write-only password field round-tripping differently must not
	// read as an update.
	withPassword := []roster.Admin{{ID: "a1", FullName: "Akosua Boateng", Username: "akosua", Role: roster.RoleAdmin, Password: "hash"}}
	if got := d.DiffAdmins(withPassword, diffTime); len(got) != 0 {
		t.Fatalf("password churn must not produce updates, got %+v", got)
	}

	renamed := []roster.Admin{{ID: "a1", FullName: "Akosua B.", Username: "akosua", Role: roster.RoleAdmin}}
	got := d.DiffAdmins(renamed, diffTime)
	if len(got) != 1 || got[0].Type != TypeUpdate || got[0].AdminID != "a1" {
		t.Fatalf("expected one admin update, got %+v", got)
	}
	if got[0].Message != "Admin Akosua B. was updated" {
		t.Fatalf("unexpected message %q", got[0].Message)
	}
}

func TestGreetingBuckets(t *testing.T) {
	cases := map[int]string{
		6:  "Good morning",
		11: "Good morning",
		12: "Good afternoon",
		16: "Good afternoon",
		17: "Good evening",
		19: "Good evening",
		20: "Good night",
		23: "Good night",
	}
	for hour, want := range cases {
		at := time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC)
		if got := Greeting(at); got != want {
			t.Fatalf("Greeting(%02d:00) = %q, want %q", hour, got, want)
		}
	}
}
