package notify

import (
	"time"

	"github.com/spex2024/ug-dashboard/internal/ids"
	"github.com/spex2024/ug-dashboard/internal/roster"
)

// Differ compares consecutive roster snapshots and emits notifications
// for entities created, updated, or deleted in between. Change detection
// uses the per-entity equality contract, not serialized forms, so wire
// key ordering cannot produce false updates.
//
// The previous snapshot is replaced after every pass, including passes
// where the current list is empty.
type Differ struct {
	prevOfficers []roster.Officer
	prevAdmins   []roster.Admin
}

// NewDiffer starts with empty previous snapshots: the first pass reports
// every entity as created, and the feed's create-suppression collapses
// those on re-runs.
func NewDiffer() *Differ {
	return &Differ{}
}

// DiffOfficers diffs the officer roster against the previous snapshot.
func (d *Differ) DiffOfficers(current []roster.Officer, at time.Time) []Notification {
	prev := make(map[string]roster.Officer, len(d.prevOfficers))
	for _, o := range d.prevOfficers {
		prev[o.ID] = o
	}
	seen := make(map[string]struct{}, len(current))

	var out []Notification
	for _, o := range current {
		seen[o.ID] = struct{}{}
		name := displayName(o.FirstName, o.LastName)
		before, existed := prev[o.ID]
		switch {
		case !existed:
			out = append(out, Notification{
				ID:        ids.Notification(string(TypeCreate), o.ID),
				Message:   "New officer added: " + name,
				Timestamp: at,
				OfficerID: o.ID,
				Type:      TypeCreate,
			})
		case !before.Equal(o):
			out = append(out, Notification{
				ID:        ids.Notification(string(TypeUpdate), o.ID),
				Message:   "Officer " + name + " was updated",
				Timestamp: at,
				OfficerID: o.ID,
				Type:      TypeUpdate,
			})
		}
	}
	for _, o := range d.prevOfficers {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		out = append(out, Notification{
			ID:        ids.Notification(string(TypeDelete), o.ID),
			Message:   "Officer " + displayName(o.FirstName, o.LastName) + " was removed",
			Timestamp: at,
			OfficerID: o.ID,
			Type:      TypeDelete,
		})
	}

	d.prevOfficers = append([]roster.Officer(nil), current...)
	return out
}

// DiffAdmins diffs the admin accounts against the previous snapshot.
func (d *Differ) DiffAdmins(current []roster.Admin, at time.Time) []Notification {
	prev := make(map[string]roster.Admin, len(d.prevAdmins))
	for _, a := range d.prevAdmins {
		prev[a.ID] = a
	}
	seen := make(map[string]struct{}, len(current))

	var out []Notification
	for _, a := range current {
		seen[a.ID] = struct{}{}
		before, existed := prev[a.ID]
		switch {
		case !existed:
			out = append(out, Notification{
				ID:        ids.Notification(string(TypeCreate), a.ID),
				Message:   "New admin added: " + a.FullName,
				Timestamp: at,
				AdminID:   a.ID,
				Type:      TypeCreate,
			})
		case !before.Equal(a):
			out = append(out, Notification{
				ID:        ids.Notification(string(TypeUpdate), a.ID),
				Message:   "Admin " + a.FullName + " was updated",
				Timestamp: at,
				AdminID:   a.ID,
				Type:      TypeUpdate,
			})
		}
	}
	for _, a := range d.prevAdmins {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		out = append(out, Notification{
			ID:        ids.Notification(string(TypeDelete), a.ID),
			Message:   "Admin " + a.FullName + " was removed",
			Timestamp: at,
			AdminID:   a.ID,
			Type:      TypeDelete,
		})
	}

	d.prevAdmins = append([]roster.Admin(nil), current...)
	return out
}
