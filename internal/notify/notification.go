// Package notify synthesizes change notifications for the dashboard by
// polling the officer and admin stores and diffing consecutive
// snapshots. The backend offers no push channel; this is the substitute.
package notify

import (
	"strings"
	"time"
)

// Type tags what kind of change a notification records.
type Type string

const (
	TypeCreate Type = "create"
	TypeUpdate Type = "update"
	TypeDelete Type = "delete"
)

// Notification is a client-synthesized record of a detected change.
// Timestamps round-trip through JSON as RFC 3339.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	OfficerID string    `json:"officerId,omitempty"`
	AdminID   string    `json:"adminId,omitempty"`
	Type      Type      `json:"type"`
}

// EntityID returns the id of the officer or admin that triggered the
// notification.
func (n Notification) EntityID() string {
	if n.OfficerID != "" {
		return n.OfficerID
	}
	return n.AdminID
}

// Greeting returns the time-of-day salutation shown next to the feed.
func Greeting(at time.Time) string {
	switch hour := at.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	case hour < 20:
		return "Good evening"
	default:
		return "Good night"
	}
}

func displayName(parts ...string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}
