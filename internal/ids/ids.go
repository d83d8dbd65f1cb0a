package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier suitable for storage keys.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Notification builds a notification identifier of the form
// "<kind>-<entity id>-<ulid>". The ULID suffix keeps identifiers unique
// across poll cycles that touch the same entity.
func Notification(kind, entityID string) string {
	return kind + "-" + entityID + "-" + New()
}
