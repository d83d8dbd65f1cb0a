package httpapi

import (
	"net/http"
	"time"

	"github.com/spex2024/ug-dashboard/internal/notify"
)

type notificationsResponse struct {
	Items    []notify.Notification `json:"items"`
	Unread   int                   `json:"unread"`
	Greeting string                `json:"greeting"`
}

func (a *API) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, notificationsResponse{
		Items:    a.feed.All(),
		Unread:   a.feed.Unread(),
		Greeting: notify.Greeting(time.Now()),
	})
}

func (a *API) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	id := pathID(r.URL.Path, "/api/notifications/read/")
	if id == "" || !a.feed.MarkRead(id) {
		writeError(w, r, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *API) handleNotificationReadAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.feed.MarkAllRead()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
