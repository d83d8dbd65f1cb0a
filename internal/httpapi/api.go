package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/spex2024/ug-dashboard/internal/localstore"
	"github.com/spex2024/ug-dashboard/internal/notify"
	"github.com/spex2024/ug-dashboard/internal/obs"
	"github.com/spex2024/ug-dashboard/internal/session"
	"github.com/spex2024/ug-dashboard/internal/store"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// ReadyProbe pings the optional notification archive database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer the dashboard SPA talks to. It mirrors the
// upstream backend's paths so the pages need no URL rewriting.
type API struct {
	mux *http.ServeMux

	officers *store.Officers
	admins   *store.Admins
	logs     *store.Logs
	session  *session.Store
	feed     *notify.Feed
	stream   *notify.Stream
	state    *localstore.Store

	readyProbe ReadyProbe
	version    string
}

func New(officers *store.Officers, admins *store.Admins, logs *store.Logs,
	sess *session.Store, feed *notify.Feed, stream *notify.Stream,
	state *localstore.Store, rp ReadyProbe, version string) *API {

	a := &API{
		mux:        http.NewServeMux(),
		officers:   officers,
		admins:     admins,
		logs:       logs,
		session:    sess,
		feed:       feed,
		stream:     stream,
		state:      state,
		readyProbe: rp,
		version:    version,
	}

	// health/ready
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// officer roster
	a.mux.HandleFunc("/api/employee/getAll", a.handleOfficersList)
	a.mux.HandleFunc("/api/employee/update/", a.handleOfficerUpdate)
	a.mux.HandleFunc("/api/employee/delete/", a.handleOfficerDelete)

	// admin accounts and auth
	a.mux.HandleFunc("/api/admin/admins", a.handleAdminsList)
	a.mux.HandleFunc("/api/admin/add", a.handleAdminAdd)
	a.mux.HandleFunc("/api/admin/update/", a.handleAdminUpdate)
	a.mux.HandleFunc("/api/admin/delete/", a.handleAdminDelete)
	a.mux.HandleFunc("/api/admin/login", a.handleLogin)
	a.mux.HandleFunc("/api/admin/logout", a.handleLogout)
	a.mux.HandleFunc("/api/admin/get/", a.handleGetUser)
	a.mux.HandleFunc("/api/admin/logs", a.handleLogsList)

	// notifications
	a.mux.HandleFunc("/api/notifications", a.handleNotifications)
	a.mux.HandleFunc("/api/notifications/read/", a.handleNotificationRead)
	a.mux.HandleFunc("/api/notifications/read-all", a.handleNotificationReadAll)
	a.mux.HandleFunc("/api/notifications/stream", a.Stream)

	// extras
	a.mux.HandleFunc("/api/export/officers.csv", a.handleExportOfficers)
	a.mux.HandleFunc("/api/preferences/theme", a.handleTheme)
	a.mux.HandleFunc("/api/summary", a.handleSummary)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	h := Guard(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 40, 20)
	h = CORS(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "ug-dashboard",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

// writeUpstreamError maps a normalized upstream error onto a local
// status code, preserving the backend's own status when it sent one.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := http.StatusInternalServerError
	switch upstream.ErrKind(err) {
	case upstream.KindValidation:
		code = http.StatusBadRequest
	case upstream.KindNetwork:
		code = http.StatusBadGateway
	case upstream.KindServer:
		var ue *upstream.Error
		if errors.As(err, &ue) && ue.Status >= 400 {
			code = ue.Status
		} else {
			code = http.StatusBadGateway
		}
	}
	writeError(w, r, code, upstream.Message(err, fallback))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// pathID extracts the trailing id segment after prefix, or "".
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
