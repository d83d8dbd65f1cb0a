package httpapi

import (
	"net/http"
	"strings"

	"github.com/spex2024/ug-dashboard/internal/audit"
	"github.com/spex2024/ug-dashboard/internal/roster"
)

func (a *API) handleOfficersList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if err := a.officers.FetchAll(r.Context()); err != nil {
		writeUpstreamError(w, r, err, "Failed to fetch officers")
		return
	}
	list := a.officers.Snapshot()
	if q := r.URL.Query().Get("q"); q != "" {
		list = a.officers.Search(q)
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleOfficerUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	id := pathID(r.URL.Path, "/api/employee/update/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "officer not found")
		return
	}

	var fields map[string]string
	if err := decodeJSON(w, r, &fields); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(fields) == 0 {
		writeError(w, r, http.StatusBadRequest, "no fields to update")
		return
	}

	msg, err := a.officers.Update(r.Context(), id, fields)
	if err != nil {
		writeUpstreamError(w, r, err, "An error occurred")
		return
	}
	_ = audit.LogEvent(r.Context(), "officer.update", map[string]any{"officer_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (a *API) handleOfficerDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	id := pathID(r.URL.Path, "/api/employee/delete/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "officer not found")
		return
	}

	msg, err := a.officers.Delete(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err, "An error occurred")
		return
	}
	_ = audit.LogEvent(r.Context(), "officer.delete", map[string]any{"officer_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (a *API) handleAdminsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if err := a.admins.FetchAll(r.Context()); err != nil {
		writeUpstreamError(w, r, err, "Failed to fetch admins")
		return
	}
	list := a.admins.Snapshot()
	if q := r.URL.Query().Get("q"); q != "" {
		list = a.admins.Search(q)
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleAdminAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var payload roster.Admin
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateAdmin(payload, true); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	msg, err := a.admins.Create(r.Context(), payload)
	if err != nil {
		writeUpstreamError(w, r, err, "An error occurred")
		return
	}
	_ = audit.LogEvent(r.Context(), "admin.create", map[string]any{"username": payload.Username})
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (a *API) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	id := pathID(r.URL.Path, "/api/admin/update/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "admin not found")
		return
	}

	var payload roster.Admin
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateAdmin(payload, false); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	msg, err := a.admins.Update(r.Context(), id, payload)
	if err != nil {
		writeUpstreamError(w, r, err, "An error occurred")
		return
	}
	_ = audit.LogEvent(r.Context(), "admin.update", map[string]any{"admin_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (a *API) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	id := pathID(r.URL.Path, "/api/admin/delete/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "admin not found")
		return
	}

	msg, err := a.admins.Delete(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err, "An error occurred")
		return
	}
	_ = audit.LogEvent(r.Context(), "admin.delete", map[string]any{"admin_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (a *API) handleLogsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if err := a.logs.FetchAll(r.Context()); err != nil {
		writeUpstreamError(w, r, err, "Failed to fetch logs")
		return
	}
	writeJSON(w, http.StatusOK, a.logs.Snapshot())
}

// validateAdmin checks the form-level rules before the payload is
// forwarded. Password is required only on create.
func validateAdmin(payload roster.Admin, create bool) string {
	if strings.TrimSpace(payload.FullName) == "" {
		return "Full name is required"
	}
	if strings.TrimSpace(payload.Username) == "" {
		return "Username is required"
	}
	if create && payload.Password == "" {
		return "Password is required"
	}
	if payload.Department != "" && !roster.ValidDepartment(payload.Department) {
		return "Unknown department"
	}
	if payload.Role != "" && !roster.ValidRole(payload.Role) {
		return "Unknown role"
	}
	return ""
}
