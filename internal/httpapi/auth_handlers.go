package httpapi

import (
	"net/http"

	"github.com/spex2024/ug-dashboard/internal/session"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !a.session.Login(r.Context(), req.Username, req.Password) {
		_, errMsg := a.session.State()
		code := http.StatusUnauthorized
		if errMsg == session.ErrCredentialsRequired {
			code = http.StatusBadRequest
		}
		writeError(w, r, code, errMsg)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     upstream.TokenCookie,
		Value:    a.session.Token(),
		Path:     "/",
		MaxAge:   int(session.CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    a.session.User(),
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	a.session.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     upstream.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	id := pathID(r.URL.Path, "/api/admin/get/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "user not found")
		return
	}

	if err := a.session.GetUser(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, a.session.User())
}
