package httpapi

import (
	"net/http"

	"github.com/spex2024/ug-dashboard/internal/localstore"
)

type themeDoc struct {
	Theme string `json:"theme"`
}

func (a *API) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		doc := themeDoc{Theme: "light"}
		if a.state != nil {
			_ = a.state.Get(localstore.KeyTheme, &doc)
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodPut:
		var doc themeDoc
		if err := decodeJSON(w, r, &doc); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if doc.Theme != "light" && doc.Theme != "dark" {
			writeError(w, r, http.StatusBadRequest, "theme must be light or dark")
			return
		}
		if a.state != nil {
			_ = a.state.Put(localstore.KeyTheme, doc)
		}
		writeJSON(w, http.StatusOK, doc)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}
