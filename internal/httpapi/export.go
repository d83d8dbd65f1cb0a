package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/spex2024/ug-dashboard/internal/audit"
	"github.com/spex2024/ug-dashboard/internal/roster"
)

var exportHeader = []string{
	"StaffID", "ServiceNumber", "FirstName", "MiddleName", "LastName",
	"Rank", "RankFullName", "Level", "Department", "Gender", "DOB",
	"MaritalStatus", "PhoneNumber", "Email", "BankName", "AccountNumber",
}

// handleExportOfficers streams the officer roster as CSV. The export is
// taken from the current snapshot; a refresh is attempted first but a
// dead upstream does not block the download.
func (a *API) handleExportOfficers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	_ = a.officers.FetchAll(r.Context())
	list := a.officers.Snapshot()

	filename := fmt.Sprintf("officers-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, o := range list {
		_ = cw.Write([]string{
			o.StaffID, o.ServiceNumber, o.FirstName, o.MiddleName, o.LastName,
			o.Rank, roster.FullRankName(o.Rank), o.LevelOfficer, o.Department,
			o.Gender, o.DOB, o.MaritalStatus, o.PhoneNumber, o.Email,
			o.BankName, o.AccountNumber,
		})
	}
	cw.Flush()

	_ = audit.LogEvent(r.Context(), "export.officers", map[string]any{"count": len(list)})
}
