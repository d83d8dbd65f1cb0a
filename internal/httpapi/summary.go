package httpapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/spex2024/ug-dashboard/internal/notify"
	"github.com/spex2024/ug-dashboard/internal/roster"
)

type distributionItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type summaryResponse struct {
	TotalStaff     int `json:"totalStaff"`
	JuniorOfficers int `json:"juniorOfficers"`
	SeniorOfficers int `json:"seniorOfficers"`
	MaleCount      int `json:"maleCount"`
	FemaleCount    int `json:"femaleCount"`

	Departments    []distributionItem `json:"departments"`
	MaritalStatus  []distributionItem `json:"maritalStatus"`
	Qualifications []distributionItem `json:"qualifications"`
	Ranks          []distributionItem `json:"ranks"`

	Greeting string `json:"greeting"`
}

// handleSummary is the read-only aggregation behind the dashboard's
// stat cards and charts.
func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if err := a.officers.FetchAll(r.Context()); err != nil {
		writeUpstreamError(w, r, err, "Failed to fetch officers")
		return
	}
	list := a.officers.Snapshot()

	res := summaryResponse{
		TotalStaff: len(list),
		Greeting:   notify.Greeting(time.Now()),
	}
	departments := map[string]int{}
	marital := map[string]int{}
	qualifications := map[string]int{}
	ranks := map[string]int{}

	for _, o := range list {
		switch o.LevelOfficer {
		case "Junior Officer":
			res.JuniorOfficers++
		case "Senior Officer":
			res.SeniorOfficers++
		}
		switch o.Gender {
		case "Male":
			res.MaleCount++
		case "Female":
			res.FemaleCount++
		}
		departments[orDefault(o.Department, "Unassigned")]++
		marital[orDefault(o.MaritalStatus, "Unknown")]++
		qualifications[orDefault(o.Qualification, "Unknown")]++
		if o.Rank != "" {
			ranks[roster.FullRankName(o.Rank)]++
		}
	}

	res.Departments = distribution(departments)
	res.MaritalStatus = distribution(marital)
	res.Qualifications = distribution(qualifications)
	res.Ranks = distribution(ranks)
	writeJSON(w, http.StatusOK, res)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// distribution flattens a count map into a stable list, largest first.
func distribution(counts map[string]int) []distributionItem {
	items := make([]distributionItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, distributionItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	return items
}
