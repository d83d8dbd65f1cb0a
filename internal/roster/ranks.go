package roster

// Rank code to full name tables for the two officer levels.
var (
	JuniorRanks = map[string]string{
		"RFM":     "Recruit Fireman",
		"RFW":     "Recruit Firewoman",
		"FM":      "Fireman",
		"FW":      "Firewoman",
		"LFM":     "Leading Fireman",
		"LFW":     "Leading Firewoman",
		"SUB":     "Sub-Officer",
		"ASTNO":   "Assistant Station Officer",
		"AGO":     "Acting Group Officer",
		"STNO II": "Station Officer II",
		"STNO I":  "Station Officer I",
		"DGO":     "Divisional Officer",
		"GO":      "Group Officer",
	}

	SeniorRanks = map[string]string{
		"ADO II":  "Assistant Divisional Officer II",
		"ADO I":   "Assistant Divisional Officer I",
		"DO III":  "Divisional Officer III",
		"DO II":   "Divisional Officer II",
		"DO I":    "Divisional Officer I",
		"AFCO II": "Assistant Fire Commander Officer II",
		"ACFO I":  "Assistant Chief Fire Officer I",
		"DCFO":    "Deputy Chief Fire Officer",
	}
)

// FullRankName expands a rank code to its full name. Unknown codes are
// returned as-is; an empty code reads as "Unknown Rank".
func FullRankName(code string) string {
	if code == "" {
		return "Unknown Rank"
	}
	if full, ok := JuniorRanks[code]; ok {
		return full
	}
	if full, ok := SeniorRanks[code]; ok {
		return full
	}
	return code
}
