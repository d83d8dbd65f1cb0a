package roster

// AdminRef is the acting-admin reference embedded in a log entry.
type AdminRef struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
}

// Location is the geolocation the backend resolves from the source IP.
type Location struct {
	Country  string     `json:"country"`
	City     string     `json:"city"`
	LL       [2]float64 `json:"ll"`
	Timezone string     `json:"timezone"`
}

// LogEntry is an append-only activity record produced by the backend.
// The dashboard only ever reads these.
type LogEntry struct {
	AdminID   AdminRef `json:"adminId"`
	Username  string   `json:"username"`
	Action    string   `json:"action"`
	IP        string   `json:"ip"`
	Location  Location `json:"location"`
	UserAgent string   `json:"userAgent"`
	Timestamp string   `json:"timestamp"`
}
