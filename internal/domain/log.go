package domain

// LogEntry is one successfully parsed access-log line. Timestamp keeps the
// bracketed text exactly as it appeared in the log.
type LogEntry struct {
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	Size      int    `json:"size"`
}

// IsError reports whether the response status is a client or server error.
func (e LogEntry) IsError() bool {
	return e.Status >= 400
}
