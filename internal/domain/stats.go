package domain

// AggregateStats holds the traffic counters collected during one run.
type AggregateStats struct {
	TotalRequests int
	UniqueIPs     map[string]struct{}
	MethodCounts  *Counter[string]
	URLCounts     *Counter[string]
	StatusCounts  *Counter[int]
	// Errors keeps entries with status >= 400 in encounter order.
	Errors []LogEntry
}

func NewAggregateStats() *AggregateStats {
	return &AggregateStats{
		UniqueIPs:    make(map[string]struct{}),
		MethodCounts: NewCounter[string](),
		URLCounts:    NewCounter[string](),
		StatusCounts: NewCounter[int](),
	}
}

// SecurityState is the cross-entry state of the security checks.
type SecurityState struct {
	FailedLogins map[string]int
	Incidents    []Incident
}

func NewSecurityState() *SecurityState {
	return &SecurityState{
		FailedLogins: make(map[string]int),
	}
}

// LineStats accounts for every line read from the input.
type LineStats struct {
	Read             int `json:"read"`
	Parsed           int `json:"parsed"`
	Malformed        int `json:"malformed"`
	ConversionErrors int `json:"conversion_errors"`
	Unexpected       int `json:"unexpected"`
}

func (s LineStats) Skipped() int {
	return s.Malformed + s.ConversionErrors + s.Unexpected
}

// Analysis is the final, read-only state handed to report generation.
type Analysis struct {
	Stats    *AggregateStats
	Security *SecurityState
	Lines    LineStats
}
