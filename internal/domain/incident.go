package domain

type IncidentKind string

const (
	IncidentBruteForce      IncidentKind = "brute_force"
	IncidentForbiddenAccess IncidentKind = "forbidden_access"
	IncidentSQLInjection    IncidentKind = "sql_injection"
)

// Incident is a detected security event. Message is what the security report prints.
type Incident struct {
	Kind    IncidentKind `json:"kind"`
	IP      string       `json:"ip"`
	URL     string       `json:"url"`
	Line    int          `json:"line"`
	Message string       `json:"message"`
}
