package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Egor213/LogiScan/internal/domain"
)

const (
	DefaultBruteForceThreshold = 3
	DefaultLoginPath           = "/login"
)

// injectionKeywords are checked in this order; the first hit wins.
var injectionKeywords = []string{"select", "union", "drop", "--", ";"}

type DetectorOption func(*SecurityDetector)

func WithBruteForceThreshold(n int) DetectorOption {
	return func(d *SecurityDetector) {
		if n > 0 {
			d.threshold = n
		}
	}
}

func WithLoginPath(path string) DetectorOption {
	return func(d *SecurityDetector) {
		if path != "" {
			d.loginPath = path
		}
	}
}

// SecurityDetector runs the brute-force, forbidden-access and injection
// checks against each entry and appends incidents to the shared state.
type SecurityDetector struct {
	state     *domain.SecurityState
	threshold int
	loginPath string
}

func NewSecurityDetector(state *domain.SecurityState, opts ...DetectorOption) *SecurityDetector {
	d := &SecurityDetector{
		state:     state,
		threshold: DefaultBruteForceThreshold,
		loginPath: DefaultLoginPath,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Verdict is what one entry would change in the security state. It is
// computed without touching the state and applied with Commit.
type Verdict struct {
	ip          string
	failedLogin bool
	incidents   []domain.Incident
}

func (v Verdict) Incidents() []domain.Incident {
	return v.incidents
}

// Inspect evaluates entry and commits the result in one step.
func (d *SecurityDetector) Inspect(line int, entry domain.LogEntry) []domain.Incident {
	return d.Commit(d.Evaluate(line, entry))
}

// Evaluate runs every check against entry without modifying the state.
// Incidents come back in check order.
func (d *SecurityDetector) Evaluate(line int, entry domain.LogEntry) Verdict {
	v := Verdict{ip: entry.IP}

	if entry.URL == d.loginPath && entry.Status == http.StatusUnauthorized {
		v.failedLogin = true
		// Fires once per IP: only the transition onto the threshold counts.
		if d.state.FailedLogins[entry.IP]+1 == d.threshold {
			v.add(domain.IncidentBruteForce, line, entry,
				fmt.Sprintf("Brute force attempt suspected from %s", entry.IP))
		}
	}

	if entry.Status == http.StatusForbidden {
		v.add(domain.IncidentForbiddenAccess, line, entry,
			fmt.Sprintf("Forbidden access attempt: %s -> %s", entry.IP, entry.URL))
	}

	url := strings.ToLower(entry.URL)
	for _, word := range injectionKeywords {
		if strings.Contains(url, word) {
			v.add(domain.IncidentSQLInjection, line, entry,
				fmt.Sprintf("Possible SQL injection attempt from %s", entry.IP))
			break
		}
	}

	return v
}

// Commit applies v to the state and returns the incidents it appended.
func (d *SecurityDetector) Commit(v Verdict) []domain.Incident {
	if v.failedLogin {
		d.state.FailedLogins[v.ip]++
	}

	before := len(d.state.Incidents)
	d.state.Incidents = append(d.state.Incidents, v.incidents...)

	return d.state.Incidents[before:len(d.state.Incidents):len(d.state.Incidents)]
}

func (v *Verdict) add(kind domain.IncidentKind, line int, entry domain.LogEntry, msg string) {
	v.incidents = append(v.incidents, domain.Incident{
		Kind:    kind,
		IP:      entry.IP,
		URL:     entry.URL,
		Line:    line,
		Message: msg,
	})
}
