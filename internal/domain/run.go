package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunSummary describes one finished analysis for archiving.
type RunSummary struct {
	ID            uuid.UUID `db:"id"`
	Source        string    `db:"source"`
	StartedAt     time.Time `db:"started_at"`
	FinishedAt    time.Time `db:"finished_at"`
	TotalRequests int       `db:"total_requests"`
	UniqueIPs     int       `db:"unique_ips"`
	Errors        int       `db:"errors"`
	Incidents     int       `db:"incidents"`
	LinesRead     int       `db:"lines_read"`
	LinesSkipped  int       `db:"lines_skipped"`
}
