package pgdb

import (
	"github.com/Egor213/LogiScan/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

// incidentBatchSize keeps a single INSERT well under the 65535 bind parameter limit.
const incidentBatchSize = 1000

func BuildRunInsert(b sq.StatementBuilderType, run domain.RunSummary) sq.InsertBuilder {
	return b.Insert("analysis_runs").
		Columns(
			"id", "source", "started_at", "finished_at",
			"total_requests", "unique_ips", "errors", "incidents",
			"lines_read", "lines_skipped",
		).
		Values(
			run.ID, run.Source, run.StartedAt, run.FinishedAt,
			run.TotalRequests, run.UniqueIPs, run.Errors, run.Incidents,
			run.LinesRead, run.LinesSkipped,
		)
}

// BuildIncidentInserts splits incidents into batched inserts; seq preserves detection order.
func BuildIncidentInserts(b sq.StatementBuilderType, run domain.RunSummary, incidents []domain.Incident) []sq.InsertBuilder {
	var inserts []sq.InsertBuilder

	for start := 0; start < len(incidents); start += incidentBatchSize {
		end := min(start+incidentBatchSize, len(incidents))

		q := b.Insert("security_incidents").
			Columns("run_id", "seq", "kind", "ip", "url", "line", "message")
		for i, inc := range incidents[start:end] {
			q = q.Values(run.ID, start+i+1, string(inc.Kind), inc.IP, inc.URL, inc.Line, inc.Message)
		}
		inserts = append(inserts, q)
	}

	return inserts
}
