package pgdb_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/repo/pgdb"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func TestBuildRunInsert(t *testing.T) {
	run := domain.RunSummary{
		ID:            uuid.New(),
		Source:        "server.log",
		StartedAt:     time.Unix(100, 0),
		FinishedAt:    time.Unix(160, 0),
		TotalRequests: 4,
		UniqueIPs:     1,
		Errors:        3,
		Incidents:     1,
		LinesRead:     5,
		LinesSkipped:  1,
	}

	sql, args, err := pgdb.BuildRunInsert(builder, run).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO analysis_runs (id,source,started_at,finished_at,total_requests,unique_ips,errors,incidents,lines_read,lines_skipped) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)", sql)
	assert.Equal(t, []any{
		run.ID, "server.log", run.StartedAt, run.FinishedAt, 4, 1, 3, 1, 5, 1,
	}, args)
}

func TestBuildIncidentInserts(t *testing.T) {
	run := domain.RunSummary{ID: uuid.New()}

	testCases := []struct {
		name        string
		incidents   int
		wantBatches int
	}{
		{name: "none", incidents: 0, wantBatches: 0},
		{name: "single batch", incidents: 3, wantBatches: 1},
		{name: "exact batch", incidents: 1000, wantBatches: 1},
		{name: "split", incidents: 2001, wantBatches: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			incidents := make([]domain.Incident, tc.incidents)
			for i := range incidents {
				incidents[i] = domain.Incident{
					Kind:    domain.IncidentForbiddenAccess,
					IP:      "1.2.3.4",
					URL:     fmt.Sprintf("/admin/%d", i),
					Line:    i + 1,
					Message: "Forbidden access attempt",
				}
			}

			inserts := pgdb.BuildIncidentInserts(builder, run, incidents)
			require.Len(t, inserts, tc.wantBatches)

			seq := 0
			for _, q := range inserts {
				_, args, err := q.ToSql()
				require.NoError(t, err)
				require.Zero(t, len(args)%7)
				for i := 0; i < len(args); i += 7 {
					seq++
					assert.Equal(t, run.ID, args[i])
					assert.Equal(t, seq, args[i+1])
				}
			}
			assert.Equal(t, tc.incidents, seq)
		})
	}
}
