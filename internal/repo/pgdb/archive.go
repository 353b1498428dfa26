package pgdb

import (
	"context"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/Egor213/LogiScan/pkg/postgres"
)

// ArchiveRepo stores finished runs. Nothing here is read back by the analyzer.
type ArchiveRepo struct {
	*postgres.Postgres
}

func NewArchiveRepo(pg *postgres.Postgres) *ArchiveRepo {
	return &ArchiveRepo{pg}
}

// SaveRun writes the run row and all of its incidents in one transaction.
func (r *ArchiveRepo) SaveRun(ctx context.Context, run domain.RunSummary, incidents []domain.Incident) error {
	return r.TrManager.Do(ctx, func(ctx context.Context) error {
		conn := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool)

		sql, args, err := BuildRunInsert(r.Builder, run).ToSql()
		if err != nil {
			return errorsUtils.WrapPathErr(err)
		}

		if _, err := conn.Exec(ctx, sql, args...); err != nil {
			if errorsUtils.IsUniqueViolation(err) {
				return repoerrs.ErrAlreadyExists
			}
			return errorsUtils.WrapPathErr(err)
		}

		for _, q := range BuildIncidentInserts(r.Builder, run, incidents) {
			sql, args, err := q.ToSql()
			if err != nil {
				return errorsUtils.WrapPathErr(err)
			}
			if _, err := conn.Exec(ctx, sql, args...); err != nil {
				return errorsUtils.WrapPathErr(err)
			}
		}

		return nil
	})
}
