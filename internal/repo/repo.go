package repo

import (
	"context"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/repo/pgdb"
	"github.com/Egor213/LogiScan/pkg/postgres"
)

type Archive interface {
	SaveRun(ctx context.Context, run domain.RunSummary, incidents []domain.Incident) error
}

type Repositories struct {
	Archive
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Archive: pgdb.NewArchiveRepo(pg),
	}
}
