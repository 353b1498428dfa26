package service

import (
	"context"
	"errors"
	"time"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/repo"
	"github.com/Egor213/LogiScan/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/google/uuid"
)

type ArchiveService struct {
	archiveRepo repo.Archive
}

func NewArchiveService(ar repo.Archive) *ArchiveService {
	return &ArchiveService{archiveRepo: ar}
}

func (s *ArchiveService) Save(ctx context.Context, run domain.RunSummary, incidents []domain.Incident) error {
	err := s.archiveRepo.SaveRun(ctx, run, incidents)
	if err != nil {
		if errors.Is(err, repoerrs.ErrAlreadyExists) {
			return ErrRunAlreadyArchived
		}
		return errorsUtils.WrapPathErr(errors.Join(ErrCannotArchive, err))
	}
	return nil
}

func NewRunSummary(source string, startedAt, finishedAt time.Time, a domain.Analysis) domain.RunSummary {
	return domain.RunSummary{
		ID:            uuid.New(),
		Source:        source,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		TotalRequests: a.Stats.TotalRequests,
		UniqueIPs:     len(a.Stats.UniqueIPs),
		Errors:        len(a.Stats.Errors),
		Incidents:     len(a.Security.Incidents),
		LinesRead:     a.Lines.Read,
		LinesSkipped:  a.Lines.Skipped(),
	}
}
