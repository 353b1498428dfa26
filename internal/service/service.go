package service

import (
	"context"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/repo"
)

type Archive interface {
	Save(ctx context.Context, run domain.RunSummary, incidents []domain.Incident) error
}

type Services struct {
	Archive
}

type ServicesDependencies struct {
	Repos *repo.Repositories
}

// NewServices leaves Archive nil when no repositories are configured.
func NewServices(deps ServicesDependencies) *Services {
	s := &Services{}
	if deps.Repos != nil {
		s.Archive = NewArchiveService(deps.Repos.Archive)
	}
	return s
}
