package usecase

import (
	"streamvault/internal/data/repository"
	"streamvault/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Title    TitleService
	Episode  EpisodeService
	Progress ProgressService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	progress := NewProgressService(repo.Progress, log)

	return &Service{
		Title:    NewTitleService(repo, config.Catalog, log),
		Episode:  NewEpisodeService(repo, progress, log),
		Progress: progress,
	}
}
