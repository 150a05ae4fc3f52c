package adaptor

import (
	"streamvault/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Title    *TitleHandler
	Episode  *EpisodeHandler
	Progress *ProgressHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Title:    NewTitleHandler(service.Title, log),
		Episode:  NewEpisodeHandler(service.Episode, log),
		Progress: NewProgressHandler(service.Progress, log),
	}
}
