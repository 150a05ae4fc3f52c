package wire

import (
	"streamvault/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProgress(r chi.Router, progressHandler *adaptor.ProgressHandler) {
	r.Get("/api/progress", progressHandler.GetProgress)
	r.Post("/api/progress", progressHandler.SaveProgress)
}
