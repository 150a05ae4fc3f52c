package wire

import (
	"context"
	"net/http"
	"time"

	"streamvault/internal/adaptor"
	"streamvault/internal/data/repository"
	"streamvault/internal/usecase"
	"streamvault/pkg/middleware"
	"streamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger is the dependency the router checks on /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, db Pinger, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, db, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, db Pinger, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.ViewerSession(logger))
	r.Use(middleware.Logger(logger))

	wireTitle(r, handler.Title)
	wireEpisode(r, handler.Episode)
	wireProgress(r, handler.Progress)
	wireAdmin(r, handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseUnavailable(w, "Database unavailable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
