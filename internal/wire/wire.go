package wire

import (
	"net/http"

	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/middleware"
	"homecare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, handler.User, repo, logger)
	wireCatalog(r, handler.Catalog, handler.Rating)
	wireGuest(r, handler.Guest)
	wireBooking(r, handler.Booking, repo, logger)
	wireJobPost(r, handler.JobPost, repo, logger)
	wireRating(r, handler.Rating, repo, logger)
	wireNotification(r, handler.Notification, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
