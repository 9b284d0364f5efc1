package wire

import (
	"expvar"
	"net/http"

	"quickstart-api/internal/adaptor"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/middleware"
	"quickstart-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router on top of repo.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	// Buckets are keyed on the connection address, before RealIP trusts
	// X-Forwarded-For. Behind a proxy all clients share the proxy's bucket.
	r.Use(middleware.RateLimit(config.Limiter, logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(config.CORS.TrustedOrigins))
	// "/movies" and "/movies/" resolve to the same route
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Authenticate(repo.Session, repo.User, logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method \""+r.Method+"\" not allowed")
	})

	r.Get("/", handler.Root.Index)
	r.Get("/health", handler.Root.Health)
	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())

	wireAuth(r, handler.Auth, logger)
	wireUser(r, handler.User, config, logger)
	wireGroup(r, handler.Group, logger)
	wireMovie(r, handler.Movie)

	return r
}
