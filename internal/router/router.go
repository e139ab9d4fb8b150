package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"movie-catalog/internal/config"
	"movie-catalog/internal/handler"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Movie  *handler.MovieHandler
	Review *handler.ReviewHandler
	Health *handler.HealthHandler
}

// New builds the route table. Everything under /movies and /reviews passes
// through the auth gate; /signup, /signin, /health and /metrics are public.
func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	h Handlers,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics(m))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", h.Health.Health)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/signup", h.Auth.Signup)
		api.Post("/signin", h.Auth.Signin)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Route("/movies", func(movies chi.Router) {
				movies.Get("/", h.Movie.List)
				movies.Post("/", h.Movie.Create)
				movies.Get("/{movieId}", h.Movie.Get)
				movies.Put("/{movieId}", h.Movie.Update)
				movies.Delete("/{movieId}", h.Movie.Delete)
			})

			protected.Route("/reviews", func(reviews chi.Router) {
				reviews.Get("/", h.Review.List)
				reviews.Post("/", h.Review.Create)
				reviews.Delete("/{reviewId}", h.Review.Delete)
			})
		})
	})

	return r
}
