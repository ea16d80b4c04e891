package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JustinTDCT/CineCurator/internal/config"
	"github.com/JustinTDCT/CineCurator/internal/httputil"
	"github.com/JustinTDCT/CineCurator/internal/metadata"
	"github.com/JustinTDCT/CineCurator/internal/movies"
	"github.com/JustinTDCT/CineCurator/internal/search"
	"github.com/JustinTDCT/CineCurator/internal/settings"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the HTTP layer is built on. DB and Settings may be
// nil, in which case /health skips the ping and /api/v1/settings is absent.
type Deps struct {
	DB       Pinger
	Provider metadata.Provider
	Search   *search.Service
	Recent   search.RecentStore
	Movies   *movies.Service
	Queue    movies.RefreshQueue
	Settings settings.Store
	Hub      *WSHub
	Version  string
}

type Server struct {
	config *config.Config
	deps   Deps
	wsHub  *WSHub
	router chi.Router
	now    func() time.Time
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	if deps.Hub == nil {
		deps.Hub = NewWSHub()
	}
	s := &Server{
		config: cfg,
		deps:   deps,
		wsHub:  deps.Hub,
		now:    time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) WSHub() *WSHub {
	return s.wsHub
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)
	r.Use(accessLogMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Total-Count", "Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			if rpm := s.config.Server.RateLimitRPM; rpm > 0 {
				r.Use(httprate.LimitByIP(rpm, time.Minute))
			}
			r.Get("/live", s.handleLiveSearch)
			r.Mount("/", search.NewHandler(s.deps.Search, s.deps.Recent).Router())
		})

		r.Route("/tags", func(r chi.Router) {
			r.Post("/infer", s.handleInferTags)
			r.Post("/toggle", s.handleToggleTag)
			r.Get("/combos", s.handleListCombos)
			r.Post("/combos", s.handleSetCombos)
		})

		r.Mount("/movies", movies.NewHandler(s.deps.Movies, s.deps.Queue).Router())

		if s.deps.Settings != nil {
			r.Mount("/settings", settings.NewHandler(s.deps.Settings).Router())
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok", "version": s.deps.Version}
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.PingContext(ctx); err != nil {
			httputil.WriteError(w, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable")
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}
