package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dgallion1/navtree/internal/config"
	"github.com/dgallion1/navtree/internal/contents"
	"github.com/dgallion1/navtree/internal/sidebar"
)

// Server is the HTTP API over the contents fetcher and the shared sidebar.
type Server struct {
	router  chi.Router
	fetcher *contents.Fetcher
	stats   *contents.Stats
	sidebar *sidebar.Context
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(fetcher *contents.Fetcher, stats *contents.Stats, sb *sidebar.Context, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		fetcher: fetcher,
		stats:   stats,
		sidebar: sb,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/contents", s.handleContents)
		r.Post("/contents/fetch", s.handleFetch)
		r.Post("/contents/import", s.handleImport)

		r.Get("/tree", s.handleTree)
		r.Get("/active", s.handleActive)
		r.Get("/check", s.handleCheck)

		r.Get("/sidebar", s.handleSidebar)
		r.Post("/sidebar/toggle/{key}", s.handleSidebarToggle)
		r.Post("/sidebar/select/{key}", s.handleSidebarSelect)
		r.Post("/sidebar/route", s.handleSidebarRoute)
		r.Post("/sidebar/filter", s.handleSidebarFilter)
		r.Delete("/sidebar/filter", s.handleSidebarClearFilter)

		r.Get("/stats/fetch", s.handleFetchStats)
	})

	r.Get("/sidebar.html", s.handleSidebarHTML)
	r.Get("/outline.md", s.handleOutline)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
