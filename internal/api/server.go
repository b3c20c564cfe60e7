package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/tabsync/internal/config"
	"github.com/dgallion1/tabsync/internal/table"
	"github.com/dgallion1/tabsync/internal/updater"
)

// Server is the HTTP API server for tabsync.
type Server struct {
	router        chi.Router
	tracker       updater.Client
	log           *slog.Logger
	cfg           config.Config
	defaultPolicy table.Policy
}

// NewServer creates and configures the HTTP server.
func NewServer(tracker updater.Client, log *slog.Logger, cfg config.Config) *Server {
	policy, err := table.ParsePolicy(cfg.UpsertPolicy)
	if err != nil {
		policy = table.PolicyReject
	}
	s := &Server{
		tracker:       tracker,
		log:           log,
		cfg:           cfg,
		defaultPolicy: policy,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.TabsyncAPIKey, s.log))

		r.Post("/api/issues/{issueKey}/components", s.handleUpsertComponent)
		r.Get("/api/issues/{issueKey}/components", s.handleGetComponents)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
