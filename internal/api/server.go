package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/limjk/policylens/internal/llm"
	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/research"
	"github.com/limjk/policylens/internal/source"
	"github.com/limjk/policylens/internal/verification"
)

// ServerConfig holds the collaborators the server is built from.
type ServerConfig struct {
	Documents source.Source
	Generator llm.Generator
}

type Server struct {
	router   *chi.Mux
	research *research.Service
}

// NewServer builds the HTTP surface around the research pipeline.
func NewServer(config ServerConfig) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	analyzer := query.NewAnalyzer(nil)
	verifier := verification.NewService(nil, verification.Config{})

	s := &Server{
		router:   r,
		research: research.NewService(analyzer, verifier, config.Documents, config.Generator),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Helper to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
