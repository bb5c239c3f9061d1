package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/species"
	"github.com/meur/cobbledex/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store   *storage.Store
	dataset *dex.Dataset
	species *species.Client
	log     zerolog.Logger
	router  chi.Router
}

// New creates a new API server. A nil dataset (missing or corrupt artifact
// at startup) keeps the server up but answers every data route with an
// explicit error so the static shell stays reachable.
func New(store *storage.Store, dataset *dex.Dataset, sp *species.Client, log zerolog.Logger) *Server {
	s := &Server{
		store:   store,
		dataset: dataset,
		species: sp,
		log:     log,
		router:  chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying chi router so the caller can mount extra
// handlers, like the static file server.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Dataset and catalog view
		r.Get("/dex", s.handleGetDex)
		r.Get("/dex/{identity}", s.handleGetRecord)
		r.Get("/view", s.handleGetView)

		// Type chart
		r.Get("/typechart", s.handleGetTypeChart)
		r.Get("/typechart/{type}", s.handleGetTypeMatchups)

		// Species detail proxy
		r.Get("/species/{id}", s.handleGetSpecies)

		// Favorites
		r.Get("/favorites", s.handleGetFavorites)
		r.Put("/favorites", s.handlePutFavorites)

		// Teams
		r.Post("/teams", s.handleCreateTeam)
		r.Get("/teams", s.handleListTeams)
		r.Get("/teams/{id}", s.handleGetTeam)
		r.Put("/teams/{id}", s.handleUpdateTeam)
		r.Delete("/teams/{id}", s.handleDeleteTeam)
		r.Get("/teams/{id}/analysis", s.handleTeamAnalysis)
		r.Get("/teams/{id}/suggestions", s.handleTeamSuggestions)
		r.Get("/teams/{id}/share", s.handleShareTeam)
		r.Post("/teams/import", s.handleImportTeam)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requireDataset guards the data-dependent routes when no dataset loaded.
func (s *Server) requireDataset(w http.ResponseWriter) bool {
	if s.dataset == nil {
		respondError(w, http.StatusServiceUnavailable, "Dataset not loaded")
		return false
	}
	return true
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
