package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/meur/cobbledex/internal/api"
	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/species"
	"github.com/meur/cobbledex/internal/storage"
)

func main() {
	godotenv.Load()

	// Parse flags
	port := flag.String("port", getEnv("PORT", "8080"), "Server port")
	dbPath := flag.String("db", getEnv("DB_PATH", "./cobbledex.db"), "SQLite database path")
	dataPath := flag.String("data", getEnv("DATA_PATH", "./dex.json"), "Dataset JSON path")
	speciesAPI := flag.String("species-api", getEnv("SPECIES_API", ""), "Species API base URL")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Initialize storage
	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer store.Close()

	// Load the dataset. A missing or corrupt artifact is not fatal: the
	// server stays up, the data routes answer with an explicit error.
	dataset, err := dex.Load(*dataPath)
	if err != nil {
		log.Error().Err(err).Str("path", *dataPath).Msg("dataset unavailable, serving without data")
		dataset = nil
	} else {
		log.Info().Int("records", len(dataset.Records)).
			Time("built", dataset.Meta.BuildTimestamp).Msg("dataset loaded")
	}

	sp := species.NewClient(*speciesAPI, log)

	// Create router
	r := api.New(store, dataset, sp, log)

	// Serve frontend static files (for production deployment)
	workDir, _ := os.Getwd()
	filesDir := http.Dir(filepath.Join(workDir, "../frontend/dist"))
	FileServer(r.Router(), "/", filesDir)

	log.Info().Str("port", *port).Str("db", *dbPath).Msg("cobbledex API starting")

	if err := http.ListenAndServe(":"+*port, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
