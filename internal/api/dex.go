package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-chi/chi/v5"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/query"
	"github.com/meur/cobbledex/internal/typechart"
	"github.com/meur/cobbledex/internal/view"
)

// handleGetDex returns the full record collection plus build metadata
func (s *Server) handleGetDex(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": s.dataset.All(),
		"meta":    s.dataset.Meta,
	})
}

// handleGetRecord returns a single record by identity. A miss is a real
// data gap the caller should see, so it comes back as an explicit 404 with
// near-miss suggestions rather than an empty body.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	identity := dex.Identity(chi.URLParam(r, "identity"))

	rec, ok := s.dataset.Get(identity)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":       "Record not found",
			"identity":    identity,
			"suggestions": s.nearestIdentities(identity, 5),
		})
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// nearestIdentities finds up to n known identities within edit distance 3.
func (s *Server) nearestIdentities(identity string, n int) []string {
	type scored struct {
		id   string
		dist int
	}
	var nearby []scored
	for id := range s.dataset.Records {
		if dist := levenshtein.ComputeDistance(identity, id); dist <= 3 {
			nearby = append(nearby, scored{id, dist})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].dist != nearby[j].dist {
			return nearby[i].dist < nearby[j].dist
		}
		return nearby[i].id < nearby[j].id
	})
	out := []string{}
	for i := 0; i < len(nearby) && i < n; i++ {
		out = append(out, nearby[i].id)
	}
	return out
}

// handleGetView runs the filter/sort pipeline over the dataset
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	q := r.URL.Query()

	req := view.Request{
		Tab:       q.Get("tab"),
		Predicate: query.Parse(q.Get("q")),
		Sort:      q.Get("sort"),
		Facets: view.Facets{
			SpawnsOnly: q.Get("spawns") == "true",
			Rarity:     q.Get("rarity"),
		},
	}
	if types := q.Get("types"); types != "" {
		req.Facets.SelectedTypes = strings.Split(types, ",")
	}
	if req.Tab == view.TabFavorites {
		favorites, err := s.store.GetFavorites()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load favorites")
			return
		}
		req.Favorites = favorites
	}

	results := view.Run(s.dataset.All(), req)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":     results,
		"total_count": len(results),
	})
}

// handleGetTypeChart returns the full defensive matchup table
func (s *Server) handleGetTypeChart(w http.ResponseWriter, r *http.Request) {
	table := make(map[string]typechart.Matchup, len(typechart.Types))
	for _, t := range typechart.Types {
		m, _ := typechart.Lookup(t)
		table[t] = m
	}
	respondJSON(w, http.StatusOK, table)
}

// handleGetTypeMatchups returns both matchup views for one type
func (s *Server) handleGetTypeMatchups(w http.ResponseWriter, r *http.Request) {
	typ := strings.ToLower(chi.URLParam(r, "type"))
	if _, ok := typechart.Lookup(typ); !ok {
		respondError(w, http.StatusNotFound, "Unknown type")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"type":      typ,
		"offensive": typechart.Offensive(typ),
		"defensive": typechart.Defensive(typ),
	})
}

// handleGetSpecies proxies the external species service for one numeric id
func (s *Server) handleGetSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid species id")
		return
	}
	bundle, err := s.species.Bundle(r.Context(), id)
	if err != nil {
		s.log.Warn().Err(err).Int("id", id).Msg("species lookup failed")
		respondError(w, http.StatusBadGateway, "Species service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, bundle)
}

// handleGetFavorites returns the ordered favorite identity list
func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.store.GetFavorites()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}

// handlePutFavorites replaces the favorite list
func (s *Server) handlePutFavorites(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Favorites []string `json:"favorites"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.store.SaveFavorites(req.Favorites); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": req.Favorites})
}
