package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/storage"
	"github.com/meur/cobbledex/internal/team"
)

// teamRequest is the create/update body: a name plus up to 6 nullable
// identities, resolved against the dataset into slot projections.
type teamRequest struct {
	Name       string    `json:"name"`
	Identities []*string `json:"identities"`
}

// resolveSlots maps nullable identities onto slot projections. Unknown
// identities are returned separately so the handler can surface them.
func (s *Server) resolveSlots(identities []*string) (slots []*dex.TeamSlot, unknown []string) {
	if len(identities) > team.MaxSize {
		identities = identities[:team.MaxSize]
	}
	slots = make([]*dex.TeamSlot, len(identities))
	for i, id := range identities {
		if id == nil {
			continue
		}
		rec, ok := s.dataset.Get(dex.Identity(*id))
		if !ok {
			unknown = append(unknown, *id)
			continue
		}
		slots[i] = rec.Slot()
	}
	return slots, unknown
}

// handleCreateTeam creates a new named team
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	var req teamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	existing, err := s.store.GetTeamByName(req.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check team name")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "A team with that name already exists")
		return
	}

	slots, unknown := s.resolveSlots(req.Identities)
	if len(unknown) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Unknown identities",
			"unknown": unknown,
		})
		return
	}

	t, err := s.store.CreateTeam(req.Name, slots)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create team")
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// handleListTeams returns all stored teams
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.store.ListTeams()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams")
		return
	}
	if teams == nil {
		teams = []storage.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// loadTeam fetches a team by URL param, writing the error response itself
// when the team cannot be served.
func (s *Server) loadTeam(w http.ResponseWriter, r *http.Request) *storage.Team {
	t, err := s.store.GetTeam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team")
		return nil
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Team not found")
		return nil
	}
	return t
}

// handleGetTeam returns a team by ID
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	if t := s.loadTeam(w, r); t != nil {
		respondJSON(w, http.StatusOK, t)
	}
}

// handleUpdateTeam replaces a team's name and/or slots
func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	t := s.loadTeam(w, r)
	if t == nil {
		return
	}

	var req struct {
		Name       *string   `json:"name,omitempty"`
		Identities []*string `json:"identities,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var slots []*dex.TeamSlot
	if req.Identities != nil {
		var unknown []string
		slots, unknown = s.resolveSlots(req.Identities)
		if len(unknown) > 0 {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Unknown identities",
				"unknown": unknown,
			})
			return
		}
	}

	if err := s.store.UpdateTeam(t.ID, req.Name, slots); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}
	updated, _ := s.store.GetTeam(t.ID)
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteTeam deletes a team by ID
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	t := s.loadTeam(w, r)
	if t == nil {
		return
	}
	if err := s.store.DeleteTeam(t.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// members resolves a stored team's filled slots back to full records.
// Identities that have dropped out of the dataset since the team was saved
// are reported, not silently ignored.
func (s *Server) members(t *storage.Team) (records []*dex.Record, missing []string) {
	for _, slot := range t.Slots {
		if slot == nil {
			continue
		}
		rec, ok := s.dataset.Get(slot.Identity)
		if !ok {
			missing = append(missing, slot.Identity)
			continue
		}
		records = append(records, rec)
	}
	return records, missing
}

// handleTeamAnalysis returns role, coverage and weakness analytics
func (s *Server) handleTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	t := s.loadTeam(w, r)
	if t == nil {
		return
	}
	records, missing := s.members(t)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":     t.Name,
		"analysis": team.Analyze(records),
		"missing":  missing,
	})
}

// handleTeamSuggestions returns scored candidate additions
func (s *Server) handleTeamSuggestions(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	t := s.loadTeam(w, r)
	if t == nil {
		return
	}
	records, _ := s.members(t)
	suggestions := team.Suggest(records, s.dataset.All())
	if suggestions == nil {
		suggestions = []team.Suggestion{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":        t.Name,
		"suggestions": suggestions,
	})
}

// handleShareTeam returns the team's shareable code
func (s *Server) handleShareTeam(w http.ResponseWriter, r *http.Request) {
	t := s.loadTeam(w, r)
	if t == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"team": t.Name,
		"code": team.EncodeShareCode(t.Slots),
	})
}

// handleImportTeam creates a team from a share code
func (s *Server) handleImportTeam(w http.ResponseWriter, r *http.Request) {
	if !s.requireDataset(w) {
		return
	}
	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "name and code are required")
		return
	}

	slots, err := team.DecodeShareCode(req.Code, s.dataset.Records)
	if err != nil {
		if errors.Is(err, team.ErrInvalidCode) {
			respondError(w, http.StatusBadRequest, "Invalid team code")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to decode team code")
		return
	}

	t, err := s.store.CreateTeam(req.Name, slots)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create team")
		return
	}
	respondJSON(w, http.StatusCreated, t)
}
