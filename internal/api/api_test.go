package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/species"
	"github.com/meur/cobbledex/internal/storage"
)

func testDataset() *dex.Dataset {
	d := dex.NewDataset()

	chomp := d.GetOrCreate("garchomp", "Garchomp")
	chomp.Tier = "OU"
	chomp.Rank = 2
	chomp.DexNumber = 445
	chomp.Types = []string{"dragon", "ground"}
	chomp.Stats = dex.BaseStats{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102}
	chomp.Locations = []dex.Location{{SpawnMethod: "Cave", Rarity: "Rare"}}

	zard := d.GetOrCreate("charizard", "Charizard")
	zard.Tier = "Uber"
	zard.Rank = 1
	zard.DexNumber = 6
	zard.Types = []string{"fire", "flying"}
	zard.Stats = dex.BaseStats{HP: 78, Attack: 84, Defense: 78, SpecialAttack: 109, SpecialDefense: 85, Speed: 100}

	return d
}

func newTestServer(t *testing.T, dataset *dex.Dataset) *Server {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	sp := species.NewClient("http://127.0.0.1:0", zerolog.Nop())
	return New(store, dataset, sp, zerolog.Nop())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var doc map[string]json.RawMessage
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), "body: %s", rec.Body.String())
	}
	return rec, doc
}

func TestGetRecordAndMissSuggestions(t *testing.T) {
	s := newTestServer(t, testDataset())

	rec, _ := doJSON(t, s, http.MethodGet, "/api/dex/Garchomp", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, doc := doJSON(t, s, http.MethodGet, "/api/dex/garchump", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var suggestions []string
	require.NoError(t, json.Unmarshal(doc["suggestions"], &suggestions))
	assert.Contains(t, suggestions, "garchomp")
}

func TestViewEndpoint(t *testing.T) {
	s := newTestServer(t, testDataset())

	rec, doc := doJSON(t, s, http.MethodGet, "/api/view?tab=ubers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []dex.Record
	require.NoError(t, json.Unmarshal(doc["results"], &results))
	require.Len(t, results, 1)
	assert.Equal(t, "charizard", results[0].Identity)

	rec, doc = doJSON(t, s, http.MethodGet, "/api/view?q=spe%3E100&spawns=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(doc["results"], &results))
	require.Len(t, results, 1)
	assert.Equal(t, "garchomp", results[0].Identity)
}

func TestDatasetUnavailable(t *testing.T) {
	s := newTestServer(t, nil)
	rec, _ := doJSON(t, s, http.MethodGet, "/api/view", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Health stays up regardless.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	hrec := httptest.NewRecorder()
	s.ServeHTTP(hrec, req)
	assert.Equal(t, http.StatusOK, hrec.Code)
}

func TestFavoritesEndpoint(t *testing.T) {
	s := newTestServer(t, testDataset())

	rec, _ := doJSON(t, s, http.MethodPut, "/api/favorites",
		map[string]any{"favorites": []string{"charizard", "garchomp"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, doc := doJSON(t, s, http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var favs []string
	require.NoError(t, json.Unmarshal(doc["favorites"], &favs))
	assert.Equal(t, []string{"charizard", "garchomp"}, favs)
}

func TestTeamLifecycle(t *testing.T) {
	s := newTestServer(t, testDataset())

	chomp := "garchomp"
	rec, doc := doJSON(t, s, http.MethodPost, "/api/teams",
		map[string]any{"name": "Core", "identities": []*string{&chomp, nil}})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", doc)

	var created struct {
		ID    string          `json:"id"`
		Slots []*dex.TeamSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Slots, 6)
	assert.Equal(t, "garchomp", created.Slots[0].Identity)
	assert.Nil(t, created.Slots[1])

	// Analysis and suggestions respond for the stored team.
	arec, _ := doJSON(t, s, http.MethodGet, "/api/teams/"+created.ID+"/analysis", nil)
	assert.Equal(t, http.StatusOK, arec.Code)
	srec, _ := doJSON(t, s, http.MethodGet, "/api/teams/"+created.ID+"/suggestions", nil)
	assert.Equal(t, http.StatusOK, srec.Code)

	// Share and re-import.
	shrec, shdoc := doJSON(t, s, http.MethodGet, "/api/teams/"+created.ID+"/share", nil)
	require.Equal(t, http.StatusOK, shrec.Code)
	var code string
	require.NoError(t, json.Unmarshal(shdoc["code"], &code))

	irec, _ := doJSON(t, s, http.MethodPost, "/api/teams/import",
		map[string]any{"name": "Imported", "code": code})
	assert.Equal(t, http.StatusCreated, irec.Code)

	// Malformed code is a client error, not a crash.
	brec, _ := doJSON(t, s, http.MethodPost, "/api/teams/import",
		map[string]any{"name": "Broken", "code": "@@definitely not base64@@"})
	assert.Equal(t, http.StatusBadRequest, brec.Code)
}

func TestCreateTeamUnknownIdentity(t *testing.T) {
	s := newTestServer(t, testDataset())
	ghost := "missingno"
	rec, doc := doJSON(t, s, http.MethodPost, "/api/teams",
		map[string]any{"name": "Glitch", "identities": []*string{&ghost}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var unknown []string
	require.NoError(t, json.Unmarshal(doc["unknown"], &unknown))
	assert.Equal(t, []string{"missingno"}, unknown)
}

func TestTypeChartEndpoints(t *testing.T) {
	s := newTestServer(t, testDataset())

	rec, doc := doJSON(t, s, http.MethodGet, "/api/typechart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, doc, 18)

	rec, _ = doJSON(t, s, http.MethodGet, "/api/typechart/fire", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, s, http.MethodGet, "/api/typechart/plastic", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
