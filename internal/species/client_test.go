package species

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubService(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/garchomp", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{
			"id": 445, "name": "garchomp",
			"types": [{"slot":1,"type":{"name":"dragon"}},{"slot":2,"type":{"name":"ground"}}],
			"stats": [{"base_stat":108,"stat":{"name":"hp"}},{"base_stat":102,"stat":{"name":"speed"}}],
			"abilities": [{"ability":{"name":"sand-veil"},"is_hidden":false}],
			"sprites": {"front_default":"sprite.png","other":{"official-artwork":{"front_default":"art.png"}}}
		}`))
	})
	mux.HandleFunc("/pokemon-species/445", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":445,"is_legendary":false,"is_mythical":false,"evolution_chain":{"url":""}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDetailsCaching(t *testing.T) {
	var hits atomic.Int64
	srv := stubService(t, &hits)
	c := NewClient(srv.URL, zerolog.Nop())

	d, err := c.Details(context.Background(), "garchomp")
	require.NoError(t, err)
	assert.Equal(t, 445, d.ID)
	require.Len(t, d.Types, 2)
	assert.Equal(t, "dragon", d.Types[0].Type.Name)
	assert.Equal(t, "art.png", d.Sprites.Other.OfficialArtwork.FrontDefault)

	// Second lookup is served from cache.
	_, err = c.Details(context.Background(), "garchomp")
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestDetailsNotFound(t *testing.T) {
	var hits atomic.Int64
	srv := stubService(t, &hits)
	c := NewClient(srv.URL, zerolog.Nop())

	_, err := c.Details(context.Background(), "missingno")
	assert.Error(t, err)
}
