// Package species wraps the public read-only species service. Results are
// cached per identifier for the process lifetime; the fetch is idempotent,
// so two concurrent first lookups for the same identifier doing duplicate
// work is acceptable.
package species

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches species data with an in-memory result cache.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger

	mu      sync.RWMutex
	details map[string]*Details
	info    map[string]*SpeciesInfo
	chains  map[string]*EvolutionChain
}

// NewClient creates a species client. An empty baseURL selects the public
// service.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		log:     log,
		details: make(map[string]*Details),
		info:    make(map[string]*SpeciesInfo),
		chains:  make(map[string]*EvolutionChain),
	}
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return nil
}

// Details fetches the creature endpoint by numeric id or name.
func (c *Client) Details(ctx context.Context, idOrName string) (*Details, error) {
	c.mu.RLock()
	cached, ok := c.details[idOrName]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var d Details
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+idOrName, &d); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.details[idOrName] = &d
	c.mu.Unlock()
	return &d, nil
}

// Species fetches the species endpoint by numeric id or name.
func (c *Client) Species(ctx context.Context, idOrName string) (*SpeciesInfo, error) {
	c.mu.RLock()
	cached, ok := c.info[idOrName]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var s SpeciesInfo
	if err := c.getJSON(ctx, c.baseURL+"/pokemon-species/"+idOrName, &s); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.info[idOrName] = &s
	c.mu.Unlock()
	return &s, nil
}

// Chain fetches an evolution chain document by its URL.
func (c *Client) Chain(ctx context.Context, url string) (*EvolutionChain, error) {
	c.mu.RLock()
	cached, ok := c.chains[url]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var ec EvolutionChain
	if err := c.getJSON(ctx, url, &ec); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chains[url] = &ec
	c.mu.Unlock()
	return &ec, nil
}

// Bundle fetches everything the detail view needs for one numeric id. The
// evolution chain is best-effort: its failure degrades the bundle instead
// of failing it.
func (c *Client) Bundle(ctx context.Context, id int) (*Bundle, error) {
	key := strconv.Itoa(id)
	details, err := c.Details(ctx, key)
	if err != nil {
		return nil, err
	}
	info, err := c.Species(ctx, key)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Details: details, SpeciesInfo: info}
	if info.EvolutionChain.URL != "" {
		chain, err := c.Chain(ctx, info.EvolutionChain.URL)
		if err != nil {
			c.log.Warn().Err(err).Int("id", id).Msg("evolution chain unavailable")
		} else {
			b.EvolutionChain = chain
		}
	}
	return b, nil
}
