package builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/meur/cobbledex/internal/dex"
)

// usageEntry is one creature's block inside a usage-statistics feed. The
// usage value arrives in several shapes across feed generations, so it is
// kept raw and decoded by extractUsage.
type usageEntry struct {
	Usage     json.RawMessage    `json:"usage"`
	Abilities map[string]float64 `json:"Abilities"`
	Moves     map[string]float64 `json:"Moves"`
	Spreads   map[string]float64 `json:"Spreads"`
}

// usageShape covers the nested usage variants observed in the feeds.
// Anything else decodes to zero values and falls through to 0.
type usageShape struct {
	Weighted *float64 `json:"weighted"`
	Real     *float64 `json:"real"`
	Raw      *float64 `json:"raw"`
}

// extractUsage reads the usage value from whichever shape the feed
// provides: plain number, else weighted/real/raw sub-fields in that
// preference order, else 0.
func extractUsage(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s usageShape
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	switch {
	case s.Weighted != nil:
		return *s.Weighted
	case s.Real != nil:
		return *s.Real
	case s.Raw != nil:
		return *s.Raw
	}
	return 0
}

// topByCount returns up to n keys of a frequency map ordered by descending
// count, breaking count ties by key for determinism. Keys in skip are
// excluded.
func topByCount(freq map[string]float64, n int, skip ...string) []string {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	keys := make([]string, 0, len(freq))
	for k := range freq {
		if k == "" || skipped[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Stat display order used by spread keys: nature:hp/atk/def/spa/spd/spe.
var spreadStatNames = []string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

const (
	defaultNature = "Hardy"
	defaultSpread = "252 HP / 252 Atk"
)

// parseSpread turns the highest-count "Nature:0/252/0/0/4/252" spread key
// into a nature and a human-readable EV line, omitting zero allocations.
func parseSpread(freq map[string]float64) (nature, evs string) {
	best := topByCount(freq, 1)
	if len(best) == 0 {
		return defaultNature, defaultSpread
	}
	nature, allocs, ok := strings.Cut(best[0], ":")
	if !ok || nature == "" {
		return defaultNature, defaultSpread
	}
	var parts []string
	for i, v := range strings.Split(allocs, "/") {
		if i >= len(spreadStatNames) || v == "0" || v == "" {
			continue
		}
		parts = append(parts, v+" "+spreadStatNames[i])
	}
	if len(parts) == 0 {
		return nature, defaultSpread
	}
	return nature, strings.Join(parts, " / ")
}

// deriveCompetitive computes the full competitive block for one usage entry.
func deriveCompetitive(e usageEntry) *dex.Competitive {
	bestAbility := "Unknown"
	if top := topByCount(e.Abilities, 1); len(top) > 0 {
		bestAbility = top[0]
	}
	nature, evs := parseSpread(e.Spreads)
	return &dex.Competitive{
		UsagePercent: fmt.Sprintf("%.2f", extractUsage(e.Usage)*100),
		BestAbility:  bestAbility,
		BestNature:   nature,
		BestEVSpread: evs,
		TopMoves:     topByCount(e.Moves, 4, "Nothing"),
	}
}

// decodeUsageData walks the feed's "data" object in document order, which
// is the feed's native usage ranking. encoding/json maps would lose that
// order, so the object is token-scanned instead.
func decodeUsageData(doc []byte) ([]string, map[string]usageEntry, error) {
	var root struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, nil, fmt.Errorf("failed to parse usage feed: %w", err)
	}
	if len(root.Data) == 0 {
		return nil, nil, fmt.Errorf("usage feed has no data object")
	}

	dec := json.NewDecoder(bytes.NewReader(root.Data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("usage feed data is not an object")
	}

	var order []string
	entries := make(map[string]usageEntry)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name := keyTok.(string)
		var e usageEntry
		if err := dec.Decode(&e); err != nil {
			return nil, nil, fmt.Errorf("bad usage entry %q: %w", name, err)
		}
		order = append(order, name)
		entries[name] = e
	}
	return order, entries, nil
}
