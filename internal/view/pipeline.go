// Package view produces the ordered, bounded record list the catalog
// displays. The pipeline is a fixed sequence of pure stages over the
// read-only dataset: tab scope, search predicate, facets, then sort.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/query"
)

// Tab names with fixed meaning; anything else is treated as a tier tab.
const (
	TabAll       = "all"
	TabFavorites = "favorites"
)

// Rarity facet values.
const (
	RarityAll          = "all"
	RarityLegendary    = "legendary"
	RarityNonLegendary = "non-legendary"
)

// Sort keys.
const (
	SortName   = "name"
	SortType   = "type"
	SortNumber = "number"
)

// tierTabLimit bounds how many records a tier tab shows.
const tierTabLimit = 50

// unranked sorts records without a rank after every ranked one.
const unranked = 1 << 30

// Facets is the sidebar filter state.
type Facets struct {
	SelectedTypes []string
	SpawnsOnly    bool
	Rarity        string
}

// Request is everything one pipeline run depends on.
type Request struct {
	Tab       string
	Predicate query.Predicate
	Facets    Facets
	Sort      string
	Favorites []string
}

// Run applies tab scope, predicate, facets and sort in that strict order
// and returns the final ordered view.
func Run(records []*dex.Record, req Request) []*dex.Record {
	out := scopeTab(records, req.Tab, req.Favorites)
	if !req.Predicate.Empty() {
		out = filterPredicate(out, req.Predicate)
	}
	out = filterFacets(out, req.Facets)
	sortRecords(out, req.Sort)
	return out
}

// MatchesTierTab reports whether a record's tier belongs on a tier tab.
// The match is case-insensitive and alias-tolerant in both directions, so
// the literal tier "uber" lands on the "ubers" tab and vice versa.
func MatchesTierTab(tier, tab string) bool {
	tier = strings.ToLower(tier)
	tab = strings.ToLower(tab)
	if tier == "" {
		return false
	}
	return strings.Contains(tier, tab) || strings.Contains(tab, tier)
}

func scopeTab(records []*dex.Record, tab string, favorites []string) []*dex.Record {
	switch tab {
	case TabAll, "":
		return append([]*dex.Record(nil), records...)
	case TabFavorites:
		favSet := make(map[string]bool, len(favorites))
		for _, id := range favorites {
			favSet[id] = true
		}
		var out []*dex.Record
		for _, r := range records {
			if favSet[r.Identity] {
				out = append(out, r)
			}
		}
		return out
	}

	// Tier tab: matching records ordered by their rank within that tier,
	// rankless ones last, capped to the top 50.
	var out []*dex.Record
	for _, r := range records {
		if MatchesTierTab(r.Tier, tab) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankOrSentinel(out[i]) < rankOrSentinel(out[j])
	})
	if len(out) > tierTabLimit {
		out = out[:tierTabLimit]
	}
	return out
}

func rankOrSentinel(r *dex.Record) int {
	if r.Rank == 0 {
		return unranked
	}
	return r.Rank
}

func filterPredicate(records []*dex.Record, p query.Predicate) []*dex.Record {
	var out []*dex.Record
	for _, r := range records {
		if matchesPredicate(r, p) {
			out = append(out, r)
		}
	}
	return out
}

// matchesPredicate ANDs every populated predicate field against one record.
func matchesPredicate(r *dex.Record, p query.Predicate) bool {
	if p.FreeText != "" && !matchesFreeText(r, p.FreeText) {
		return false
	}
	if p.Type != "" && !r.HasType(p.Type) {
		return false
	}
	if p.Ability != "" && !containsNormalized(r.Abilities, p.Ability) {
		return false
	}
	if p.Move != "" {
		if r.Competitive == nil || !containsNormalized(r.Competitive.TopMoves, p.Move) {
			return false
		}
	}
	if p.Tier != "" && !strings.Contains(strings.ToLower(r.Tier), p.Tier) {
		return false
	}
	for key, f := range p.StatFilters {
		if !f.Matches(r.Stats.Get(key)) {
			return false
		}
	}
	return true
}

func matchesFreeText(r *dex.Record, text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(strings.ToLower(r.DisplayName), lower) {
		return true
	}
	if strings.Contains(r.Identity, dex.Identity(text)) && dex.Identity(text) != "" {
		return true
	}
	return r.DexNumber > 0 && strconv.Itoa(r.DexNumber) == text
}

// containsNormalized matches hyphen-insensitively: both sides go through
// the identity derivation before the substring check.
func containsNormalized(values []string, want string) bool {
	want = dex.Identity(want)
	if want == "" {
		return false
	}
	for _, v := range values {
		if strings.Contains(dex.Identity(v), want) {
			return true
		}
	}
	return false
}

func filterFacets(records []*dex.Record, f Facets) []*dex.Record {
	out := records
	if len(f.SelectedTypes) > 0 {
		out = keep(out, func(r *dex.Record) bool {
			for _, t := range f.SelectedTypes {
				if !r.HasType(strings.ToLower(t)) {
					return false
				}
			}
			return true
		})
	}
	if f.SpawnsOnly {
		out = keep(out, func(r *dex.Record) bool { return len(r.Locations) > 0 })
	}
	switch f.Rarity {
	case RarityLegendary:
		out = keep(out, func(r *dex.Record) bool { return r.Legendary || r.Mythical })
	case RarityNonLegendary:
		out = keep(out, func(r *dex.Record) bool { return !r.Legendary && !r.Mythical })
	}
	return out
}

func keep(records []*dex.Record, pred func(*dex.Record) bool) []*dex.Record {
	var out []*dex.Record
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortRecords(records []*dex.Record, key string) {
	switch key {
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].DisplayName) < strings.ToLower(records[j].DisplayName)
		})
	case SortType:
		sort.SliceStable(records, func(i, j int) bool {
			return primaryType(records[i]) < primaryType(records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].DexNumber < records[j].DexNumber
		})
	}
}

func primaryType(r *dex.Record) string {
	if len(r.Types) == 0 {
		return ""
	}
	return r.Types[0]
}
