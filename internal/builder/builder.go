// Package builder is the offline fusion engine. It merges a tabular spawn
// export, a tier-classification feed and an ordered list of usage-statistics
// feeds into one canonical record per identity, then optionally enriches
// each record from the species service.
package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/species"
	"github.com/meur/cobbledex/internal/tabular"
)

// rankCutoff bounds rank assignment: only a dataset's first entries, in
// feed order, are ranked.
const rankCutoff = 30

// UsageFeed is one tier-specific statistics dataset, processed in config
// order.
type UsageFeed struct {
	Tier string `yaml:"tier"`
	URL  string `yaml:"url"`
}

// Builder accumulates records across ingestion passes.
type Builder struct {
	dataset *dex.Dataset
	http    *http.Client
	species *species.Client
	log     zerolog.Logger

	skippedRows int
}

// New creates a Builder. The species client may be nil when enrichment is
// disabled.
func New(sp *species.Client, log zerolog.Logger) *Builder {
	return &Builder{
		dataset: dex.NewDataset(),
		http:    &http.Client{Timeout: 15 * time.Second},
		species: sp,
		log:     log,
	}
}

// Dataset returns the records fused so far.
func (b *Builder) Dataset() *dex.Dataset {
	return b.dataset
}

// Spawn export column positions, 0-based; the first row is a header.
const (
	colName = iota + 1
	colSource
	colSpawnMethod
	colRarity
	colCondition
	colForms
	minColumns = 5
)

// IngestSpawnFile reads the spawn export at path. An .xlsx file goes
// through the workbook reader, anything else through the delimiter-sniffing
// text parser. A missing file is fatal: without spawn data there is nothing
// to build.
func (b *Builder) IngestSpawnFile(path string) error {
	var rows [][]string
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		var err error
		rows, err = tabular.ParseXLSX(path)
		if err != nil {
			return err
		}
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read spawn export: %w", err)
		}
		rows = tabular.Parse(string(raw))
	}
	b.IngestSpawnRows(rows)
	return nil
}

// IngestSpawnRows folds parsed spawn rows into the dataset. Row 0 is the
// header. Rows with fewer than 5 columns or an empty name are counted and
// skipped, never fatal. Rows for an identity already seen accumulate
// additional locations in row order.
func (b *Builder) IngestSpawnRows(rows [][]string) {
	col := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := col(row, colName)
		if len(row) < minColumns || name == "" {
			skipped++
			continue
		}
		rec := b.dataset.GetOrCreate(dex.Identity(name), name)
		if src := col(row, colSource); src != "" && rec.Source == dex.SourceUnknown {
			rec.Source = src
		}
		rec.Locations = append(rec.Locations, dex.Location{
			SpawnMethod: col(row, colSpawnMethod),
			Rarity:      col(row, colRarity),
			Condition:   col(row, colCondition),
			Forms:       col(row, colForms),
		})
	}
	b.skippedRows += skipped
	if skipped > 0 {
		b.log.Warn().Int("rows", skipped).Msg("skipped malformed spawn rows")
	}
}

// Tier feed lines look like `garchomp: "OU"` (quotes and trailing commas
// optional). Anything that does not match the pattern is ignored.
var tierLineRe = regexp.MustCompile(`(?m)^\s*"?([A-Za-z0-9'.\- ]+?)"?\s*:\s*"?([A-Za-z0-9()]{1,16})"?\s*,?\s*$`)

// IngestTierFeed fetches and applies the tier-classification feed. A fetch
// or parse failure is logged and swallowed: tiers are enrichment, spawn
// data does not depend on them.
func (b *Builder) IngestTierFeed(ctx context.Context, url string) {
	body, err := b.fetch(ctx, url)
	if err != nil {
		b.log.Warn().Err(err).Str("url", url).Msg("tier feed unavailable")
		return
	}
	n := b.IngestTierText(string(body))
	b.log.Info().Int("entries", n).Msg("tier feed applied")
}

// IngestTierText extracts {identityToken, tierLabel} pairs line by line.
// Known identities get their tier set; unknown ones become minimal records
// with a capitalized name and no locations.
func (b *Builder) IngestTierText(text string) int {
	n := 0
	for _, m := range tierLineRe.FindAllStringSubmatch(text, -1) {
		token, tier := m[1], m[2]
		id := dex.Identity(token)
		if id == "" {
			continue
		}
		rec := b.dataset.GetOrCreate(id, dex.Capitalize(token))
		rec.Tier = tier
		n++
	}
	return n
}

// IngestUsageFeeds processes the configured datasets in order. Each feed is
// independently fault-isolated: one failing fetch or parse skips that feed
// only.
func (b *Builder) IngestUsageFeeds(ctx context.Context, feeds []UsageFeed) {
	for _, feed := range feeds {
		body, err := b.fetch(ctx, feed.URL)
		if err != nil {
			b.log.Warn().Err(err).Str("tier", feed.Tier).Msg("usage feed unavailable")
			continue
		}
		if err := b.IngestUsageDocument(feed.Tier, body); err != nil {
			b.log.Warn().Err(err).Str("tier", feed.Tier).Msg("usage feed unreadable")
		}
	}
}

// IngestUsageDocument applies one tier's statistics document. Competitive
// data for a record is (re)computed only when the record has none yet, or
// when this document's tier matches the record's own tier; that keeps a
// correctly-tiered record from being clobbered by an unrelated tier's
// stats while still letting the matching tier override defaults. Rank
// follows the same rule and only the document's first 30 entries get one.
func (b *Builder) IngestUsageDocument(tier string, doc []byte) error {
	order, entries, err := decodeUsageData(doc)
	if err != nil {
		return err
	}
	for i, name := range order {
		rec := b.dataset.GetOrCreate(dex.Identity(name), name)
		if rec.Tier == "" {
			rec.Tier = dex.TierUntiered
		}
		if rec.Competitive != nil && !strings.EqualFold(tier, rec.Tier) {
			continue
		}
		rec.Competitive = deriveCompetitive(entries[name])
		if i < rankCutoff {
			rec.Rank = i + 1
		}
	}
	b.log.Info().Str("tier", tier).Int("entries", len(order)).Msg("usage feed applied")
	return nil
}

// Enrich fills dex number, types, abilities, stats, flags and sprite from
// the species service. Each lookup is independent: a miss leaves that
// record unenriched and moves on.
func (b *Builder) Enrich(ctx context.Context) {
	if b.species == nil {
		return
	}
	enriched := 0
	for _, rec := range b.dataset.All() {
		if err := b.enrichRecord(ctx, rec); err != nil {
			b.log.Debug().Err(err).Str("identity", rec.Identity).Msg("species lookup failed")
			continue
		}
		enriched++
	}
	b.log.Info().Int("enriched", enriched).Int("total", len(b.dataset.Records)).Msg("species enrichment done")
}

// apiSlug maps a display name to the species service's naming: spaces and
// hyphens become a single hyphen, apostrophes and periods drop out. "Mr.
// Mime" becomes "mr-mime", "Farfetch'd" becomes "farfetchd". The plain
// identity strips separators entirely, which the service does not
// recognize for such names.
func apiSlug(name string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(r)
		case r == ' ' || r == '-':
			pending = true
		}
	}
	return sb.String()
}

func (b *Builder) enrichRecord(ctx context.Context, rec *dex.Record) error {
	slug := rec.Identity
	d, err := b.species.Details(ctx, slug)
	if err != nil {
		alt := apiSlug(rec.DisplayName)
		if alt == slug {
			return err
		}
		if d, err = b.species.Details(ctx, alt); err != nil {
			return err
		}
		slug = alt
	}
	rec.DexNumber = d.ID
	rec.Types = rec.Types[:0]
	for _, t := range d.Types {
		rec.Types = append(rec.Types, strings.ToLower(t.Type.Name))
	}
	rec.Abilities = rec.Abilities[:0]
	for _, a := range d.Abilities {
		rec.Abilities = append(rec.Abilities, a.Ability.Name)
	}
	for _, s := range d.Stats {
		switch s.Stat.Name {
		case "hp":
			rec.Stats.HP = s.BaseStat
		case "attack":
			rec.Stats.Attack = s.BaseStat
		case "defense":
			rec.Stats.Defense = s.BaseStat
		case "special-attack":
			rec.Stats.SpecialAttack = s.BaseStat
		case "special-defense":
			rec.Stats.SpecialDefense = s.BaseStat
		case "speed":
			rec.Stats.Speed = s.BaseStat
		}
	}
	rec.SpriteRef = d.Sprites.FrontDefault
	if art := d.Sprites.Other.OfficialArtwork.FrontDefault; art != "" {
		rec.SpriteRef = art
	}

	info, err := b.species.Species(ctx, slug)
	if err != nil {
		// Stats and types are already in place; flags just stay unset.
		return nil
	}
	rec.Legendary = info.IsLegendary
	rec.Mythical = info.IsMythical
	return nil
}

func (b *Builder) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
