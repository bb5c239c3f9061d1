package builder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUsage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain number", `0.4213`, 0.4213},
		{"weighted preferred", `{"weighted":0.3,"real":0.2,"raw":0.1}`, 0.3},
		{"real fallback", `{"real":0.2,"raw":0.1}`, 0.2},
		{"raw fallback", `{"raw":0.1}`, 0.1},
		{"unrecognized shape", `{"something":true}`, 0},
		{"absent", ``, 0},
		{"garbage", `"oops"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUsage(json.RawMessage(tt.raw)))
		})
	}
}

func TestParseSpread(t *testing.T) {
	tests := []struct {
		name       string
		freq       map[string]float64
		wantNature string
		wantEVs    string
	}{
		{
			"zero stats omitted",
			map[string]float64{"Jolly:0/252/0/0/4/252": 90, "Adamant:4/252/0/0/0/252": 10},
			"Jolly", "252 Atk / 4 SpD / 252 Spe",
		},
		{
			"no spread data",
			nil,
			"Hardy", "252 HP / 252 Atk",
		},
		{
			"malformed key",
			map[string]float64{"notaspread": 5},
			"Hardy", "252 HP / 252 Atk",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nature, evs := parseSpread(tt.freq)
			assert.Equal(t, tt.wantNature, nature)
			assert.Equal(t, tt.wantEVs, evs)
		})
	}
}

func TestDeriveCompetitive(t *testing.T) {
	c := deriveCompetitive(usageEntry{
		Usage:     json.RawMessage(`0.1234`),
		Abilities: map[string]float64{"Rough Skin": 80, "Sand Veil": 20},
		Moves: map[string]float64{
			"Earthquake": 95, "Nothing": 90, "Outrage": 85,
			"Stealth Rock": 60, "Fire Blast": 50, "Swords Dance": 40,
		},
		Spreads: map[string]float64{"Jolly:0/252/0/0/4/252": 77},
	})
	assert.Equal(t, "12.34", c.UsagePercent)
	assert.Equal(t, "Rough Skin", c.BestAbility)
	// "Nothing" is a placeholder, never a move.
	assert.Equal(t, []string{"Earthquake", "Outrage", "Stealth Rock", "Fire Blast"}, c.TopMoves)
	assert.Equal(t, "Jolly", c.BestNature)
}

func TestDeriveCompetitiveDefaults(t *testing.T) {
	c := deriveCompetitive(usageEntry{})
	assert.Equal(t, "0.00", c.UsagePercent)
	assert.Equal(t, "Unknown", c.BestAbility)
	assert.Equal(t, "Hardy", c.BestNature)
	assert.Equal(t, "252 HP / 252 Atk", c.BestEVSpread)
	assert.Empty(t, c.TopMoves)
}

func TestDecodeUsageDataKeepsDocumentOrder(t *testing.T) {
	doc := []byte(`{"data":{"Zebra":{"usage":0.1},"Apple":{"usage":0.3},"Mango":{"usage":0.2}}}`)
	order, entries, err := decodeUsageData(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, order)
	assert.Len(t, entries, 3)
}
