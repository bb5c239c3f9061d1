package typechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCoversAllTypes(t *testing.T) {
	require.Len(t, Types, 18)
	for _, typ := range Types {
		_, ok := Lookup(typ)
		assert.True(t, ok, "missing chart entry for %s", typ)
	}
}

// Every attacker/defender pair must land in exactly one relation bucket,
// and the offensive and defensive views must agree with each other.
func TestMatchupPartition(t *testing.T) {
	for _, def := range Types {
		m, _ := Lookup(def)
		seen := make(map[string]int)
		for _, atk := range m.Weaknesses {
			seen[atk]++
		}
		for _, atk := range m.Resistances {
			seen[atk]++
		}
		for _, atk := range m.Immunities {
			seen[atk]++
		}
		for atk, count := range seen {
			assert.Equal(t, 1, count, "%s listed %d times for defender %s", atk, count, def)
		}

		rel := Defensive(def)
		total := len(rel.Weak) + len(rel.Resist) + len(rel.Immune) + len(rel.Neutral)
		assert.Equal(t, len(Types), total, "defensive relations for %s do not partition", def)
	}

	for _, atk := range Types {
		rel := Offensive(atk)
		total := len(rel.Weak) + len(rel.Resist) + len(rel.Immune) + len(rel.Neutral)
		assert.Equal(t, len(Types), total, "offensive relations for %s do not partition", atk)

		for _, def := range rel.Weak {
			assert.Equal(t, 2.0, Effectiveness(atk, def))
		}
		for _, def := range rel.Immune {
			assert.Equal(t, 0.0, Effectiveness(atk, def))
		}
	}
}

func TestEffectiveness(t *testing.T) {
	tests := []struct {
		atk, def string
		want     float64
	}{
		{"water", "fire", 2},
		{"fire", "water", 0.5},
		{"electric", "ground", 0},
		{"normal", "ghost", 0},
		{"dragon", "fairy", 0},
		{"ice", "dragon", 2},
		{"normal", "normal", 1},
		{"fire", "unknowntype", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Effectiveness(tt.atk, tt.def), "%s vs %s", tt.atk, tt.def)
	}
}

func TestMultiplier(t *testing.T) {
	// Fire/Flying takes 4x from rock, 0x from ground.
	assert.Equal(t, 4.0, Multiplier("rock", []string{"fire", "flying"}, nil))
	assert.Equal(t, 0.0, Multiplier("ground", []string{"fire", "flying"}, nil))
	// Water/Ground takes 4x grass, 0x electric.
	assert.Equal(t, 4.0, Multiplier("grass", []string{"water", "ground"}, nil))
	assert.Equal(t, 0.0, Multiplier("electric", []string{"water", "ground"}, nil))
}

func TestAbilityImmunityShortCircuits(t *testing.T) {
	// Steel would take 2x from ground; Levitate zeroes it first.
	assert.Equal(t, 0.0, Multiplier("ground", []string{"steel"}, []string{"Levitate"}))
	// Spelling variants normalize.
	assert.True(t, AbilityGrantsImmunity([]string{"volt-absorb"}, "electric"))
	assert.True(t, AbilityGrantsImmunity([]string{"Volt Absorb"}, "electric"))
	assert.False(t, AbilityGrantsImmunity([]string{"Intimidate"}, "electric"))
}
