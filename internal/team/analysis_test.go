package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/cobbledex/internal/dex"
)

func stats(hp, atk, def, spa, spd, spe int) dex.BaseStats {
	return dex.BaseStats{HP: hp, Attack: atk, Defense: def, SpecialAttack: spa, SpecialDefense: spd, Speed: spe}
}

func member(name string, s dex.BaseStats, types ...string) *dex.Record {
	return &dex.Record{
		Identity:    dex.Identity(name),
		DisplayName: name,
		Stats:       s,
		Types:       types,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		s    dex.BaseStats
		want Role
	}{
		{"fast sweeper", stats(80, 130, 95, 80, 85, 102), RoleFastSweeper},
		{"slow sweeper", stats(90, 134, 95, 100, 100, 80), RoleSlowSweeper},
		{"wall", stats(95, 60, 130, 50, 130, 30), RoleWall},
		{"bulky attacker", stats(80, 100, 90, 40, 85, 95), RoleBulkyAttacker},
		{"support", stats(60, 50, 60, 60, 60, 80), RoleSupport},
		{"balanced", stats(80, 82, 83, 80, 80, 80), RoleBalanced},
		// Priority: qualifies as fast sweeper before anything else.
		{"fast sweeper beats wall", stats(100, 110, 110, 95, 100, 110), RoleFastSweeper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.s))
		})
	}
}

func TestAnalyzeCoverage(t *testing.T) {
	// Water STAB covers fire, ground and rock.
	blastoise := member("Blastoise", stats(79, 83, 100, 85, 105, 78), "water")
	a := Analyze([]*dex.Record{blastoise})

	assert.Contains(t, a.CoveredTypes, "fire")
	assert.Contains(t, a.CoveredTypes, "ground")
	assert.Contains(t, a.CoveredTypes, "rock")
	assert.Contains(t, a.UncoveredTypes, "water")
	assert.InDelta(t, 100*3.0/18.0, a.CoveragePercent, 0.001)

	// A known coverage move widens it: Ice Beam hits dragon.
	blastoise.Competitive = &dex.Competitive{TopMoves: []string{"Ice Beam"}}
	a = Analyze([]*dex.Record{blastoise})
	assert.Contains(t, a.CoveredTypes, "dragon")

	// Unknown moves contribute nothing.
	blastoise.Competitive = &dex.Competitive{TopMoves: []string{"Mystery Slam"}}
	a = Analyze([]*dex.Record{blastoise})
	assert.NotContains(t, a.CoveredTypes, "dragon")
}

func TestAnalyzeDefense(t *testing.T) {
	charizard := member("Charizard", stats(78, 84, 78, 109, 85, 100), "fire", "flying")
	tyranitar := member("Tyranitar", stats(100, 134, 110, 95, 100, 61), "rock", "dark")
	a := Analyze([]*dex.Record{charizard, tyranitar})

	byType := make(map[string]DefenseProfile)
	for _, p := range a.Defense {
		byType[p.Type] = p
	}

	// Both members take super-effective water: a critical weakness.
	assert.Equal(t, 2, byType["water"].Weak)
	assert.True(t, byType["water"].Critical)

	// Rock hits only Charizard (4x); Tyranitar is neutral to it.
	assert.Equal(t, 1, byType["rock"].Weak)
	assert.False(t, byType["rock"].Critical)

	// Ground: Charizard is immune (flying), Tyranitar weak. Not critical.
	assert.Equal(t, 1, byType["ground"].Immune)
	assert.Equal(t, 1, byType["ground"].Weak)
	assert.False(t, byType["ground"].Critical)
}

func TestAnalyzeAbilityImmunity(t *testing.T) {
	// Bronzong's Levitate removes its ground weakness entirely.
	bronzong := member("Bronzong", stats(67, 89, 116, 79, 116, 33), "steel", "psychic")
	bronzong.Abilities = []string{"Levitate"}
	a := Analyze([]*dex.Record{bronzong})
	for _, p := range a.Defense {
		if p.Type == "ground" {
			assert.Equal(t, 1, p.Immune)
			assert.Zero(t, p.Weak)
		}
	}
}

func TestAnalyzeCapsAtSixMembers(t *testing.T) {
	var members []*dex.Record
	for i := 0; i < 8; i++ {
		members = append(members, member(string(rune('a'+i)), stats(50, 50, 50, 50, 50, 50), "normal"))
	}
	a := Analyze(members)
	require.Len(t, a.Members, 6)
}
