// Package typechart holds the static 18-type effectiveness matrix and the
// derivation functions built on it. The table is defensive: for each type it
// lists the attacking types it is weak to, resists, or is immune to; every
// unlisted pair is neutral.
package typechart

import "strings"

// Matchup is the defensive profile of a single type.
type Matchup struct {
	Weaknesses  []string `json:"weaknesses"`
	Resistances []string `json:"resistances"`
	Immunities  []string `json:"immunities"`
}

// Types lists all 18 types in canonical order.
var Types = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

var chart = map[string]Matchup{
	"normal": {
		Weaknesses: []string{"fighting"},
		Immunities: []string{"ghost"},
	},
	"fire": {
		Weaknesses:  []string{"water", "ground", "rock"},
		Resistances: []string{"fire", "grass", "ice", "bug", "steel", "fairy"},
	},
	"water": {
		Weaknesses:  []string{"electric", "grass"},
		Resistances: []string{"fire", "water", "ice", "steel"},
	},
	"electric": {
		Weaknesses:  []string{"ground"},
		Resistances: []string{"electric", "flying", "steel"},
	},
	"grass": {
		Weaknesses:  []string{"fire", "ice", "poison", "flying", "bug"},
		Resistances: []string{"water", "electric", "grass", "ground"},
	},
	"ice": {
		Weaknesses:  []string{"fire", "fighting", "rock", "steel"},
		Resistances: []string{"ice"},
	},
	"fighting": {
		Weaknesses:  []string{"flying", "psychic", "fairy"},
		Resistances: []string{"bug", "rock", "dark"},
	},
	"poison": {
		Weaknesses:  []string{"ground", "psychic"},
		Resistances: []string{"grass", "fighting", "poison", "bug", "fairy"},
	},
	"ground": {
		Weaknesses:  []string{"water", "grass", "ice"},
		Resistances: []string{"poison", "rock"},
		Immunities:  []string{"electric"},
	},
	"flying": {
		Weaknesses:  []string{"electric", "ice", "rock"},
		Resistances: []string{"grass", "fighting", "bug"},
		Immunities:  []string{"ground"},
	},
	"psychic": {
		Weaknesses:  []string{"bug", "ghost", "dark"},
		Resistances: []string{"fighting", "psychic"},
	},
	"bug": {
		Weaknesses:  []string{"fire", "flying", "rock"},
		Resistances: []string{"grass", "fighting", "ground"},
	},
	"rock": {
		Weaknesses:  []string{"water", "grass", "fighting", "ground", "steel"},
		Resistances: []string{"normal", "fire", "poison", "flying"},
	},
	"ghost": {
		Weaknesses:  []string{"ghost", "dark"},
		Resistances: []string{"poison", "bug"},
		Immunities:  []string{"normal", "fighting"},
	},
	"dragon": {
		Weaknesses:  []string{"ice", "dragon", "fairy"},
		Resistances: []string{"fire", "water", "electric", "grass"},
	},
	"dark": {
		Weaknesses:  []string{"fighting", "bug", "fairy"},
		Resistances: []string{"ghost", "dark"},
		Immunities:  []string{"psychic"},
	},
	"steel": {
		Weaknesses: []string{"fire", "fighting", "ground"},
		Resistances: []string{
			"normal", "grass", "ice", "flying", "psychic", "bug",
			"rock", "dragon", "steel", "fairy",
		},
		Immunities: []string{"poison"},
	},
	"fairy": {
		Weaknesses:  []string{"poison", "steel"},
		Resistances: []string{"fighting", "bug", "dark"},
		Immunities:  []string{"dragon"},
	},
}

// Lookup returns the defensive matchup entry for a type name
// (case-insensitive). The second result is false for unknown types.
func Lookup(typ string) (Matchup, bool) {
	m, ok := chart[strings.ToLower(typ)]
	return m, ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Effectiveness returns the damage multiplier of one attacking type against
// one defending type: 2, 0.5, 0 or 1.
func Effectiveness(attacking, defending string) float64 {
	m, ok := Lookup(defending)
	if !ok {
		return 1
	}
	attacking = strings.ToLower(attacking)
	switch {
	case contains(m.Immunities, attacking):
		return 0
	case contains(m.Weaknesses, attacking):
		return 2
	case contains(m.Resistances, attacking):
		return 0.5
	}
	return 1
}

// Multiplier computes the combined effectiveness of an attacking type
// against a dual-or-mono typed defender. An ability-granted immunity
// short-circuits to 0 before any type algebra.
func Multiplier(attacking string, defenderTypes []string, defenderAbilities []string) float64 {
	if AbilityGrantsImmunity(defenderAbilities, attacking) {
		return 0
	}
	mult := 1.0
	for _, def := range defenderTypes {
		mult *= Effectiveness(attacking, def)
	}
	return mult
}
