package team

import (
	"sort"
	"strings"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/typechart"
)

// Candidate gates and output bound for suggestions.
const (
	minCandidateBST = 480
	maxSuggestions  = 15
	offenseCap      = 80
)

// Suggestion is one scored candidate addition.
type Suggestion struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	Score       int    `json:"score"`
}

// formMarkers identify alternate-form variants, which are excluded from
// suggestions so the list stays one entry per species. Matched against
// whole name tokens, never substrings: "Charizard-Mega" is a form,
// "Meganium" is not.
var formMarkers = map[string]bool{
	"mega":       true,
	"gmax":       true,
	"gigantamax": true,
	"alola":      true,
	"alolan":     true,
	"galar":      true,
	"galarian":   true,
	"hisui":      true,
	"hisuian":    true,
	"paldea":     true,
	"paldean":    true,
	"totem":      true,
}

func isAltForm(displayName string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(displayName), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	// A one-token name is the species itself even when it equals a marker.
	if len(tokens) < 2 {
		return false
	}
	for _, tok := range tokens {
		if formMarkers[tok] {
			return true
		}
	}
	return false
}

// Suggest ranks every non-member record as a potential addition. Candidates
// below 480 BST, alternate forms and anything already on the team are
// excluded; candidates scoring zero or less are dropped; the rest come back
// best-first, capped at 15.
func Suggest(members []*dex.Record, pool []*dex.Record) []Suggestion {
	analysis := Analyze(members)
	onTeam := make(map[string]bool, len(members))
	for _, m := range members {
		onTeam[m.Identity] = true
	}

	var out []Suggestion
	for _, cand := range pool {
		if onTeam[cand.Identity] || isAltForm(cand.DisplayName) {
			continue
		}
		if cand.Stats.Total() < minCandidateBST {
			continue
		}
		score := scoreCandidate(cand, members, analysis)
		if score <= 0 {
			continue
		}
		out = append(out, Suggestion{
			Identity:    cand.Identity,
			DisplayName: cand.DisplayName,
			Role:        Classify(cand.Stats),
			Score:       score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Identity < out[j].Identity
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Defensive/offensive/role/stat weights of the scorer.
const (
	immuneBonus        = 15
	resistBonus        = 8
	stabCoverBonus     = 12
	moveCoverBonus     = 8
	roleGapBonus       = 30
	counterweightBonus = 25
	balancedBonus      = 15
)

func scoreCandidate(cand *dex.Record, members []*dex.Record, analysis Analysis) int {
	score := 0

	// Defensive synergy: weight by how many members share each weakness.
	// Ability immunities do not count here, only typing.
	for _, prof := range analysis.Defense {
		if prof.Weak == 0 {
			continue
		}
		mult := 1.0
		for _, t := range cand.Types {
			mult *= typechart.Effectiveness(prof.Type, t)
		}
		switch {
		case mult == 0:
			score += immuneBonus * prof.Weak
		case mult <= 0.5:
			score += resistBonus * prof.Weak
		}
	}

	// Offensive coverage: reward closing currently-uncovered types, capped
	// so coverage alone cannot dominate.
	offense := 0
	for _, def := range analysis.UncoveredTypes {
		if stabCovers(cand, def) {
			offense += stabCoverBonus
		} else if coversType(cand, def) {
			offense += moveCoverBonus
		}
	}
	if offense > offenseCap {
		offense = offenseCap
	}
	score += offense

	// Role balance.
	var hasFast, hasBulk bool
	sweepers := 0
	for _, m := range analysis.Members {
		switch {
		case m.Role == RoleFastSweeper:
			hasFast = true
		case m.Role == RoleWall:
			hasBulk = true
		}
		if isSweeper(m.Role) {
			sweepers++
		}
	}
	candRole := Classify(cand.Stats)
	sweeperHeavy := sweepers >= 3 || (len(members) > 0 && sweepers*2 > len(members))
	switch {
	case !hasFast && candRole == RoleFastSweeper:
		score += roleGapBonus
	case !hasBulk && candRole == RoleWall:
		score += roleGapBonus
	case sweeperHeavy && isDefensive(candRole):
		score += counterweightBonus
	case hasFast && hasBulk && candRole == RoleBalanced:
		score += balancedBonus
	}

	// Stat needs: reward speed or bulk the team is short on, plus a BST tier
	// bonus on top of the 480 floor.
	if len(members) > 0 {
		speedSum, bulkSum := 0, 0
		for _, m := range members {
			speedSum += m.Stats.Speed
			bulkSum += m.Stats.Defense + m.Stats.SpecialDefense + m.Stats.HP
		}
		if speedSum/len(members) < 70 && cand.Stats.Speed >= 100 {
			score += 10
		}
		if bulkSum/len(members) < 250 && cand.Stats.Defense+cand.Stats.SpecialDefense+cand.Stats.HP >= 300 {
			score += 10
		}
	}
	switch bst := cand.Stats.Total(); {
	case bst >= 600:
		score += 15
	case bst >= 540:
		score += 10
	default:
		score += 5
	}

	return score
}

func stabCovers(r *dex.Record, defending string) bool {
	for _, own := range r.Types {
		if typechart.Effectiveness(own, defending) == 2 {
			return true
		}
	}
	return false
}
