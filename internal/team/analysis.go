// Package team derives role, coverage and weakness analytics for a team of
// up to 6 records, and scores the rest of the dataset as candidate
// additions.
package team

import (
	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/typechart"
)

// MaxSize is the slot count of a team.
const MaxSize = 6

// MemberAnalysis is the per-member slice of an analysis.
type MemberAnalysis struct {
	Identity    string   `json:"identity"`
	DisplayName string   `json:"displayName"`
	Role        Role     `json:"role"`
	Types       []string `json:"types"`
}

// DefenseProfile aggregates one attacking type across the whole team.
type DefenseProfile struct {
	Type      string `json:"type"`
	Weak      int    `json:"weak"`
	Resistant int    `json:"resistant"`
	Immune    int    `json:"immune"`
	// Critical marks attack types hitting two or more members.
	Critical bool `json:"critical"`
}

// Analysis is the full derived view of one team.
type Analysis struct {
	Members         []MemberAnalysis `json:"members"`
	CoveredTypes    []string         `json:"coveredTypes"`
	UncoveredTypes  []string         `json:"uncoveredTypes"`
	CoveragePercent float64          `json:"coveragePercent"`
	Defense         []DefenseProfile `json:"defense"`
}

// coversType reports whether one member can hit a defending type
// super-effectively, via STAB or via a known move from the curated lookup.
func coversType(member *dex.Record, defending string) bool {
	for _, own := range member.Types {
		if typechart.Effectiveness(own, defending) == 2 {
			return true
		}
	}
	if member.Competitive == nil {
		return false
	}
	for _, move := range member.Competitive.TopMoves {
		if mt := MoveType(move); mt != "" && typechart.Effectiveness(mt, defending) == 2 {
			return true
		}
	}
	return false
}

// Analyze computes roles, offensive coverage and the defensive aggregation
// for up to 6 members. It is a pure function of the records and the static
// type chart.
func Analyze(members []*dex.Record) Analysis {
	if len(members) > MaxSize {
		members = members[:MaxSize]
	}
	a := Analysis{}
	for _, m := range members {
		a.Members = append(a.Members, MemberAnalysis{
			Identity:    m.Identity,
			DisplayName: m.DisplayName,
			Role:        Classify(m.Stats),
			Types:       m.Types,
		})
	}

	for _, def := range typechart.Types {
		covered := false
		for _, m := range members {
			if coversType(m, def) {
				covered = true
				break
			}
		}
		if covered {
			a.CoveredTypes = append(a.CoveredTypes, def)
		} else {
			a.UncoveredTypes = append(a.UncoveredTypes, def)
		}
	}
	a.CoveragePercent = float64(len(a.CoveredTypes)) / float64(len(typechart.Types)) * 100

	for _, atk := range typechart.Types {
		prof := DefenseProfile{Type: atk}
		for _, m := range members {
			switch mult := typechart.Multiplier(atk, m.Types, m.Abilities); {
			case mult >= 2:
				prof.Weak++
			case mult == 0:
				prof.Immune++
			case mult <= 0.5:
				prof.Resistant++
			}
		}
		prof.Critical = prof.Weak >= 2
		a.Defense = append(a.Defense, prof)
	}
	return a
}
