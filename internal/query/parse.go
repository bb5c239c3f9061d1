// Package query turns free-text search input into a structured predicate.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// StatFilter is one numeric comparison against a base stat.
type StatFilter struct {
	Stat      string `json:"stat"`
	Operator  string `json:"operator"`
	Threshold int    `json:"threshold"`
}

// Matches applies the comparison to a stat value.
func (f StatFilter) Matches(value int) bool {
	switch f.Operator {
	case ">":
		return value > f.Threshold
	case "<":
		return value < f.Threshold
	case ">=":
		return value >= f.Threshold
	case "<=":
		return value <= f.Threshold
	}
	return false
}

// Predicate is the parsed form of one search input. Zero value means
// "match everything".
type Predicate struct {
	FreeText    string                `json:"freeText,omitempty"`
	Type        string                `json:"type,omitempty"`
	Ability     string                `json:"ability,omitempty"`
	Move        string                `json:"move,omitempty"`
	Tier        string                `json:"tier,omitempty"`
	StatFilters map[string]StatFilter `json:"statFilters,omitempty"`
}

// Empty reports whether the predicate constrains nothing.
func (p Predicate) Empty() bool {
	return p.FreeText == "" && p.Type == "" && p.Ability == "" &&
		p.Move == "" && p.Tier == "" && len(p.StatFilters) == 0
}

var statExprRe = regexp.MustCompile(`^(hp|atk|def|spa|spd|spe|speed|attack|defense)(>=|<=|>|<)(\d+)$`)

// statKeys folds the long stat aliases onto the canonical short keys.
var statKeys = map[string]string{
	"speed":   "spe",
	"attack":  "atk",
	"defense": "def",
}

func canonicalStat(key string) string {
	if short, ok := statKeys[key]; ok {
		return short
	}
	return key
}

func stripHyphens(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

// Parse splits the input on whitespace and classifies each token
// independently, first match wins: type:, ability:, move:, tier: prefixes,
// then a stat comparison, else free text. Malformed stat expressions (bad
// operator, non-numeric threshold) simply fail the pattern and land in
// free text.
func Parse(input string) Predicate {
	var p Predicate
	var free []string
	for _, token := range strings.Fields(input) {
		lower := strings.ToLower(token)
		switch {
		case strings.HasPrefix(lower, "type:"):
			p.Type = strings.TrimPrefix(lower, "type:")
		case strings.HasPrefix(lower, "ability:"):
			p.Ability = stripHyphens(strings.TrimPrefix(lower, "ability:"))
		case strings.HasPrefix(lower, "move:"):
			p.Move = stripHyphens(strings.TrimPrefix(lower, "move:"))
		case strings.HasPrefix(lower, "tier:"):
			p.Tier = strings.TrimPrefix(lower, "tier:")
		default:
			m := statExprRe.FindStringSubmatch(lower)
			if m == nil {
				free = append(free, token)
				continue
			}
			threshold, _ := strconv.Atoi(m[3])
			key := canonicalStat(m[1])
			if p.StatFilters == nil {
				p.StatFilters = make(map[string]StatFilter)
			}
			p.StatFilters[key] = StatFilter{Stat: key, Operator: m[2], Threshold: threshold}
		}
	}
	p.FreeText = strings.Join(free, " ")
	return p
}
