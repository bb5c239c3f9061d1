package typechart

import "strings"

// abilityImmunities maps ability keywords to the attack type they nullify.
// Keys are identity-normalized (lowercase, no spaces or hyphens) so lookups
// survive the feeds' inconsistent ability spelling. Curated, not exhaustive.
var abilityImmunities = map[string]string{
	"levitate":      "ground",
	"eartheater":    "ground",
	"voltabsorb":    "electric",
	"lightningrod":  "electric",
	"motordrive":    "electric",
	"waterabsorb":   "water",
	"stormdrain":    "water",
	"dryskin":       "water",
	"flashfire":     "fire",
	"wellbakedbody": "fire",
	"sapsipper":     "grass",
}

func normalizeAbility(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AbilityGrantsImmunity reports whether any of the abilities nullifies the
// attacking type.
func AbilityGrantsImmunity(abilities []string, attacking string) bool {
	attacking = strings.ToLower(attacking)
	for _, a := range abilities {
		if abilityImmunities[normalizeAbility(a)] == attacking {
			return true
		}
	}
	return false
}
