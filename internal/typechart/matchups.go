package typechart

// Relations groups every type by how it relates to a subject type. The four
// lists partition all 18 types: each type appears in exactly one of them.
type Relations struct {
	Weak    []string `json:"weak"`
	Resist  []string `json:"resist"`
	Immune  []string `json:"immune"`
	Neutral []string `json:"neutral"`
}

// Offensive returns how a single attacking type fares against every
// defending type.
func Offensive(attacking string) Relations {
	var rel Relations
	for _, def := range Types {
		switch Effectiveness(attacking, def) {
		case 2:
			rel.Weak = append(rel.Weak, def)
		case 0.5:
			rel.Resist = append(rel.Resist, def)
		case 0:
			rel.Immune = append(rel.Immune, def)
		default:
			rel.Neutral = append(rel.Neutral, def)
		}
	}
	return rel
}

// Defensive returns how a single defending type fares against every
// attacking type.
func Defensive(defending string) Relations {
	var rel Relations
	for _, atk := range Types {
		switch Effectiveness(atk, defending) {
		case 2:
			rel.Weak = append(rel.Weak, atk)
		case 0.5:
			rel.Resist = append(rel.Resist, atk)
		case 0:
			rel.Immune = append(rel.Immune, atk)
		default:
			rel.Neutral = append(rel.Neutral, atk)
		}
	}
	return rel
}
