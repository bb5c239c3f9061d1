package dex

// Sentinel values used when a source never supplied the field.
const (
	SourceUnknown = "Unknown"
	TierUntiered  = "Untiered"
)

// Location is one spawn entry for a record. Locations accumulate in row
// order and are never deduplicated.
type Location struct {
	SpawnMethod string `json:"spawnMethod"`
	Rarity      string `json:"rarity"`
	Condition   string `json:"condition,omitempty"`
	Forms       string `json:"forms,omitempty"`
}

// Competitive holds the usage-feed derivation for a record. It is replaced
// wholesale under the builder's overwrite rule, never merged field by field.
type Competitive struct {
	UsagePercent string   `json:"usagePercent"`
	BestAbility  string   `json:"bestAbility"`
	BestNature   string   `json:"bestNature"`
	BestEVSpread string   `json:"bestEVSpread"`
	TopMoves     []string `json:"topMoves"`
}

// BaseStats are the six core stats as reported by the species service.
type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"atk"`
	Defense        int `json:"def"`
	SpecialAttack  int `json:"spa"`
	SpecialDefense int `json:"spd"`
	Speed          int `json:"spe"`
}

// Total returns the base stat total.
func (b BaseStats) Total() int {
	return b.HP + b.Attack + b.Defense + b.SpecialAttack + b.SpecialDefense + b.Speed
}

// Get returns the stat for a short key (hp/atk/def/spa/spd/spe).
// Unknown keys return 0.
func (b BaseStats) Get(key string) int {
	switch key {
	case "hp":
		return b.HP
	case "atk":
		return b.Attack
	case "def":
		return b.Defense
	case "spa":
		return b.SpecialAttack
	case "spd":
		return b.SpecialDefense
	case "spe":
		return b.Speed
	}
	return 0
}

// Record is the one canonical entry per identity, fused from the spawn
// export, the tier feed, the usage feeds and the species service.
type Record struct {
	Identity    string       `json:"identity"`
	DisplayName string       `json:"displayName"`
	Source      string       `json:"source"`
	Locations   []Location   `json:"locations"`
	Tier        string       `json:"tier,omitempty"`
	Competitive *Competitive `json:"competitive,omitempty"`
	// Rank is 1-based and only set for the first 30 entries of a usage
	// dataset; 0 means unranked.
	Rank int `json:"rank,omitempty"`

	// Species enrichment. DexNumber 0 means the species lookup never
	// succeeded for this record.
	DexNumber int       `json:"dexNumber,omitempty"`
	Types     []string  `json:"types,omitempty"`
	Abilities []string  `json:"abilities,omitempty"`
	Stats     BaseStats `json:"stats"`
	SpriteRef string    `json:"spriteRef,omitempty"`
	Legendary bool      `json:"legendary,omitempty"`
	Mythical  bool      `json:"mythical,omitempty"`
}

// HasType reports whether the record's type set contains t (lowercase).
func (r *Record) HasType(t string) bool {
	for _, own := range r.Types {
		if own == t {
			return true
		}
	}
	return false
}

// TeamSlot is the lightweight projection of a Record carried inside a named
// team. Slots in a team may be nil.
type TeamSlot struct {
	Identity    string   `json:"identity"`
	DisplayName string   `json:"displayName"`
	Types       []string `json:"types"`
	SpriteRef   string   `json:"spriteRef,omitempty"`
	Abilities   []string `json:"abilities,omitempty"`
}

// Slot builds the team projection of a record.
func (r *Record) Slot() *TeamSlot {
	return &TeamSlot{
		Identity:    r.Identity,
		DisplayName: r.DisplayName,
		Types:       r.Types,
		SpriteRef:   r.SpriteRef,
		Abilities:   r.Abilities,
	}
}
