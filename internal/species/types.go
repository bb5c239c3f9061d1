package species

// Wire shapes for the public species service. Consumed read-only; only the
// fields the builder and API actually use are declared.

// Details is the per-creature endpoint payload.
type Details struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
		IsHidden bool `json:"is_hidden"`
	} `json:"abilities"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// SpeciesInfo is the species endpoint payload.
type SpeciesInfo struct {
	ID          int  `json:"id"`
	IsLegendary bool `json:"is_legendary"`
	IsMythical  bool `json:"is_mythical"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// EvolutionChain is the (recursive) evolution graph payload.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the evolution graph.
type ChainLink struct {
	Species struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"species"`
	EvolvesTo []ChainLink `json:"evolves_to"`
}

// Bundle is what the API hands the view layer for a detail modal: every
// piece the service exposes for one creature, fetched together.
type Bundle struct {
	Details        *Details        `json:"details"`
	SpeciesInfo    *SpeciesInfo    `json:"speciesInfo"`
	EvolutionChain *EvolutionChain `json:"evolutionChain,omitempty"`
}
