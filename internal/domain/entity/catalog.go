package entity

// PokemonInfo is a reference catalog entry for a species.
type PokemonInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Rare bool   `json:"rare"` // inherently rare, qualifies for SMS escalation
}

// GruntInfo is a reference catalog entry for an invasion grunt type.
type GruntInfo struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	EncounterRewards []int  `json:"encounter_rewards"` // species ids the grunt can reward
}

// Catalog is the immutable reference data events are validated against.
// Events whose discriminant is unknown to the catalog are discarded.
type Catalog struct {
	pokedex map[int]PokemonInfo
	grunts  map[int]GruntInfo
}

// NewCatalog builds a catalog from loaded reference entries.
func NewCatalog(pokedex []PokemonInfo, grunts []GruntInfo) *Catalog {
	c := &Catalog{
		pokedex: make(map[int]PokemonInfo, len(pokedex)),
		grunts:  make(map[int]GruntInfo, len(grunts)),
	}
	for _, p := range pokedex {
		c.pokedex[p.ID] = p
	}
	for _, g := range grunts {
		c.grunts[g.ID] = g
	}

	return c
}

// Pokemon looks up a species by id.
func (c *Catalog) Pokemon(id int) (PokemonInfo, bool) {
	info, ok := c.pokedex[id]

	return info, ok
}

// Grunt looks up an invasion grunt type by id.
func (c *Catalog) Grunt(id int) (GruntInfo, bool) {
	info, ok := c.grunts[id]

	return info, ok
}
