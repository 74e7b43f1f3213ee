// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// EventKind identifies the kind of ingested game event.
type EventKind string

const (
	KindPokemon  EventKind = "pokemon"
	KindPvP      EventKind = "pvp"
	KindRaid     EventKind = "raid"
	KindQuest    EventKind = "quest"
	KindInvasion EventKind = "invasion"
	KindLure     EventKind = "lure"
)

// League identifies a PvP league band.
type League string

const (
	LeagueGreat League = "great"
	LeagueUltra League = "ultra"
)

// CP bounds per league; a ranking entry only counts for a league
// when its CP falls inside the league's band.
const (
	MinGreatLeagueCP = 1400
	MaxGreatLeagueCP = 1500
	MinUltraLeagueCP = 2400
	MaxUltraLeagueCP = 2500
)

// GenderAny matches any gender in a criteria filter.
const GenderAny = "*"

// Location is a WGS84 coordinate attached to an event.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point converts the location to an orb point (lng, lat order).
func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// PvPRanking is one league ranking entry reported with a spawn.
type PvPRanking struct {
	League  League  `json:"league"`
	CP      int     `json:"cp"`
	Rank    int     `json:"rank"`
	Percent float64 `json:"percent"`
}

// InLeagueBand reports whether the entry's CP is inside its league's CP band.
func (r PvPRanking) InLeagueBand() bool {
	switch r.League {
	case LeagueGreat:
		return r.CP >= MinGreatLeagueCP && r.CP <= MaxGreatLeagueCP
	case LeagueUltra:
		return r.CP >= MinUltraLeagueCP && r.CP <= MaxUltraLeagueCP
	default:
		return false
	}
}

// SpawnEvent is an ingested wild spawn. Immutable once created;
// processors only read it.
type SpawnEvent struct {
	Location
	PokemonID  int          `json:"pokemon_id"`
	Form       string       `json:"form"`
	IV         float64      `json:"iv"`
	Attack     int          `json:"attack"`
	Defense    int          `json:"defense"`
	Stamina    int          `json:"stamina"`
	Level      int          `json:"level"`
	Gender     string       `json:"gender"`
	CP         int          `json:"cp"`
	Rankings   []PvPRanking `json:"rankings"`
	ReceivedAt time.Time    `json:"received_at"`
}

// RaidEvent is an ingested raid boss hatch.
type RaidEvent struct {
	Location
	PokemonID  int       `json:"pokemon_id"`
	Form       string    `json:"form"`
	Level      int       `json:"level"`
	GymName    string    `json:"gym_name"`
	ReceivedAt time.Time `json:"received_at"`
}

// QuestEvent is an ingested field research task.
type QuestEvent struct {
	Location
	Task       string    `json:"task"`
	Reward     string    `json:"reward"`
	ReceivedAt time.Time `json:"received_at"`
}

// InvasionEvent is an ingested pokestop invasion.
type InvasionEvent struct {
	Location
	GruntType    int       `json:"grunt_type"`
	PokestopName string    `json:"pokestop_name"`
	ReceivedAt   time.Time `json:"received_at"`
}

// LureEvent is an ingested pokestop lure activation.
type LureEvent struct {
	Location
	LureType     string    `json:"lure_type"`
	PokestopName string    `json:"pokestop_name"`
	ReceivedAt   time.Time `json:"received_at"`
}
