// Package entity contains the core business objects of the project.
package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// NotificationStatus is a bitmask of the event kinds a subscription receives.
type NotificationStatus uint8

const (
	StatusNone      NotificationStatus = 0
	StatusPokemon   NotificationStatus = 1 << 0
	StatusPvP       NotificationStatus = 1 << 1
	StatusRaids     NotificationStatus = 1 << 2
	StatusQuests    NotificationStatus = 1 << 3
	StatusInvasions NotificationStatus = 1 << 4
	StatusLures     NotificationStatus = 1 << 5
	StatusGyms      NotificationStatus = 1 << 6
	StatusAll       NotificationStatus = StatusPokemon | StatusPvP | StatusRaids |
		StatusQuests | StatusInvasions | StatusLures | StatusGyms
)

// Has reports whether every bit in status is set.
func (s NotificationStatus) Has(status NotificationStatus) bool {
	return s&status == status
}

// Subscription holds one user's notification settings within a guild.
// It is owned by its user; the matching core only reads it, except for the
// rate limiter's auto-disable which goes through the repository.
type Subscription struct {
	ID          uuid.UUID          `json:"id"`
	GuildID     uint64             `json:"guild_id"`
	UserID      uint64             `json:"user_id"`
	Status      NotificationStatus `json:"status"`
	Latitude    float64            `json:"latitude"`     // anchor for distance matching
	Longitude   float64            `json:"longitude"`    // anchor for distance matching
	RadiusM     float64            `json:"radius_m"`     // 0 disables distance matching
	IconStyle   string             `json:"icon_style"`   // delivery preference, opaque to the core
	PhoneNumber string             `json:"phone_number"` // opt-in SMS escalation target

	Pokemon   []PokemonCriteria  `json:"pokemon"`
	PvP       []PvPCriteria      `json:"pvp"`
	Raids     []RaidCriteria     `json:"raids"`
	Gyms      []GymCriteria      `json:"gyms"`
	Quests    []QuestCriteria    `json:"quests"`
	Invasions []InvasionCriteria `json:"invasions"`
	Lures     []LureCriteria     `json:"lures"`
}

// Enabled reports whether any notification kind is enabled.
func (s *Subscription) Enabled() bool {
	return s.Status != StatusNone
}

// Anchor returns the subscription's anchor location as an orb point.
func (s *Subscription) Anchor() orb.Point {
	return orb.Point{s.Longitude, s.Latitude}
}

// PokemonCriteria is one spawn filter rule tied to a species.
type PokemonCriteria struct {
	PokemonID int      `json:"pokemon_id"`
	Form      string   `json:"form"` // empty matches any form
	MinIV     float64  `json:"min_iv"`
	MinLevel  int      `json:"min_level"`
	MaxLevel  int      `json:"max_level"`
	Gender    string   `json:"gender"`  // "*" matches any
	IVList    []string `json:"iv_list"` // exact "atk/def/sta" triplets; overrides MinIV when set
	Areas     []string `json:"areas"`
}

// HasStats reports whether exact stat triplets are pinned. When true the
// IV/level/gender thresholds are ignored and only triplet membership matches.
func (c *PokemonCriteria) HasStats() bool {
	return len(c.IVList) > 0
}

// PvPCriteria is one PvP rank filter rule tied to a species and league.
type PvPCriteria struct {
	PokemonID  int      `json:"pokemon_id"`
	Form       string   `json:"form"`
	League     League   `json:"league"`
	MinRank    int      `json:"min_rank"`    // event rank must be <= this
	MinPercent float64  `json:"min_percent"` // event percent must be >= this
	Areas      []string `json:"areas"`
}

// RaidCriteria is one raid boss filter rule tied to a species.
type RaidCriteria struct {
	PokemonID int      `json:"pokemon_id"`
	Form      string   `json:"form"`
	Areas     []string `json:"areas"`
}

// GymCriteria restricts raid notifications to gyms whose name contains Name.
type GymCriteria struct {
	Name string `json:"name"`
}

// QuestCriteria matches quests whose reward contains the keyword.
type QuestCriteria struct {
	RewardKeyword string   `json:"reward_keyword"`
	Areas         []string `json:"areas"`
}

// InvasionCriteria matches invasions whose encounter rewards include the species.
type InvasionCriteria struct {
	RewardPokemonID int      `json:"reward_pokemon_id"`
	Areas           []string `json:"areas"`
}

// LureCriteria matches lures of one type.
type LureCriteria struct {
	LureType string   `json:"lure_type"`
	Areas    []string `json:"areas"`
}

// FormMatches reports whether a stored form filter accepts the event form.
// An empty stored form matches any form; otherwise comparison is case-insensitive.
func FormMatches(stored, actual string) bool {
	return stored == "" || strings.EqualFold(stored, actual)
}
