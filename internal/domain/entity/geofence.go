package entity

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeofenceArea is a named polygon scoped to a guild, used for area-based
// location matching. Area names are unique within a guild.
type GeofenceArea struct {
	ID       uuid.UUID `json:"id"`
	GuildID  uint64    `json:"guild_id"`
	Name     string    `json:"name"`
	Boundary orb.Ring  `json:"boundary"`
}

// Contains reports whether the point lies inside the area's polygon.
func (a *GeofenceArea) Contains(point orb.Point) bool {
	return planar.RingContains(a.Boundary, point)
}
