// Package matcher holds the pure predicate functions that evaluate a
// subscription's filter fields against an event's stats.
package matcher

import (
	"fmt"
	"strings"

	"scout/internal/domain/entity"
)

// MatchesIV reports whether the event IV meets the subscribed minimum.
func MatchesIV(iv, minIV float64) bool {
	return iv >= minIV
}

// MatchesLevel reports whether the event level is inside the subscribed
// range. A non-positive max leaves the range open above, so a criteria item
// that sets no level bounds accepts any level.
func MatchesLevel(level, minLevel, maxLevel int) bool {
	if level < minLevel {
		return false
	}

	return maxLevel <= 0 || level <= maxLevel
}

// MatchesGender reports whether the event gender passes the filter.
// The wildcard filter matches any gender.
func MatchesGender(gender, filter string) bool {
	return filter == entity.GenderAny || strings.EqualFold(gender, filter)
}

// MatchesIVList reports whether the exact attack/defense/stamina triplet is
// one of the pinned combinations. Triplets are stored as "atk/def/sta".
func MatchesIVList(attack, defense, stamina int, list []string) bool {
	triplet := fmt.Sprintf("%d/%d/%d", attack, defense, stamina)
	for _, want := range list {
		if want == triplet {
			return true
		}
	}

	return false
}

// MatchesPvP reports whether a ranking entry satisfies a PvP criteria item:
// same league, CP inside the league band, rank at or below the subscribed
// minimum rank, percent at or above the subscribed minimum percent.
func MatchesPvP(ranking entity.PvPRanking, criteria *entity.PvPCriteria) bool {
	if ranking.League != criteria.League || !ranking.InLeagueBand() {
		return false
	}

	return ranking.Rank <= criteria.MinRank && ranking.Percent >= criteria.MinPercent
}

// MatchesKeyword reports whether the quest reward contains the subscribed
// keyword, case-insensitively.
func MatchesKeyword(reward, keyword string) bool {
	if keyword == "" {
		return false
	}

	return strings.Contains(strings.ToLower(reward), strings.ToLower(keyword))
}

// MatchesGymName reports whether the raid's gym name contains or starts with
// the subscribed gym name, case-insensitively.
func MatchesGymName(gymName, subscribed string) bool {
	if subscribed == "" {
		return false
	}
	gym := strings.ToLower(gymName)
	want := strings.ToLower(subscribed)

	return strings.Contains(gym, want) || strings.HasPrefix(gym, want)
}

// ContainsArea reports whether the resolved area name is in the criteria
// item's allowed area list, case-insensitively.
func ContainsArea(areas []string, name string) bool {
	for _, area := range areas {
		if strings.EqualFold(area, name) {
			return true
		}
	}

	return false
}
