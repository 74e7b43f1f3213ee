package matcher

import (
	"testing"

	"scout/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestMatchesIV(t *testing.T) {
	assert.True(t, MatchesIV(95, 90))
	assert.True(t, MatchesIV(90, 90))
	assert.False(t, MatchesIV(80, 90))
	assert.True(t, MatchesIV(0, 0))
}

func TestMatchesLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		min, max int
		want     bool
	}{
		{"inside range", 20, 10, 35, true},
		{"at lower bound", 10, 10, 35, true},
		{"at upper bound", 35, 10, 35, true},
		{"below range", 5, 10, 35, false},
		{"above range", 36, 10, 35, false},
		{"no bounds accepts any level", 30, 0, 0, true},
		{"min only, level above", 30, 20, 0, true},
		{"min only, level below", 10, 20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesLevel(tt.level, tt.min, tt.max))
		})
	}
}

func TestMatchesGender(t *testing.T) {
	assert.True(t, MatchesGender("male", "*"))
	assert.True(t, MatchesGender("female", "female"))
	assert.True(t, MatchesGender("Female", "female"))
	assert.False(t, MatchesGender("male", "female"))
}

func TestMatchesIVList(t *testing.T) {
	list := []string{"15/15/15", "15/14/15"}

	assert.True(t, MatchesIVList(15, 15, 15, list))
	assert.True(t, MatchesIVList(15, 14, 15, list))
	assert.False(t, MatchesIVList(14, 15, 15, list))
	assert.False(t, MatchesIVList(15, 15, 15, nil))
}

func TestMatchesPvP(t *testing.T) {
	criteria := &entity.PvPCriteria{
		League:     entity.LeagueGreat,
		MinRank:    10,
		MinPercent: 95,
	}

	tests := []struct {
		name    string
		ranking entity.PvPRanking
		want    bool
	}{
		{"rank and percent qualify", entity.PvPRanking{League: entity.LeagueGreat, CP: 1498, Rank: 5, Percent: 97}, true},
		{"rank too low", entity.PvPRanking{League: entity.LeagueGreat, CP: 1498, Rank: 15, Percent: 97}, false},
		{"percent too low", entity.PvPRanking{League: entity.LeagueGreat, CP: 1498, Rank: 5, Percent: 90}, false},
		{"wrong league", entity.PvPRanking{League: entity.LeagueUltra, CP: 2450, Rank: 5, Percent: 97}, false},
		{"cp outside band", entity.PvPRanking{League: entity.LeagueGreat, CP: 900, Rank: 5, Percent: 97}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesPvP(tt.ranking, criteria))
		})
	}
}

func TestMatchesKeyword(t *testing.T) {
	assert.True(t, MatchesKeyword("Rare Candy x3", "rare candy"))
	assert.True(t, MatchesKeyword("1000 Stardust", "stardust"))
	assert.False(t, MatchesKeyword("Rare Candy x3", "stardust"))
	assert.False(t, MatchesKeyword("Rare Candy x3", ""))
}

func TestMatchesGymName(t *testing.T) {
	assert.True(t, MatchesGymName("Central Park Fountain", "central park"))
	assert.True(t, MatchesGymName("Central Park Fountain", "fountain"))
	assert.False(t, MatchesGymName("Central Park Fountain", "library"))
	assert.False(t, MatchesGymName("Central Park Fountain", ""))
}

func TestContainsArea(t *testing.T) {
	areas := []string{"CityA", "cityb"}

	assert.True(t, ContainsArea(areas, "citya"))
	assert.True(t, ContainsArea(areas, "CityB"))
	assert.False(t, ContainsArea(areas, "CityC"))
	assert.False(t, ContainsArea(nil, "CityA"))
}
