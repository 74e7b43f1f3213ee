package geofence

import (
	"context"
	"testing"

	"scout/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minLng, minLat, maxLng, maxLat float64) orb.Ring {
	return orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}
}

func TestResolve_PointInsideOneArea(t *testing.T) {
	areas := []*entity.GeofenceArea{
		{GuildID: 1, Name: "CityA", Boundary: square(0, 0, 1, 1)},
		{GuildID: 1, Name: "CityB", Boundary: square(2, 2, 3, 3)},
	}

	area := Resolve(orb.Point{0.5, 0.5}, areas)
	require.NotNil(t, area)
	assert.Equal(t, "CityA", area.Name)

	area = Resolve(orb.Point{2.5, 2.5}, areas)
	require.NotNil(t, area)
	assert.Equal(t, "CityB", area.Name)
}

func TestResolve_PointOutsideAllAreas(t *testing.T) {
	areas := []*entity.GeofenceArea{
		{GuildID: 1, Name: "CityA", Boundary: square(0, 0, 1, 1)},
	}

	assert.Nil(t, Resolve(orb.Point{5, 5}, areas))
}

func TestResolve_OverlappingAreasFirstMatchWins(t *testing.T) {
	areas := []*entity.GeofenceArea{
		{GuildID: 1, Name: "Downtown", Boundary: square(0, 0, 2, 2)},
		{GuildID: 1, Name: "Metro", Boundary: square(0, 0, 4, 4)},
	}

	area := Resolve(orb.Point{1, 1}, areas)
	require.NotNil(t, area)
	assert.Equal(t, "Downtown", area.Name)
}

type fakeGeofenceRepo struct {
	areas map[uint64][]*entity.GeofenceArea
	calls int
}

func (f *fakeGeofenceRepo) ListAreas(_ context.Context, guildID uint64) ([]*entity.GeofenceArea, error) {
	f.calls++

	return f.areas[guildID], nil
}

func TestCache_ResolvesOncePerGuild(t *testing.T) {
	repo := &fakeGeofenceRepo{
		areas: map[uint64][]*entity.GeofenceArea{
			1: {{GuildID: 1, Name: "CityA", Boundary: square(0, 0, 1, 1)}},
		},
	}
	cache := NewCache(repo, orb.Point{0.5, 0.5})
	ctx := context.Background()

	for range 5 {
		area, err := cache.Area(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, area)
		assert.Equal(t, "CityA", area.Name)
	}

	assert.Equal(t, 1, repo.calls)
}

func TestCache_CachesNoMatch(t *testing.T) {
	repo := &fakeGeofenceRepo{
		areas: map[uint64][]*entity.GeofenceArea{
			1: {{GuildID: 1, Name: "CityA", Boundary: square(0, 0, 1, 1)}},
		},
	}
	cache := NewCache(repo, orb.Point{9, 9})
	ctx := context.Background()

	area, err := cache.Area(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, area)

	area, err = cache.Area(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, area)

	assert.Equal(t, 1, repo.calls)
}
