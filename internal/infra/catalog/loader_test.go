package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"scout/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNew_LoadsCatalogFiles(t *testing.T) {
	dir := t.TempDir()
	pokedex := writeFile(t, dir, "pokedex.json",
		`[{"id":147,"name":"Dratini"},{"id":201,"name":"Unown","rare":true}]`)
	grunts := writeFile(t, dir, "grunts.json",
		`[{"id":6,"name":"Grunt (Water)","encounter_rewards":[7,8]}]`)

	cfg := &config.Config{}
	cfg.Catalog = config.CatalogConfig{PokedexPath: pokedex, GruntTypesPath: grunts}

	cat, err := New(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	info, ok := cat.Pokemon(201)
	require.True(t, ok)
	assert.Equal(t, "Unown", info.Name)
	assert.True(t, info.Rare)

	grunt, ok := cat.Grunt(6)
	require.True(t, ok)
	assert.Equal(t, []int{7, 8}, grunt.EncounterRewards)

	_, ok = cat.Pokemon(999)
	assert.False(t, ok)
}

func TestNew_MissingFileFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Catalog = config.CatalogConfig{
		PokedexPath:    "/nonexistent/pokedex.json",
		GruntTypesPath: "/nonexistent/grunts.json",
	}

	_, err := New(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}

func TestNew_UnconfiguredPathFails(t *testing.T) {
	cfg := &config.Config{}

	_, err := New(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
