// Package catalog loads the reference data files the matching core validates
// events against.
package catalog

import (
	"encoding/json"
	"log/slog"
	"os"

	"scout/config"
	"scout/internal/domain/entity"
	"scout/internal/errors"

	"go.uber.org/fx"
)

// Params holds dependencies for the catalog loader.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New loads the pokedex and grunt-type files into an immutable catalog.
func New(params Params) (*entity.Catalog, error) {
	pokedex, err := loadJSON[[]entity.PokemonInfo](params.Config.Catalog.PokedexPath)
	if err != nil {
		return nil, errors.Wrap(err, "load pokedex")
	}

	grunts, err := loadJSON[[]entity.GruntInfo](params.Config.Catalog.GruntTypesPath)
	if err != nil {
		return nil, errors.Wrap(err, "load grunt types")
	}

	params.Logger.Info("Reference catalog loaded",
		slog.Int("species", len(pokedex)),
		slog.Int("grunt_types", len(grunts)),
	)

	return entity.NewCatalog(pokedex, grunts), nil
}

func loadJSON[T any](path string) (T, error) {
	var out T
	if path == "" {
		return out, errors.New("catalog file path is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return out, errors.Wrapf(err, "read %s", path)
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.Wrapf(err, "parse %s", path)
	}

	return out, nil
}
