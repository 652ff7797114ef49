package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/field"
	"cube-showcase/internal/sampler"
)

// ErrAssetLoad is returned by Setup when any texture fails to load. The scene does not
// start in that case.
var ErrAssetLoad = errors.New("asset load failed")

// Placement controls how Setup fills the field.
type Placement struct {
	Count  int
	Radius float32
	Rand   sampler.Rand
}

// Setup loads every texture in paths, waiting for all of them, and only then fills f
// with p.Count cubes tagged with the loaded identities. If any load fails the field is
// left untouched and the error wraps ErrAssetLoad.
func Setup(ctx context.Context, loader assets.Loader, paths []string, f *field.Field, p Placement, log *slog.Logger) ([]assets.Texture, error) {
	if log == nil {
		log = slog.Default()
	}
	textures, err := assets.LoadAll(ctx, loader, paths)
	if err != nil {
		log.Error("asset load failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	rng := p.Rand
	if rng == nil {
		rng = sampler.NewRand(0)
	}
	added := f.Populate(rng, p.Count, p.Radius, assets.Identities(textures))
	log.Info("scene ready", "textures", len(textures), "objects", added)
	return textures, nil
}
