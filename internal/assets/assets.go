package assets

import (
	"context"
	"fmt"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Identity names one of the fixed set of surface appearances (one per loaded texture).
// It is the key the content catalog is indexed by and the tag stored on every placed cube.
type Identity string

// IdentityFromPath derives the identity of a texture from its path or URL: the file name
// without directories, query string, or anything from the first dot on
// (e.g. "textures/cpp_logo.png" -> "cpp_logo").
func IdentityFromPath(path string) Identity {
	name := path
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return Identity(name)
}

// Texture is a decoded texture image tagged with its identity. GPU upload is left to the
// renderer so decoding can run off the main thread.
type Texture struct {
	Identity Identity
	Path     string
	Image    image.Image
}

// Loader fetches and decodes one texture.
type Loader interface {
	Load(ctx context.Context, path string) (Texture, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (Texture, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (Texture, error) {
	return f(ctx, path)
}

// LoadAll issues one Load per path concurrently and waits for all of them. The first
// failure cancels the remaining loads and is returned; there is no partial result and no
// retry. On success textures are returned in the order of paths.
func LoadAll(ctx context.Context, l Loader, paths []string) ([]Texture, error) {
	out := make([]Texture, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			tex, err := l.Load(gctx, p)
			if err != nil {
				return fmt.Errorf("load %s: %w", p, err)
			}
			out[i] = tex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Identities returns the identity of each texture, in order. This is the pool the object
// field draws from.
func Identities(textures []Texture) []Identity {
	ids := make([]Identity, 0, len(textures))
	for _, t := range textures {
		ids = append(ids, t.Identity)
	}
	return ids
}
