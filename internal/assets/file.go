package assets

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
)

// DefaultCacheDir is where remote textures are stored, relative to the working directory.
const DefaultCacheDir = "assets/img/downloaded"

// FileLoader decodes textures from disk. Paths starting with http:// or https:// are
// downloaded into CacheDir first. Relative paths are resolved against Dir.
// When Size > 0 every texture is resized to Size×Size so the GPU gets uniform squares.
type FileLoader struct {
	Dir      string
	CacheDir string
	Size     int
}

// Load implements Loader.
func (f *FileLoader) Load(ctx context.Context, path string) (Texture, error) {
	if err := ctx.Err(); err != nil {
		return Texture{}, err
	}
	local, err := f.resolve(ctx, path)
	if err != nil {
		return Texture{}, err
	}
	img, err := decodeFile(local)
	if err != nil {
		return Texture{}, fmt.Errorf("decode %s: %w", local, err)
	}
	return Texture{Identity: IdentityFromPath(path), Path: path, Image: f.fit(img)}, nil
}

func (f *FileLoader) resolve(ctx context.Context, path string) (string, error) {
	if IsRemote(path) {
		dir := f.CacheDir
		if dir == "" {
			dir = DefaultCacheDir
		}
		return Download(ctx, path, dir)
	}
	if f.Dir != "" && !filepath.IsAbs(path) {
		return filepath.Join(f.Dir, path), nil
	}
	return path, nil
}

func (f *FileLoader) fit(img image.Image) image.Image {
	if f.Size <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == f.Size && b.Dy() == f.Size {
		return img
	}
	return transform.Resize(img, f.Size, f.Size, transform.Linear)
}

// IsRemote reports whether path is an http(s) URL.
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
