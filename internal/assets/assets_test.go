package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestIdentityFromPath(t *testing.T) {
	assert.Equal(t, Identity("cpp_logo"), IdentityFromPath("cpp_logo.png"))
	assert.Equal(t, Identity("go_logo"), IdentityFromPath("assets/textures/go_logo.png"))
	assert.Equal(t, Identity("js_logo"), IdentityFromPath(`assets\textures\js_logo.min.png`))
	assert.Equal(t, Identity("react_logo"), IdentityFromPath("https://example.com/img/react_logo.png?v=2"))
	assert.Equal(t, Identity("plain"), IdentityFromPath("plain"))
}

func TestLoadAllKeepsRequestOrder(t *testing.T) {
	loader := LoaderFunc(func(ctx context.Context, path string) (Texture, error) {
		return Texture{Identity: IdentityFromPath(path), Path: path}, nil
	})
	paths := []string{"a.png", "b.png", "c.png", "d.png"}
	got, err := LoadAll(context.Background(), loader, paths)
	require.NoError(t, err)
	assert.Equal(t, []Identity{"a", "b", "c", "d"}, Identities(got))
}

func TestLoadAllFailsOnAnyError(t *testing.T) {
	boom := errors.New("corrupt texture")
	var calls atomic.Int32
	loader := LoaderFunc(func(ctx context.Context, path string) (Texture, error) {
		calls.Add(1)
		if path == "bad.png" {
			return Texture{}, boom
		}
		return Texture{Identity: IdentityFromPath(path)}, nil
	})
	got, err := LoadAll(context.Background(), loader, []string{"a.png", "bad.png", "c.png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad.png")
	assert.Nil(t, got)
	assert.Equal(t, int32(3), calls.Load(), "one request per path")
}

func TestLoadAllEmpty(t *testing.T) {
	got, err := LoadAll(context.Background(), LoaderFunc(func(context.Context, string) (Texture, error) {
		t.Fatal("no load expected")
		return Texture{}, nil
	}), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileLoaderDecodesAndResizes(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "go_logo.png"), 40, 20)

	l := &FileLoader{Dir: dir, Size: 16}
	tex, err := l.Load(context.Background(), "go_logo.png")
	require.NoError(t, err)
	assert.Equal(t, Identity("go_logo"), tex.Identity)
	assert.Equal(t, image.Rect(0, 0, 16, 16), tex.Image.Bounds())

	l.Size = 0
	tex, err = l.Load(context.Background(), "go_logo.png")
	require.NoError(t, err)
	assert.Equal(t, 40, tex.Image.Bounds().Dx())
}

// writeTGA writes an uncompressed 24-bit top-left-origin TGA filled with c.
func writeTGA(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	header := []byte{
		0, 0, 2, // no id, no colour map, true-colour
		0, 0, 0, 0, 0,
		0, 0, 0, 0, // origin
		byte(w), byte(w >> 8), byte(h), byte(h >> 8),
		24, 0x20,
	}
	data := append([]byte{}, header...)
	for i := 0; i < w*h; i++ {
		data = append(data, c.B, c.G, c.R)
	}
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestFileLoaderPNGWithTGALinked(t *testing.T) {
	dir := t.TempDir()
	for _, size := range []int{8, 16} {
		writePNG(t, filepath.Join(dir, "cpp_logo.png"), size, size)
		tex, err := (&FileLoader{Dir: dir}).Load(context.Background(), "cpp_logo.png")
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, size, tex.Image.Bounds().Dx())
		r, _, _, a := tex.Image.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xffff), r, "decoded as PNG, not TGA")
		assert.Equal(t, uint32(0xffff), a)
	}
}

func TestFileLoaderDecodesTGA(t *testing.T) {
	dir := t.TempDir()
	writeTGA(t, filepath.Join(dir, "heka_logo.tga"), 4, 2, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	tex, err := (&FileLoader{Dir: dir}).Load(context.Background(), "heka_logo.tga")
	require.NoError(t, err)
	assert.Equal(t, Identity("heka_logo"), tex.Identity)
	assert.Equal(t, image.Rect(0, 0, 4, 2), tex.Image.Bounds())
	r, g, b, _ := tex.Image.At(1, 1).RGBA()
	assert.Equal(t, []uint32{10, 200, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestFileLoaderSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo"), 5, 3)
	tex, err := (&FileLoader{Dir: dir}).Load(context.Background(), "logo")
	require.NoError(t, err)
	assert.Equal(t, 5, tex.Image.Bounds().Dx())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))
	_, err = (&FileLoader{Dir: dir}).Load(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFileLoaderMissingFile(t *testing.T) {
	l := &FileLoader{Dir: t.TempDir()}
	_, err := l.Load(context.Background(), "nope.png")
	assert.Error(t, err)
}

func TestFileLoaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&FileLoader{}).Load(ctx, "x.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileLoaderDownloadsRemote(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "rust_logo.png"), 8, 8)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		http.ServeFile(w, r, filepath.Join(src, "rust_logo.png"))
	}))
	defer srv.Close()

	cache := t.TempDir()
	l := &FileLoader{CacheDir: cache}
	tex, err := l.Load(context.Background(), srv.URL+"/logos/rust_logo.png")
	require.NoError(t, err)
	assert.Equal(t, Identity("rust_logo"), tex.Identity)
	assert.FileExists(t, filepath.Join(cache, "rust_logo.png"))

	_, err = l.Load(context.Background(), srv.URL+"/logos/rust_logo.png")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "cached file is reused")
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := Download(context.Background(), srv.URL+"/missing.png", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b.png", sanitizeFilename("a b.png"))
	assert.Equal(t, "texture", sanitizeFilename(""))
	assert.Equal(t, ".png", imageExtension("http://x/y.PNG?q=1"))
	assert.Equal(t, "", imageExtension("http://x/y"))
}
