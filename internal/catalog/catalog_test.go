package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-showcase/internal/assets"
)

const sample = `
cpp_logo:
  title: C++ Projects
  projects:
    - title: 2048 Solver
      link: https://example.com/2048
      bullets: [fast, parallel]
`

func TestParseAndLookup(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	e, ok := c.Lookup("cpp_logo")
	require.True(t, ok)
	assert.Equal(t, "C++ Projects", e.Title)
	require.Len(t, e.Projects, 1)
	assert.Equal(t, "https://example.com/2048", e.Projects[0].Link)
	assert.Equal(t, []string{"fast", "parallel"}, e.Projects[0].Bullets)

	_, ok = c.Lookup("java_logo")
	assert.False(t, ok)
	_, ok = c.Lookup("CPP_LOGO")
	assert.False(t, ok, "lookup is an exact match")
}

func TestLookupReturnsCopy(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	e, _ := c.Lookup("cpp_logo")
	e.Title = "changed"
	e.Projects[0].Bullets[0] = "changed"

	again, _ := c.Lookup("cpp_logo")
	assert.Equal(t, "C++ Projects", again.Title)
	assert.Equal(t, "fast", again.Projects[0].Bullets[0])
}

func TestParseRejectsUntitled(t *testing.T) {
	_, err := Parse([]byte("go_logo:\n  projects: []\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("go_logo: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []assets.Identity{"cpp_logo"}, c.Identities())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, []assets.Identity{
		"audiokinetic_logo", "cpp_logo", "dormakaba_logo", "go_logo", "js_logo", "react_logo",
	}, c.Identities())

	e, ok := c.Lookup("audiokinetic_logo")
	require.True(t, ok)
	assert.Len(t, e.Projects[0].Bullets, 3)

	pool := []assets.Identity{"cpp_logo", "java_logo", "rust_logo", "go_logo"}
	assert.Equal(t, []assets.Identity{"java_logo", "rust_logo"}, c.Missing(pool))
}

func TestNewCopiesMap(t *testing.T) {
	src := map[assets.Identity]Entry{"a": {Title: "A"}}
	c := New(src)
	delete(src, "a")
	_, ok := c.Lookup("a")
	assert.True(t, ok)
}
