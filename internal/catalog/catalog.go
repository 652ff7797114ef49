package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"cube-showcase/internal/assets"
)

// ErrInvalid is wrapped by Parse when a document is structurally valid YAML but an
// entry cannot be shown (e.g. missing title).
var ErrInvalid = errors.New("invalid catalog")

//go:embed default.yaml
var defaultYAML []byte

// Project is one sub-entry of a content block: a heading, a link and bullet points.
type Project struct {
	Title   string   `yaml:"title"`
	Link    string   `yaml:"link"`
	Bullets []string `yaml:"bullets"`
}

// Entry is the content shown in the overlay for one identity.
type Entry struct {
	Title    string    `yaml:"title"`
	Projects []Project `yaml:"projects"`
}

// Catalog maps identities to entries. It is loaded once and never mutated; Lookup hands
// out copies so callers cannot change what later lookups return.
type Catalog struct {
	entries map[assets.Identity]Entry
}

// New returns a catalog over entries. The map is copied.
func New(entries map[assets.Identity]Entry) *Catalog {
	c := &Catalog{entries: make(map[assets.Identity]Entry, len(entries))}
	for id, e := range entries {
		c.entries[id] = e
	}
	return c
}

// Parse reads a YAML document of the form "identity: {title, projects: [...]}".
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	entries := make(map[assets.Identity]Entry, len(raw))
	for key, e := range raw {
		if e.Title == "" {
			return nil, fmt.Errorf("%w: entry %q has no title", ErrInvalid, key)
		}
		entries[assets.Identity(key)] = e
	}
	return &Catalog{entries: entries}, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a deep copy of the entry for id. ok is false when id has no content.
func (c *Catalog) Lookup(id assets.Identity) (Entry, bool) {
	e, ok := c.entries[id]
	if !ok {
		return Entry{}, false
	}
	var out Entry
	if err := copier.CopyWithOption(&out, &e, copier.Option{DeepCopy: true}); err != nil {
		return e, true
	}
	return out, true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Identities returns every identity that has content, sorted.
func (c *Catalog) Identities() []assets.Identity {
	ids := make([]assets.Identity, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Missing returns the identities from pool that have no entry, in pool order.
func (c *Catalog) Missing(pool []assets.Identity) []assets.Identity {
	var out []assets.Identity
	for _, id := range pool {
		if _, ok := c.entries[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
