package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where overlay fonts are looked up.
const DefaultDir = "assets/fonts"

// ErrNotFound is returned when no font file matches.
var ErrNotFound = errors.New("font not found")

var exts = []string{".ttf", ".otf"}

// IsFont reports whether path has a font file extension.
func IsFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan returns the font files under dir as slash-separated paths relative to dir.
// A missing dir yields no fonts and no error.
func Scan(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !IsFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// family strips the directory, the extension and any "-Style" suffix from a font name.
func family(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	if IsFont(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if i := strings.Index(name, "-"); i > 0 {
		name = name[:i]
	}
	return name
}

// Resolve finds the font file for name under dir. name may be a path (absolute, or
// relative to dir), a file name, or a family name such as "Inter" or "Google Sans".
// Among several matches a "Regular" face wins; otherwise the first in walk order.
func Resolve(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNotFound
	}
	for _, p := range []string{name, filepath.Join(dir, name)} {
		if IsFont(p) {
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}

	list, err := Scan(dir)
	if err != nil {
		return "", err
	}
	for _, term := range []string{normalize(name), normalize(family(name))} {
		if term == "" {
			continue
		}
		var matches []string
		for _, rel := range list {
			if strings.Contains(normalize(rel), term) {
				matches = append(matches, rel)
			}
		}
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			if strings.Contains(strings.ToLower(m), "regular") {
				return filepath.Join(dir, filepath.FromSlash(m)), nil
			}
		}
		return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
	}
	return "", ErrNotFound
}
