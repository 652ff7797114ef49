package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SHOWCASE_"

// LoadDotEnv reads KEY=VALUE lines from path into the process environment. Blank lines
// and # comments are skipped, surrounding quotes are removed, and variables already set
// in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = unquote(strings.TrimSpace(value))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// ApplyEnv overlays SHOWCASE_* variables onto p. Unset variables leave the field alone;
// a value that does not parse is an error naming the variable.
func ApplyEnv(p *Prefs) error {
	ints := map[string]*int{
		"OBJECT_COUNT": &p.Scene.ObjectCount,
		"WIDTH":        &p.Window.Width,
		"HEIGHT":       &p.Window.Height,
		"FPS":          &p.Window.FPS,
		"TEXTURE_SIZE": &p.Assets.TextureSize,
	}
	floats := map[string]*float32{
		"RADIUS":        &p.Scene.Radius,
		"ROTATION_RATE": &p.Scene.RotationRate,
		"FOG_DENSITY":   &p.Scene.FogDensity,
		"BLOOM_STEP":    &p.Bloom.Step,
	}
	strs := map[string]*string{
		"ASSETS_DIR": &p.Assets.Dir,
		"CACHE_DIR":  &p.Assets.CacheDir,
		"CATALOG":    &p.Catalog,
		"LOG_LEVEL":  &p.Log.Level,
		"LOG_PATH":   &p.Log.Path,
		"FONT":       &p.UI.Font,
	}
	bools := map[string]*bool{
		"FULLSCREEN": &p.Window.Fullscreen,
		"SHOW_FPS":   &p.Debug.ShowFPS,
		"ORBIT":      &p.Orbit.Enabled,
	}

	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = n
		}
	}
	for name, dst := range floats {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return envError(name, err)
			}
			*dst = float32(f)
		}
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = b
		}
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("SEED", err)
		}
		p.Scene.Seed = n
	}
	if v, ok := lookup("TEXTURES"); ok {
		var list []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		p.Assets.Textures = list
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envError(name string, err error) error {
	return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
}
