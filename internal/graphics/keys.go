package graphics

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var namedKeys = map[string]int32{
	"arrowup":    rl.KeyUp,
	"arrowdown":  rl.KeyDown,
	"arrowleft":  rl.KeyLeft,
	"arrowright": rl.KeyRight,
	"space":      rl.KeySpace,
	"enter":      rl.KeyEnter,
	"shift":      rl.KeyLeftShift,
	"control":    rl.KeyLeftControl,
	"pageup":     rl.KeyPageUp,
	"pagedown":   rl.KeyPageDown,
}

// KeyCode maps a physical key name as used in bindings ("w", "ArrowUp", "7", "Space") to a
// raylib key code. Names are case-insensitive.
func KeyCode(name string) (int32, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if code, ok := namedKeys[n]; ok {
		return code, true
	}
	if len(n) != 1 {
		return 0, false
	}
	c := n[0]
	switch {
	case c >= 'a' && c <= 'z':
		return rl.KeyA + int32(c-'a'), true
	case c >= '0' && c <= '9':
		return rl.KeyZero + int32(c-'0'), true
	}
	return 0, false
}
