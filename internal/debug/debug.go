package debug

import (
	"fmt"
	"runtime"

	"cube-showcase/internal/scene"
)

// updateInterval: only refresh the text every N frames to reduce allocations.
const updateInterval = 30

// HUD holds the debug text shown in the top-right corner. All lines are off by default.
// The backend feeds it every frame and draws Lines.
type HUD struct {
	ShowFPS      bool
	ShowBloom    bool
	ShowMemAlloc bool

	frameCount uint32
	fpsText    string
	bloomText  string
	introText  string
	memText    string
	memStats   runtime.MemStats
	lines      []string
}

// New returns a HUD with all lines hidden.
func New() *HUD {
	return &HUD{}
}

// Enabled reports whether any line is shown.
func (h *HUD) Enabled() bool {
	return h.ShowFPS || h.ShowBloom || h.ShowMemAlloc
}

// Update refreshes the text from the frame just rendered. fps is the measured frame
// rate. Text is only recomputed every updateInterval frames, or when it is still empty.
func (h *HUD) Update(f scene.Frame, fps int32) {
	h.frameCount++
	update := h.frameCount%updateInterval == 0 || len(h.lines) == 0
	if !update {
		return
	}
	h.lines = h.lines[:0]
	if h.ShowFPS {
		h.fpsText = fmt.Sprintf("FPS: %d", fps)
		h.lines = append(h.lines, h.fpsText)
	}
	if h.ShowBloom {
		h.bloomText = fmt.Sprintf("Bloom: strength %.1f radius %.1f", f.Bloom.Strength, f.Bloom.Radius)
		if f.Camera.IntroComplete {
			h.introText = fmt.Sprintf("Objects: %d", len(f.Objects))
		} else {
			h.introText = fmt.Sprintf("Intro: z %.1f", f.Camera.Position.Z())
		}
		h.lines = append(h.lines, h.bloomText, h.introText)
	}
	if h.ShowMemAlloc {
		runtime.ReadMemStats(&h.memStats)
		mb := float64(h.memStats.Alloc) / (1024 * 1024)
		h.memText = fmt.Sprintf("Mem: %.2f MiB", mb)
		h.lines = append(h.lines, h.memText)
	}
}

// Lines returns the current text, top to bottom.
func (h *HUD) Lines() []string {
	return h.lines
}
