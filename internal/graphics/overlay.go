package graphics

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cube-showcase/internal/debug"
	"cube-showcase/internal/scene"
	"cube-showcase/internal/ui"
)

// Typeface draws and measures overlay text. The zero value uses raylib's default font.
type Typeface struct {
	font rl.Font
}

// LoadTypeface loads a TTF/OTF font. It must run after the window exists. On failure the
// default font stays in use and os.ErrNotExist is returned.
func LoadTypeface(path string) (*Typeface, error) {
	t := &Typeface{}
	if path == "" {
		return t, nil
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return t, os.ErrNotExist
	}
	t.font = f
	return t, nil
}

func (t *Typeface) custom() bool { return t != nil && t.font.Texture.ID != 0 }

// MeasureText implements ui.Measurer.
func (t *Typeface) MeasureText(text string, fontSize int32) int32 {
	if t.custom() {
		return int32(rl.MeasureTextEx(t.font, text, float32(fontSize), 1).X)
	}
	return rl.MeasureText(text, fontSize)
}

// Draw draws text with its top-left corner at (x, y).
func (t *Typeface) Draw(text string, x, y, fontSize int32, c rl.Color) {
	if t.custom() {
		rl.DrawTextEx(t.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, c)
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
}

// Unload frees a loaded font.
func (t *Typeface) Unload() {
	if t.custom() {
		rl.UnloadFont(t.font)
		t.font = rl.Font{}
	}
}

// drawNodes draws laid-out nodes: background, border, then text. Draw order is node order.
func drawNodes(t *Typeface, nodes []*ui.Node) {
	for _, n := range nodes {
		style := n.Style
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		if style.Background.A > 0 && w > 0 && h > 0 {
			rl.DrawRectangle(x, y, w, h, toColor(style.Background))
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, toColor(style.Border))
		}
		if n.Text == "" {
			continue
		}
		textX, textY := x, y
		if n.Type == "button" {
			textX += (w - t.MeasureText(n.Text, style.FontSize)) / 2
			textY += (h - style.FontSize) / 2
		}
		t.Draw(n.Text, textX, textY, style.FontSize, toColor(style.Color))
		if n.Link != "" {
			underline := textY + style.FontSize + 1
			rl.DrawLine(textX, underline, textX+w, underline, toColor(style.Color))
		}
	}
}

// PopupOverlay draws the content popup while it is visible.
type PopupOverlay struct {
	Popup *ui.Popup
	Face  *Typeface
}

// Draw implements Overlay.
func (o PopupOverlay) Draw(scene.Frame) {
	drawNodes(o.Face, o.Popup.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())))
}

// HUDOverlay draws the debug lines right-aligned at the top-right corner.
type HUDOverlay struct {
	HUD   *debug.HUD
	Face  *Typeface
	Style ui.ComputedStyle
}

// NewHUDOverlay styles the HUD with the .hud rule of sheet.
func NewHUDOverlay(h *debug.HUD, face *Typeface, sheet *ui.Stylesheet) HUDOverlay {
	return HUDOverlay{HUD: h, Face: face, Style: sheet.Resolve(ui.NewNode("label", "hud", "", ""))}
}

// Draw implements Overlay.
func (o HUDOverlay) Draw(f scene.Frame) {
	if !o.HUD.Enabled() {
		return
	}
	o.HUD.Update(f, rl.GetFPS())
	screenW := int32(rl.GetScreenWidth())
	size := o.Style.FontSize
	y := o.Style.Padding
	for _, line := range o.HUD.Lines() {
		x := screenW - o.Face.MeasureText(line, size) - o.Style.Padding
		o.Face.Draw(line, x, y, size, toColor(o.Style.Color))
		y += size + 4
	}
}
