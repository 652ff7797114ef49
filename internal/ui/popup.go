package ui

import (
	"strings"

	"cube-showcase/internal/catalog"
)

// Measurer reports the rendered width of text in pixels at a font size.
type Measurer interface {
	MeasureText(text string, fontSize int32) int32
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, fontSize int32) int32

// MeasureText calls f.
func (f MeasureFunc) MeasureText(text string, fontSize int32) int32 { return f(text, fontSize) }

// Action is the result of a click on the popup.
type Action int

const (
	ActionNone  Action = iota // click missed every control
	ActionClose               // close button
	ActionLink                // a project link; see the returned URL
)

const (
	bulletPrefix = "• "
	scrollStep   = 40
)

// Popup lays out a content entry as a centred panel with a title, one block per project
// (heading, "Link" label, wrapped bullets) and a close button. Present and Dismiss make it
// the overlay presenter; drawing is left to the backend, which calls Layout each frame.
type Popup struct {
	sheet   *Stylesheet
	measure Measurer

	entry     catalog.Entry
	visible   bool
	scroll    float32
	maxScroll float32

	nodes  []*Node
	close  *Node
	links  []*Node
	width  int32
	height int32
	dirty  bool
}

// NewPopup returns a hidden popup styled by sheet (the embedded stylesheet when nil).
func NewPopup(sheet *Stylesheet, m Measurer) *Popup {
	if sheet == nil {
		sheet = DefaultStylesheet()
	}
	return &Popup{sheet: sheet, measure: m}
}

// Present shows e.
func (p *Popup) Present(e catalog.Entry) {
	p.entry = e
	p.visible = true
	p.scroll = 0
	p.dirty = true
}

// Dismiss hides the popup.
func (p *Popup) Dismiss() {
	p.visible = false
	p.nodes = nil
	p.links = nil
	p.close = nil
}

// Visible reports whether the popup is showing.
func (p *Popup) Visible() bool { return p.visible }

// Entry returns the entry last presented.
func (p *Popup) Entry() catalog.Entry { return p.entry }

// Scroll moves the content by wheel steps; positive scrolls down.
func (p *Popup) Scroll(steps float32) {
	if !p.visible || steps == 0 {
		return
	}
	p.scroll = max(0, min(p.maxScroll, p.scroll+steps*scrollStep))
	p.dirty = true
}

// Layout positions every node for a screen of the given size and returns them in draw
// order. The result is cached until the entry, scroll offset or screen size changes.
func (p *Popup) Layout(screenW, screenH int32) []*Node {
	if !p.visible {
		return nil
	}
	if !p.dirty && screenW == p.width && screenH == p.height {
		return p.nodes
	}
	p.width, p.height = screenW, screenH
	p.dirty = false

	panel := NewNode("panel", "popup", "", "")
	panel.Style = p.sheet.Resolve(panel)
	ps := panel.Style
	pad := float32(ps.Padding)
	width := float32(ps.Width)
	if width <= 0 || width > float32(screenW)-2*pad {
		width = max(float32(screenW)-2*pad, 2*pad+1)
	}
	inner := width - 2*pad

	var body []*Node
	var y float32
	add := func(typ, class, text, link string) {
		n := NewNode(typ, class, "", "")
		n.Style = p.sheet.Resolve(n)
		n.Link = link
		size := n.Style.FontSize
		lineH := float32(size) + 4
		for _, line := range Wrap(text, int32(inner), size, p.measure) {
			ln := *n
			ln.Text = line
			ln.Bounds = Rect{X: 0, Y: y, Width: float32(p.measure.MeasureText(line, size)), Height: lineH}
			body = append(body, &ln)
			y += lineH
		}
		y += float32(n.Style.Margin)
	}

	add("label", "popup-title", p.entry.Title, "")
	for _, proj := range p.entry.Projects {
		add("label", "popup-project", proj.Title, "")
		if proj.Link != "" {
			add("link", "popup-link", "Link", proj.Link)
		}
		for _, b := range proj.Bullets {
			add("label", "popup-description", bulletPrefix+b, "")
		}
	}
	contentH := y

	height := contentH + 2*pad
	maxH := float32(screenH) - 2*pad
	if maxH < 2*pad+1 {
		maxH = 2*pad + 1
	}
	if height > maxH {
		height = maxH
	}
	p.maxScroll = max(0, contentH-(height-2*pad))
	p.scroll = min(p.scroll, p.maxScroll)

	x := float32(ps.Left)
	if ps.LeftPct >= 0 {
		x = (float32(screenW) - width) * float32(ps.LeftPct) / 100
	}
	top := float32(ps.Top)
	if ps.TopPct >= 0 {
		top = (float32(screenH) - height) * float32(ps.TopPct) / 100
	}
	panel.Bounds = Rect{X: x, Y: top, Width: width, Height: height}

	p.nodes = append(p.nodes[:0], panel)
	p.links = p.links[:0]
	clipTop, clipBottom := top+pad, top+height-pad
	for _, n := range body {
		n.Bounds.X += x + pad
		n.Bounds.Y += top + pad - p.scroll
		if n.Bounds.Y < clipTop || n.Bounds.Y+n.Bounds.Height > clipBottom {
			continue
		}
		p.nodes = append(p.nodes, n)
		if n.Link != "" {
			p.links = append(p.links, n)
		}
	}

	cl := NewNode("button", "popup-close", "close", "X")
	cl.Style = p.sheet.Resolve(cl)
	cw, ch := float32(cl.Style.Width), float32(cl.Style.Height)
	cl.Bounds = Rect{X: x + width - cw, Y: top, Width: cw, Height: ch}
	p.nodes = append(p.nodes, cl)
	p.close = cl
	return p.nodes
}

// Click resolves a click at (x, y) against the last layout. For ActionLink the link URL
// is returned.
func (p *Popup) Click(x, y float32) (Action, string) {
	if !p.visible {
		return ActionNone, ""
	}
	if p.close != nil && p.close.Bounds.Contains(x, y) {
		return ActionClose, ""
	}
	for _, n := range p.links {
		if n.Bounds.Contains(x, y) {
			return ActionLink, n.Link
		}
	}
	return ActionNone, ""
}

// Wrap breaks text into lines no wider than maxWidth at the given font size, splitting on
// spaces. A single word wider than maxWidth gets a line of its own.
func Wrap(text string, maxWidth, fontSize int32, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.MeasureText(candidate, fontSize) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
