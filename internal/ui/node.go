package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label, button, etc. It has optional class and id for CSS
// matching, bounds (position and size), optional text, and a link target for clickable labels.
// Style is filled in by layout.
type Node struct {
	Type   string // "panel", "label", "button", "link"
	Class  string // e.g. "popup" for .popup
	ID     string // e.g. "close" for #close
	Bounds Rect
	Text   string
	Link   string
	Style  ComputedStyle
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}
