package picking

import (
	"log/slog"
	"sync/atomic"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/catalog"
	"cube-showcase/internal/field"
	"cube-showcase/internal/raycast"
)

// Overlay records whether the content overlay is showing. While it is open, pointer
// activations on the scene are ignored. It is safe for concurrent use.
type Overlay struct {
	open atomic.Bool
}

// IsOpen reports whether the overlay is showing.
func (o *Overlay) IsOpen() bool { return o.open.Load() }

// Open marks the overlay as showing. It reports false if it already was.
func (o *Overlay) Open() bool { return o.open.CompareAndSwap(false, true) }

// Close marks the overlay as hidden. It reports false if it already was.
func (o *Overlay) Close() bool { return o.open.CompareAndSwap(true, false) }

// RayCaster turns a screen point into a world-space ray.
type RayCaster interface {
	RayAt(screenX, screenY float32) raycast.Ray
}

// Target finds the object nearest along a ray.
type Target interface {
	Intersect(r raycast.Ray) (field.PlacedObject, bool)
}

// Catalog resolves an identity to its content.
type Catalog interface {
	Lookup(id assets.Identity) (catalog.Entry, bool)
}

// Presenter shows and hides content for the user.
type Presenter interface {
	Present(e catalog.Entry)
	Dismiss()
}

// Controller maps pointer activations to content. It moves the overlay between idle and
// open: a hit on an object with content opens it, Close returns to idle.
type Controller struct {
	overlay   *Overlay
	rays      RayCaster
	target    Target
	catalog   Catalog
	presenter Presenter
	log       *slog.Logger
}

// NewController wires a picking controller. log may be nil.
func NewController(overlay *Overlay, rays RayCaster, target Target, cat Catalog, p Presenter, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		overlay:   overlay,
		rays:      rays,
		target:    target,
		catalog:   cat,
		presenter: p,
		log:       log,
	}
}

// Overlay returns the overlay state the controller drives.
func (c *Controller) Overlay() *Overlay { return c.overlay }

// Activate handles a click or touch at the given screen point and reports whether
// content was presented. While the overlay is open it does nothing at all. A miss or an
// identity without content leaves the overlay idle.
func (c *Controller) Activate(screenX, screenY float32) bool {
	if c.overlay.IsOpen() {
		return false
	}
	ray := c.rays.RayAt(screenX, screenY)
	obj, ok := c.target.Intersect(ray)
	if !ok {
		return false
	}
	entry, ok := c.catalog.Lookup(obj.Identity)
	if !ok {
		c.log.Debug("no content for identity", "identity", obj.Identity)
		return false
	}
	if !c.overlay.Open() {
		return false
	}
	c.presenter.Present(entry)
	c.log.Info("overlay opened", "identity", obj.Identity, "title", entry.Title)
	return true
}

// Close dismisses the presented content and returns to idle. Closing an idle overlay is
// a no-op.
func (c *Controller) Close() {
	if !c.overlay.Close() {
		return
	}
	c.presenter.Dismiss()
	c.log.Info("overlay closed")
}
