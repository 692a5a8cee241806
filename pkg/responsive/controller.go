// Package responsive classifies viewport widths against per-widget
// breakpoints and keeps the navigation menu state consistent across
// breakpoint changes.
package responsive

import (
	"fmt"
	"sync"
)

// Breakpoints used by the dashboard widgets.
const (
	Small  = 640
	Medium = 768
	Large  = 1024
	XLarge = 1280
)

// ViewportClass is the layout mode derived from a width.
type ViewportClass int

const (
	Desktop ViewportClass = iota
	Mobile
)

func (c ViewportClass) String() string {
	if c == Mobile {
		return "mobile"
	}
	return "desktop"
}

// MarshalText encodes the class by name.
func (c ViewportClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts "desktop" or "mobile".
func (c *ViewportClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "desktop":
		*c = Desktop
	case "mobile":
		*c = Mobile
	default:
		return fmt.Errorf("responsive: unknown viewport class %q", text)
	}
	return nil
}

// Classify reports Mobile when width is strictly below threshold.
func Classify(width, threshold int) ViewportClass {
	if width < threshold {
		return Mobile
	}
	return Desktop
}

// Controller tracks one widget's viewport class. Until the first width is
// observed it reports Desktop regardless of the real viewport.
type Controller struct {
	mu          sync.Mutex
	threshold   int
	mounted     bool
	width       int
	class       ViewportClass
	unsubscribe func()
	onChange    func(ViewportClass)
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// OnChange registers a callback fired whenever the class flips, including
// the mount transition when the first width is mobile.
func OnChange(fn func(ViewportClass)) ControllerOption {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// NewController builds an unmounted controller for threshold.
func NewController(threshold int, opts ...ControllerOption) *Controller {
	c := &Controller{threshold: threshold}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Threshold returns the breakpoint this controller classifies against.
func (c *Controller) Threshold() int { return c.threshold }

// Mount observes the first real width. Later calls are ignored and return false.
func (c *Controller) Mount(width int) bool {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return false
	}
	c.mounted = true
	changed := c.apply(width)
	c.mu.Unlock()
	c.notify(changed)
	return true
}

// Resize reclassifies a mounted controller. It is ignored before Mount.
func (c *Controller) Resize(width int) bool {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return false
	}
	changed := c.apply(width)
	c.mu.Unlock()
	c.notify(changed)
	return true
}

// Observe mounts on the first width and resizes afterwards.
func (c *Controller) Observe(width int) {
	if !c.Mount(width) {
		c.Resize(width)
	}
}

// Attach subscribes to v, releasing any previous subscription. If v is a Hub
// that already knows the width, the controller mounts immediately.
func (c *Controller) Attach(v Viewport) {
	if v == nil {
		return
	}
	c.Detach()
	unsubscribe := v.OnResize(c.Observe)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
	if hub, ok := v.(*Hub); ok {
		if width, known := hub.Width(); known {
			c.Observe(width)
		}
	}
}

// Detach releases the viewport subscription. The last class is kept.
func (c *Controller) Detach() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Attached reports whether a viewport subscription is held.
func (c *Controller) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsubscribe != nil
}

// Mounted reports whether a width has been observed.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Width returns the last observed width.
func (c *Controller) Width() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.mounted
}

// Class returns Desktop before mount.
func (c *Controller) Class() ViewportClass {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return Desktop
	}
	return c.class
}

// IsMobile is false before mount.
func (c *Controller) IsMobile() bool {
	return c.Class() == Mobile
}

func (c *Controller) apply(width int) (changed *ViewportClass) {
	prev := c.class
	c.width = width
	c.class = Classify(width, c.threshold)
	if c.class != prev {
		next := c.class
		return &next
	}
	return nil
}

func (c *Controller) notify(changed *ViewportClass) {
	if changed != nil && c.onChange != nil {
		c.onChange(*changed)
	}
}
