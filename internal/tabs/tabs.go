// Package tabs tracks which dashboard tab is active.
package tabs

import "sync"

// Tab ids.
const (
	Market    = "market"
	Logistics = "logistics"
	Analysis  = "analysis"
)

// Controller owns the active tab. It is safe for concurrent use because the
// analysis orchestrator activates tabs from fetch goroutines.
type Controller struct {
	mu       sync.RWMutex
	ids      []string
	active   string
	bindings map[string]string
}

// New returns a controller over ids with nothing active yet.
func New(ids ...string) *Controller {
	return &Controller{
		ids:      append([]string(nil), ids...),
		bindings: make(map[string]string),
	}
}

// Default returns the dashboard's three tabs with market active and the
// number keys bound in order.
func Default() *Controller {
	c := New(Market, Logistics, Analysis)
	c.Bind("1", Market)
	c.Bind("2", Logistics)
	c.Bind("3", Analysis)
	c.Activate(Market)
	return c
}

// IDs returns the declared tab ids in order.
func (c *Controller) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Activate makes id the only active tab. Unknown ids are ignored and
// activating the current tab again changes nothing.
func (c *Controller) Activate(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.known(id) {
		return false
	}
	c.active = id
	return true
}

// Active returns the active tab id, or "" before the first activation.
func (c *Controller) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// IsActive reports whether id is the active tab.
func (c *Controller) IsActive(id string) bool {
	return c.Active() == id
}

// Bind registers a trigger key for a tab.
func (c *Controller) Bind(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.known(id) {
		return
	}
	c.bindings[key] = id
}

// Trigger activates the tab bound to key and reports whether one was.
func (c *Controller) Trigger(key string) bool {
	c.mu.RLock()
	id, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return c.Activate(id)
}

// Next activates the tab after the active one, wrapping around.
func (c *Controller) Next() {
	c.step(1)
}

// Prev activates the tab before the active one, wrapping around.
func (c *Controller) Prev() {
	c.step(-1)
}

func (c *Controller) step(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.ids) == 0 {
		return
	}
	idx := 0
	for i, id := range c.ids {
		if id == c.active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(c.ids)) % len(c.ids)
	c.active = c.ids[idx]
}

func (c *Controller) known(id string) bool {
	for _, candidate := range c.ids {
		if candidate == id {
			return true
		}
	}
	return false
}
