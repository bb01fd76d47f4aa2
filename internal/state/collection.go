package state

import (
	"github.com/atomicstack/spiris-tui/internal/entity"
)

// Collection is the locally cached list for one entity kind.
//
// Selected is always inside [0, len(Items)-1] when Items is non-empty and 0
// otherwise. Loads may overlap (a synchronous load while a background refresh
// is still in flight), so loading is a counter rather than a flag.
type Collection struct {
	Kind     entity.Kind
	Items    []entity.Item
	Selected int
	Page     int
	LastErr  string

	pending int
}

// NewCollection returns an empty collection positioned on the first page.
func NewCollection(kind entity.Kind) *Collection {
	return &Collection{Kind: kind, Page: 1}
}

// Loading reports whether any load for this collection is outstanding.
func (c *Collection) Loading() bool {
	return c.pending > 0
}

// Begin marks a load as started and clears the previous error.
func (c *Collection) Begin() {
	c.pending++
	c.LastErr = ""
}

// Finish settles one outstanding load without touching items.
func (c *Collection) Finish() {
	if c.pending > 0 {
		c.pending--
	}
}

// Apply replaces the items with a successful result and settles one load.
func (c *Collection) Apply(items []entity.Item) {
	c.Items = entity.CloneItems(items)
	c.clamp()
	c.Finish()
}

// Fail records a load failure, keeping the prior items.
func (c *Collection) Fail(err error) {
	if err != nil {
		c.LastErr = err.Error()
	}
	c.Finish()
}

// Move shifts the selection by delta, clamped to the item range. It reports
// whether the selection changed.
func (c *Collection) Move(delta int) bool {
	if len(c.Items) == 0 {
		c.Selected = 0
		return false
	}
	old := c.Selected
	c.Selected += delta
	c.clamp()
	return c.Selected != old
}

// Current returns the selected item.
func (c *Collection) Current() (entity.Item, bool) {
	if len(c.Items) == 0 {
		return entity.Item{}, false
	}
	return c.Items[c.Selected], true
}

// Find looks an item up by identifier.
func (c *Collection) Find(id string) (entity.Item, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return entity.Item{}, false
}

func (c *Collection) clamp() {
	n := len(c.Items)
	if n == 0 {
		c.Selected = 0
		return
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
	if c.Selected >= n {
		c.Selected = n - 1
	}
}
