package services

import (
	"kiosk/entity"
)

// CartEntry pairs a menu item with a quantity. Quantity is always
// positive: an entry that would drop to zero is removed instead.
type CartEntry struct {
	Item     entity.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Cart is the session-owned order ledger. Entries keep the order items
// were first added in; repeated adds only bump the quantity in place.
// Operations never fail: unknown ids are ignored so a double-tap on a
// stale button can't break the order.
type Cart struct {
	entries []CartEntry
}

func NewCart() *Cart {
	return &Cart{entries: []CartEntry{}}
}

func (c *Cart) Add(item entity.MenuItem) {
	for i := range c.entries {
		if c.entries[i].Item.ID == item.ID {
			c.entries[i].Quantity++
			return
		}
	}
	c.entries = append(c.entries, CartEntry{Item: item, Quantity: 1})
}

// UpdateQuantity adjusts an entry by delta. Dropping to zero or below
// removes the entry. Unknown id is a no-op.
func (c *Cart) UpdateQuantity(id uint, delta int) {
	for i := range c.entries {
		if c.entries[i].Item.ID != id {
			continue
		}
		q := c.entries[i].Quantity + delta
		if q > 0 {
			c.entries[i].Quantity = q
		} else {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
		}
		return
	}
}

func (c *Cart) Remove(id uint) {
	for i := range c.entries {
		if c.entries[i].Item.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.Item.Price * int64(e.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	var n int
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	return len(c.entries) == 0
}

func (c *Cart) Clear() {
	c.entries = c.entries[:0]
}

// Entries returns a copy so callers can't bypass the ledger invariants.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
