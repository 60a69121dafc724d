// Package cart holds the client cart state: an item list plus derived
// totals, persisted as JSON of the items only. Totals are recomputed on
// every load instead of being trusted from storage.
package cart

import "encoding/json"

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
}

type Cart struct {
	Items      []Item  `json:"items"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

func New() *Cart { return &Cart{Items: []Item{}} }

// Add appends the item with quantity one, or bumps the quantity when the
// id is already present.
func (c *Cart) Add(it Item) {
	for i := range c.Items {
		if c.Items[i].ID == it.ID {
			c.Items[i].Quantity++
			c.recompute()
			return
		}
	}
	it.Quantity = 1
	c.Items = append(c.Items, it)
	c.recompute()
}

// Remove drops the item and its full contribution to the totals.
func (c *Cart) Remove(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return
		}
	}
}

// SetQuantity sets the item's quantity; quantities below one remove it.
func (c *Cart) SetQuantity(id string, qty int) {
	if qty < 1 {
		c.Remove(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			c.recompute()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = []Item{}
	c.TotalItems = 0
	c.TotalPrice = 0
}

func (c *Cart) Quantity(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return c.Items[i].Quantity
		}
	}
	return 0
}

func (c *Cart) Contains(id string) bool { return c.Quantity(id) > 0 }

// Encode serializes the item list only; totals are derived state.
func (c *Cart) Encode() ([]byte, error) {
	return json.Marshal(c.Items)
}

// Decode restores a cart from persisted items and recomputes the totals,
// so drifted or tampered totals never survive a reload.
func Decode(data []byte) (*Cart, error) {
	c := New()
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.Items); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	c.recompute()
	return c, nil
}

func (c *Cart) recompute() {
	items, price := 0, 0.0
	for _, it := range c.Items {
		items += it.Quantity
		price += it.Price * float64(it.Quantity)
	}
	c.TotalItems = items
	c.TotalPrice = price
}
