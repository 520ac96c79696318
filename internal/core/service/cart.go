package service

import (
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Cart is the shopping cart store.
//
// Invalid requests (unknown id, over-stock quantity) are ignored. Mutating
// operations report whether they changed the cart; callers are free to
// discard the result.
type Cart struct {
	mu     sync.RWMutex
	items  []domain.CartItem
	isOpen bool

	observers observers
	clock     clock
}

func NewCart() *Cart {
	return &Cart{}
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Cart) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpen
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// TotalPrice is the sum of price × quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, item := range c.items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

func (c *Cart) ItemByID(id int) (domain.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return domain.CartItem{}, false
	}
	return c.items[i], true
}

// AddToCart appends p with quantity 1 when absent, or increments the
// existing line while it is below the recorded stock.
func (c *Cart) AddToCart(p domain.Product) bool {
	c.mu.Lock()

	var item domain.CartItem
	i := c.indexOf(p.ID)
	switch {
	case i >= 0 && c.items[i].Quantity < c.items[i].Stock:
		c.items[i].Quantity++
		item = c.items[i]
	case i < 0:
		item = domain.NewCartItem(p)
		c.items = append(c.items, item)
	default:
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	c.notify(domain.ClientEvent{
		Kind:      domain.EventCartAdd,
		ProductID: p.ID,
		Title:     p.Title,
		Brand:     p.Brand,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  item.Quantity,
	})
	return true
}

// RemoveFromCart drops the line with the given product id, if any.
func (c *Cart) RemoveFromCart(id int) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	item := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	c.mu.Unlock()

	c.notify(itemEvent(domain.EventCartRemove, item, 0))
	return true
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line; a quantity above the recorded stock is ignored.
func (c *Cart) UpdateQuantity(id int, quantity int) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}

	if quantity <= 0 {
		c.mu.Unlock()
		return c.RemoveFromCart(id)
	}

	if quantity > c.items[i].Stock {
		c.mu.Unlock()
		return false
	}

	c.items[i].Quantity = quantity
	item := c.items[i]
	c.mu.Unlock()

	c.notify(itemEvent(domain.EventCartUpdate, item, quantity))
	return true
}

func (c *Cart) ClearCart() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.notify(domain.ClientEvent{Kind: domain.EventCartClear})
}

// ToggleCart flips the cart visibility and returns the new value.
func (c *Cart) ToggleCart() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = !c.isOpen
	return c.isOpen
}

// Subscribe registers fn for cart events. The returned func unsubscribes.
func (c *Cart) Subscribe(fn func(domain.ClientEvent)) func() {
	return c.observers.subscribe(fn)
}

func (c *Cart) indexOf(id int) int {
	return slices.IndexFunc(c.items, func(item domain.CartItem) bool {
		return item.ID == id
	})
}

func (c *Cart) notify(evt domain.ClientEvent) {
	evt.OccurredAt = c.clock.now()
	c.observers.notify(evt)
}

func itemEvent(
	kind domain.ClientEventKind, item domain.CartItem, quantity int,
) domain.ClientEvent {
	return domain.ClientEvent{
		Kind:      kind,
		ProductID: item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Quantity:  quantity,
	}
}
