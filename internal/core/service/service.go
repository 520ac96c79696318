// Package service holds the storefront state: the shopping cart and the
// product catalog with its search state.
//
// Stores are plain values owned by the caller. Every accessor returns a copy,
// so nothing outside the package can mutate store state except through the
// store operations.
package service

import (
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type subscriber struct {
	id int
	fn func(domain.ClientEvent)
}

// observers is a synchronous fan-out of client events.
//
// Callbacks run on the goroutine that changed the store, after the store
// lock is released.
type observers struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

func (o *observers) subscribe(fn func(domain.ClientEvent)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber{id, fn})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *observers) remove(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs = slices.DeleteFunc(o.subs, func(s subscriber) bool {
		return s.id == id
	})
}

func (o *observers) notify(evt domain.ClientEvent) {
	o.mu.Lock()
	subs := slices.Clone(o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(evt)
	}
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
