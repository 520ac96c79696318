package domain

import "time"

type ClientEventKind string

const (
	EventSearch     ClientEventKind = "search"
	EventCartAdd    ClientEventKind = "cart_add"
	EventCartRemove ClientEventKind = "cart_remove"
	EventCartUpdate ClientEventKind = "cart_update"
	EventCartClear  ClientEventKind = "cart_clear"
)

// A ClientEvent describes a user action observed by one of the stores.
//
// Search events carry Query and Results, cart events carry the product
// fields and the resulting Quantity.
type ClientEvent struct {
	Kind       ClientEventKind
	Query      string
	Results    int
	ProductID  int
	Title      string
	Brand      string
	Category   string
	Price      float64
	Quantity   int
	OccurredAt time.Time
}
