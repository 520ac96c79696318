package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ProductsAPI is the remote product catalog.
type ProductsAPI interface {
	ListProducts(ctx context.Context, limit, skip int) (domain.ProductsPage, error)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
	SearchProducts(ctx context.Context, query string) (domain.ProductsPage, error)
}

// Navigator owns the displayed location. Writes replace the current entry.
type Navigator interface {
	SetSearch(ctx context.Context, query string) error
	Reset(ctx context.Context) error
}

type ClientEventsPublisher interface {
	Publish(context.Context, domain.ClientEvent)
}
