package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const DefaultPageSize = 30

// CatalogState is a point-in-time copy of the catalog store.
type CatalogState struct {
	Products []domain.Product
	Loading  bool
	// Error is the last failure message, empty when there is none.
	Error string
	Total int
	Skip  int
	Limit int

	SearchQuery   string
	SearchResults []domain.Product
	IsSearching   bool
}

type CatalogOpt func(*Catalog)

// WithPageSize sets the limit used when FetchProducts gets a non-positive one.
func WithPageSize(n int) CatalogOpt {
	return func(c *Catalog) {
		if n > 0 {
			c.pageSize = n
			c.limit = n
		}
	}
}

// WithNavigator sets the location updated by search operations.
func WithNavigator(nav port.Navigator) CatalogOpt {
	return func(c *Catalog) {
		c.nav = nav
	}
}

// Catalog is the product catalog store: the paginated product list and an
// independent search result list, both fed from [port.ProductsAPI].
//
// Requests are never coordinated. Overlapping calls race and whichever
// completes last wins.
type Catalog struct {
	api      port.ProductsAPI
	nav      port.Navigator
	pageSize int

	mu       sync.RWMutex
	products []domain.Product
	loading  bool
	err      error
	total    int
	skip     int
	limit    int

	searchQuery   string
	searchResults []domain.Product
	isSearching   bool

	observers observers
	clock     clock
}

func NewCatalog(api port.ProductsAPI, opts ...CatalogOpt) *Catalog {
	if api == nil {
		panic("service.NewCatalog: products API is nil") // develop mistake
	}
	c := &Catalog{
		api:      api,
		pageSize: DefaultPageSize,
		limit:    DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a deep copy of the store.
func (c *Catalog) State() CatalogState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := CatalogState{
		Products:      domain.CloneProducts(c.products),
		Loading:       c.loading,
		Total:         c.total,
		Skip:          c.skip,
		Limit:         c.limit,
		SearchQuery:   c.searchQuery,
		SearchResults: domain.CloneProducts(c.searchResults),
		IsSearching:   c.isSearching,
	}
	var rErr *RemoteError
	if errors.As(c.err, &rErr) {
		s.Error = rErr.Message
	}
	return s
}

// Err returns the last recorded failure, nil when there is none.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.CloneProducts(c.products)
}

func (c *Catalog) AvailableProducts() []domain.Product {
	return c.filtered(func(p domain.Product) bool { return p.Stock > 0 })
}

func (c *Catalog) OutOfStockProducts() []domain.Product {
	return c.filtered(func(p domain.Product) bool { return p.Stock == 0 })
}

func (c *Catalog) ProductByID(id int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := indexOfProduct(c.products, id)
	if i < 0 {
		return domain.Product{}, false
	}
	return c.products[i].Clone(), true
}

// FetchProducts loads one page of the catalog. The first page (skip 0)
// replaces the list and starts it with the supplement products, later pages
// are appended.
//
// Failures are recorded in the store and are not returned.
func (c *Catalog) FetchProducts(ctx context.Context, limit, skip int) {
	const op = "Catalog.FetchProducts"
	log := slog.With("op", op)

	if limit <= 0 {
		limit = c.pageSize
	}

	c.startLoading()
	defer c.stopLoading()

	page, err := c.api.ListProducts(ctx, limit, skip)
	if err != nil {
		c.fail(newRemoteError(op, err, fallbackFetchProducts))
		log.Error("failed to fetch products", "limit", limit, "skip", skip, "err", err)
		return
	}

	supplement := SupplementProducts()

	c.mu.Lock()
	defer c.mu.Unlock()

	if skip == 0 {
		c.products = slices.Concat(supplement, page.Products)
	} else {
		c.products = slices.Concat(c.products, page.Products)
	}
	c.total = page.Total + len(supplement)
	c.skip = page.Skip
	c.limit = page.Limit

	log.Debug("products fetched",
		"received", len(page.Products), "listed", len(c.products), "total", c.total,
	)
}

// FetchProductByID loads a single product, replacing the listed copy in
// place or appending it. Unlike the other operations it also returns the
// failure to the caller.
func (c *Catalog) FetchProductByID(
	ctx context.Context, id int,
) (domain.Product, error) {
	const op = "Catalog.FetchProductByID"
	log := slog.With("op", op)

	c.startLoading()
	defer c.stopLoading()

	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		rErr := newRemoteError(op, err, fallbackFetchProduct)
		c.fail(rErr)
		log.Error("failed to fetch product", "id", id, "err", err)
		return domain.Product{}, rErr
	}

	c.mu.Lock()
	if i := indexOfProduct(c.products, id); i >= 0 {
		c.products[i] = p
	} else {
		c.products = append(c.products, p)
	}
	c.mu.Unlock()

	return p.Clone(), nil
}

// SearchProducts runs a remote search and stores the supplement products
// that match query locally followed by the remote matches. A blank query
// resets the search state without a request.
//
// With updateNavigation the location is set to the query on success, or
// reset for a blank query.
func (c *Catalog) SearchProducts(
	ctx context.Context, query string, updateNavigation bool,
) {
	const op = "Catalog.SearchProducts"
	log := slog.With("op", op)

	if strings.TrimSpace(query) == "" {
		c.mu.Lock()
		c.searchResults = nil
		c.searchQuery = ""
		c.isSearching = false
		c.mu.Unlock()

		if updateNavigation {
			if err := c.resetNavigation(ctx); err != nil {
				c.fail(newRemoteError(op, err, fallbackSearch))
				log.Error("failed to reset navigation", "err", err)
			}
		}
		return
	}

	c.mu.Lock()
	c.isSearching = true
	c.searchQuery = query
	c.err = nil
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.isSearching = false
		c.mu.Unlock()
	}()

	page, err := c.api.SearchProducts(ctx, query)
	if err != nil {
		c.fail(newRemoteError(op, err, fallbackSearch))
		log.Error("failed to search products", "query", query, "err", err)
		return
	}

	results := slices.Concat(
		FilterProducts(SupplementProducts(), query), page.Products,
	)

	c.mu.Lock()
	c.searchResults = results
	c.mu.Unlock()

	c.notify(domain.ClientEvent{
		Kind:    domain.EventSearch,
		Query:   query,
		Results: len(results),
	})

	if updateNavigation && c.nav != nil {
		if err := c.nav.SetSearch(ctx, query); err != nil {
			c.fail(newRemoteError(op, err, fallbackSearch))
			log.Error("failed to update navigation", "query", query, "err", err)
		}
	}
}

// ClearSearch resets the search state and the recorded error.
func (c *Catalog) ClearSearch(ctx context.Context, updateNavigation bool) error {
	const op = "Catalog.ClearSearch"

	c.mu.Lock()
	c.searchQuery = ""
	c.searchResults = nil
	c.isSearching = false
	c.err = nil
	c.mu.Unlock()

	if !updateNavigation {
		return nil
	}
	if err := c.resetNavigation(ctx); err != nil {
		return opErr(err, op)
	}
	return nil
}

// InitializeFromQuery restores search state from an externally supplied
// query, such as the one in a shared link. The location is left untouched.
func (c *Catalog) InitializeFromQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	c.SearchProducts(ctx, query, false)
}

// Subscribe registers fn for search events. The returned func unsubscribes.
func (c *Catalog) Subscribe(fn func(domain.ClientEvent)) func() {
	return c.observers.subscribe(fn)
}

func (c *Catalog) startLoading() {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()
}

func (c *Catalog) stopLoading() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *Catalog) fail(err *RemoteError) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func (c *Catalog) resetNavigation(ctx context.Context) error {
	if c.nav == nil {
		return nil
	}
	return c.nav.Reset(ctx)
}

func (c *Catalog) filtered(keep func(domain.Product) bool) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Product
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *Catalog) notify(evt domain.ClientEvent) {
	evt.OccurredAt = c.clock.now()
	c.observers.notify(evt)
}

func indexOfProduct(ps []domain.Product, id int) int {
	return slices.IndexFunc(ps, func(p domain.Product) bool {
		return p.ID == id
	})
}
