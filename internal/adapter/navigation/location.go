// Package navigation keeps the displayed location of the storefront and the
// search query encoded in it.
package navigation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Navigator = (*Location)(nil)

const searchParam = "search"

// Location is an in-memory location. Writes replace the current entry, no
// history is kept.
type Location struct {
	mu  sync.RWMutex
	cur *url.URL
}

// New parses rawURL as the initial location. An empty rawURL means "/".
func New(rawURL string) (*Location, error) {
	const op = "navigation.New"

	if strings.TrimSpace(rawURL) == "" {
		rawURL = "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Location{cur: u}, nil
}

// SearchQuery returns the search parameter of the current location.
func (l *Location) SearchQuery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur.Query().Get(searchParam)
}

// SetSearch replaces the location with /?search=<query>.
func (l *Location) SetSearch(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("Location.SetSearch: %w", err)
	}
	l.replace(&url.URL{
		Path:     "/",
		RawQuery: searchParam + "=" + url.QueryEscape(query),
	})
	return nil
}

// Reset replaces the location with /.
func (l *Location) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("Location.Reset: %w", err)
	}
	l.replace(&url.URL{Path: "/"})
	return nil
}

func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur.String()
}

func (l *Location) replace(u *url.URL) {
	l.mu.Lock()
	l.cur = u
	l.mu.Unlock()
}
