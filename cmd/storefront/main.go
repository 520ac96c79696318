package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	closeTimeout  = 5 * time.Second
	fetchAttempts = 3
)

type flags struct {
	url    string
	search string
	add    []int
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	f := parseFlags()

	cfg := config.Load()
	if cfg.LogLevel < 0 {
		cfg.Print()
	}

	storefront, err := app.New(sigCtx, cfg, f.url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		storefront.Close(ctx)
	}()

	if err := run(sigCtx, storefront, f); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	printSummary(os.Stdout, storefront)
}

func parseFlags() flags {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	_ = cmdLine.String("config", "", "config file")
	url := cmdLine.String("url", "", "initial location, e.g. /?search=phone")
	search := cmdLine.String("search", "", "search query")
	add := cmdLine.IntSlice("add", nil, "product ids to add to the cart")
	_ = cmdLine.Parse(os.Args[1:])

	return flags{url: *url, search: *search, add: *add}
}

func run(ctx context.Context, storefront *app.App, f flags) error {
	catalog := storefront.Catalog()

	err := retry.Do(ctx,
		retry.RetryConfig{
			MaxAttempts: fetchAttempts,
			ShouldRetry: func(err error) bool {
				return errors.Is(err, service.ErrRemote)
			},
		},
		func() error {
			catalog.FetchProducts(ctx, 0, 0)
			return catalog.Err()
		},
	)
	if err != nil {
		return err
	}

	catalog.InitializeFromQuery(ctx, storefront.Location().SearchQuery())
	if f.search != "" {
		catalog.SearchProducts(ctx, f.search, true)
	}

	cart := storefront.Cart()
	for _, id := range f.add {
		p, ok := catalog.ProductByID(id)
		if !ok {
			if p, err = catalog.FetchProductByID(ctx, id); err != nil {
				return err
			}
		}
		if !cart.AddToCart(p) {
			fmt.Printf("product %d was not added: stock limit reached\n", id)
		}
	}

	return catalog.Err()
}

func printSummary(w io.Writer, storefront *app.App) {
	s := storefront.Catalog().State()
	cart := storefront.Cart()

	fmt.Fprintf(w, "location: %s\n", storefront.Location())
	fmt.Fprintf(w, "products: %d of %d (skip=%d, limit=%d)\n",
		len(s.Products), s.Total, s.Skip, s.Limit,
	)
	if s.Error != "" {
		fmt.Fprintf(w, "error: %s\n", s.Error)
	}

	if s.SearchQuery != "" {
		fmt.Fprintf(w, "\nsearch %q: %d results\n", s.SearchQuery, len(s.SearchResults))
		for _, p := range s.SearchResults {
			printProduct(w, p)
		}
	}

	items := cart.Items()
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\ncart: %d items, total %.2f\n", cart.TotalItems(), cart.TotalPrice())
	for _, item := range items {
		fmt.Fprintf(w, "  %-6d %-40s %3d x %8.2f\n",
			item.ID, truncate(item.Title, 40), item.Quantity, item.Price,
		)
	}
}

func printProduct(w io.Writer, p domain.Product) {
	stock := fmt.Sprintf("%d in stock", p.Stock)
	if !p.InStock() {
		stock = "out of stock"
	}
	fmt.Fprintf(w, "  %-6d %-40s %8.2f  %s\n",
		p.ID, truncate(p.Title, 40), p.Price, stock,
	)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
