// Package dummyjson implements the remote product catalog on top of the
// dummyjson.com products API.
package dummyjson

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsAPI = (*API)(nil)

// JSONGetter is the part of the shared HTTP client the API needs.
type JSONGetter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

type API struct {
	cl JSONGetter
}

func New(cl JSONGetter) API {
	if cl == nil {
		panic("dummyjson.New: client is nil") // develop mistake
	}
	return API{cl}
}

// ListProducts calls GET /products?limit=&skip=.
func (a API) ListProducts(
	ctx context.Context, limit, skip int,
) (domain.ProductsPage, error) {
	const op = "API.ListProducts"

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var res productsResponse
	if err := a.cl.GetJSON(ctx, "/products", q, &res); err != nil {
		return domain.ProductsPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return a.toPage(res), nil
}

// GetProduct calls GET /products/{id}.
func (a API) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	const op = "API.GetProduct"

	var res product
	path := "/products/" + strconv.Itoa(id)
	if err := a.cl.GetJSON(ctx, path, nil, &res); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return a.toDomain(res), nil
}

// SearchProducts calls GET /products/search?q=.
func (a API) SearchProducts(
	ctx context.Context, query string,
) (domain.ProductsPage, error) {
	const op = "API.SearchProducts"

	var res productsResponse
	q := url.Values{"q": {query}}
	if err := a.cl.GetJSON(ctx, "/products/search", q, &res); err != nil {
		return domain.ProductsPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return a.toPage(res), nil
}

func (a API) toPage(res productsResponse) domain.ProductsPage {
	page := domain.ProductsPage{
		Products: make([]domain.Product, 0, len(res.Products)),
		Total:    res.Total,
		Skip:     res.Skip,
		Limit:    res.Limit,
	}
	for _, p := range res.Products {
		page.Products = append(page.Products, a.toDomain(p))
	}
	return page
}

func (API) toDomain(p product) domain.Product {
	dp := domain.Product{
		ID:                   p.ID,
		Title:                p.Title,
		Description:          p.Description,
		Category:             p.Category,
		Price:                p.Price,
		DiscountPercentage:   p.DiscountPercentage,
		Rating:               p.Rating,
		Stock:                p.Stock,
		Tags:                 p.Tags,
		Brand:                p.Brand,
		SKU:                  p.SKU,
		Weight:               p.Weight,
		WarrantyInformation:  p.WarrantyInformation,
		ShippingInformation:  p.ShippingInformation,
		AvailabilityStatus:   p.AvailabilityStatus,
		ReturnPolicy:         p.ReturnPolicy,
		MinimumOrderQuantity: p.MinimumOrderQuantity,
		Thumbnail:            p.Thumbnail,
		Images:               p.Images,
		Dimensions: domain.ProductDimensions{
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
			Depth:  p.Dimensions.Depth,
		},
		Meta: domain.ProductMeta{
			CreatedAt: p.Meta.CreatedAt,
			UpdatedAt: p.Meta.UpdatedAt,
			Barcode:   p.Meta.Barcode,
			QRCode:    p.Meta.QRCode,
		},
	}

	if len(p.Reviews) != 0 {
		dp.Reviews = make([]domain.ProductReview, len(p.Reviews))
		for i, r := range p.Reviews {
			dp.Reviews[i] = domain.ProductReview{
				Rating:        r.Rating,
				Comment:       r.Comment,
				Date:          r.Date,
				ReviewerName:  r.ReviewerName,
				ReviewerEmail: r.ReviewerEmail,
			}
		}
	}
	return dp
}
