package service

import (
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// SupplementProducts returns the out-of-stock demonstration products that
// are shown alongside the remote catalog. Every call returns fresh copies.
func SupplementProducts() []domain.Product {
	return []domain.Product{
		{
			ID:                 9002,
			Title:              "Limited Edition Smartwatch - Out of Stock",
			Description:        "Exclusive smartwatch with advanced health tracking. Sold out due to limited production run.",
			Category:           "wearables",
			Price:              499.99,
			DiscountPercentage: 20,
			Rating:             4.9,
			Stock:              0,
			Tags:               []string{"smartwatch", "wearables", "health"},
			Brand:              "TechTime",
			SKU:                "TT-SW-002",
			Weight:             0.15,
			Dimensions: domain.ProductDimensions{
				Width: 4.5, Height: 4.5, Depth: 1.2,
			},
			WarrantyInformation: "1 year warranty",
			ShippingInformation: "Currently unavailable",
			AvailabilityStatus:  "Out of Stock",
			Reviews: []domain.ProductReview{
				{
					Rating:        5,
					Comment:       "Best smartwatch I've ever owned!",
					Date:          "2024-01-10T14:20:00.000Z",
					ReviewerName:  "Tech Enthusiast",
					ReviewerEmail: "tech@example.com",
				},
			},
			ReturnPolicy:         "30 days return policy",
			MinimumOrderQuantity: 1,
			Meta: domain.ProductMeta{
				CreatedAt: "2024-01-01T00:00:00.000Z",
				UpdatedAt: "2024-01-10T00:00:00.000Z",
				Barcode:   "1234567890124",
				QRCode:    "QR124",
			},
			Thumbnail: "https://cdn.dummyjson.com/products/images/mens-watches/Brown%20Leather%20Belt%20Watch/thumbnail.png",
			Images: []string{
				"https://cdn.dummyjson.com/products/images/mens-watches/Brown%20Leather%20Belt%20Watch/1.png",
			},
		},
		{
			ID:                 9003,
			Title:              "Gaming Mechanical Keyboard - Unavailable",
			Description:        "Professional gaming keyboard with RGB lighting. Currently out of stock, restocking soon.",
			Category:           "gaming",
			Price:              159.99,
			DiscountPercentage: 0,
			Rating:             4.7,
			Stock:              0,
			Tags:               []string{"gaming", "keyboard", "mechanical"},
			Brand:              "GamePro",
			SKU:                "GP-KB-003",
			Weight:             1.2,
			Dimensions: domain.ProductDimensions{
				Width: 45, Height: 15, Depth: 3,
			},
			WarrantyInformation: "2 year warranty",
			ShippingInformation: "Currently unavailable",
			AvailabilityStatus:  "Out of Stock",
			Reviews: []domain.ProductReview{
				{
					Rating:        4,
					Comment:       "Great for gaming, but sold out everywhere!",
					Date:          "2024-01-08T09:15:00.000Z",
					ReviewerName:  "Gamer123",
					ReviewerEmail: "gamer@example.com",
				},
			},
			ReturnPolicy:         "30 days return policy",
			MinimumOrderQuantity: 1,
			Meta: domain.ProductMeta{
				CreatedAt: "2024-01-01T00:00:00.000Z",
				UpdatedAt: "2024-01-08T00:00:00.000Z",
				Barcode:   "1234567890125",
				QRCode:    "QR125",
			},
			Thumbnail: "https://cdn.dummyjson.com/products/images/laptops/Apple%20MacBook%20Pro%2014%20Inch%20Space%20Grey/thumbnail.png",
			Images: []string{
				"https://cdn.dummyjson.com/products/images/laptops/Apple%20MacBook%20Pro%2014%20Inch%20Space%20Grey/1.png",
			},
		},
	}
}

// MatchesQuery reports whether the lowercased, trimmed query is a substring
// of the product title, description, category, brand or one of its tags.
func MatchesQuery(p domain.Product, query string) bool {
	term := strings.ToLower(strings.TrimSpace(query))

	fields := [...]string{p.Title, p.Description, p.Category, p.Brand}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// FilterProducts keeps the products matching query, preserving order.
func FilterProducts(ps []domain.Product, query string) []domain.Product {
	var out []domain.Product
	for _, p := range ps {
		if MatchesQuery(p, query) {
			out = append(out, p)
		}
	}
	return out
}
