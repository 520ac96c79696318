package domain

import "slices"

type (
	Product struct {
		ID                   int
		Title                string
		Description          string
		Category             string
		Price                float64
		DiscountPercentage   float64
		Rating               float64
		Stock                int
		Tags                 []string
		Brand                string
		SKU                  string
		Weight               float64
		Dimensions           ProductDimensions
		WarrantyInformation  string
		ShippingInformation  string
		AvailabilityStatus   string
		Reviews              []ProductReview
		ReturnPolicy         string
		MinimumOrderQuantity int
		Meta                 ProductMeta
		Thumbnail            string
		Images               []string
	}

	ProductDimensions struct {
		Width  float64
		Height float64
		Depth  float64
	}

	ProductReview struct {
		Rating        float64
		Comment       string
		Date          string
		ReviewerName  string
		ReviewerEmail string
	}

	ProductMeta struct {
		CreatedAt string
		UpdatedAt string
		Barcode   string
		QRCode    string
	}
)

// Clone returns a deep copy of p, so the result shares no slices with p.
func (p Product) Clone() Product {
	p.Tags = slices.Clone(p.Tags)
	p.Images = slices.Clone(p.Images)
	p.Reviews = slices.Clone(p.Reviews)
	return p
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductsPage is one page of the remote catalog.
type ProductsPage struct {
	Products []Product
	Total    int
	Skip     int
	Limit    int
}

// CloneProducts deep copies every product in ps.
func CloneProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	out := make([]Product, len(ps))
	for i := range ps {
		out[i] = ps[i].Clone()
	}
	return out
}
