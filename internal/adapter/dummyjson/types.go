package dummyjson

type (
	product struct {
		ID                   int               `json:"id"`
		Title                string            `json:"title"`
		Description          string            `json:"description"`
		Category             string            `json:"category"`
		Price                float64           `json:"price"`
		DiscountPercentage   float64           `json:"discountPercentage"`
		Rating               float64           `json:"rating"`
		Stock                int               `json:"stock"`
		Tags                 []string          `json:"tags"`
		Brand                string            `json:"brand"`
		SKU                  string            `json:"sku"`
		Weight               float64           `json:"weight"`
		Dimensions           productDimensions `json:"dimensions"`
		WarrantyInformation  string            `json:"warrantyInformation"`
		ShippingInformation  string            `json:"shippingInformation"`
		AvailabilityStatus   string            `json:"availabilityStatus"`
		Reviews              []productReview   `json:"reviews"`
		ReturnPolicy         string            `json:"returnPolicy"`
		MinimumOrderQuantity int               `json:"minimumOrderQuantity"`
		Meta                 productMeta       `json:"meta"`
		Thumbnail            string            `json:"thumbnail"`
		Images               []string          `json:"images"`
	}

	productDimensions struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Depth  float64 `json:"depth"`
	}

	productReview struct {
		Rating        float64 `json:"rating"`
		Comment       string  `json:"comment"`
		Date          string  `json:"date"`
		ReviewerName  string  `json:"reviewerName"`
		ReviewerEmail string  `json:"reviewerEmail"`
	}

	productMeta struct {
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
		Barcode   string `json:"barcode"`
		QRCode    string `json:"qrCode"`
	}
)

type productsResponse struct {
	Products []product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
