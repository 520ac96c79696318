package domain

type CartItem struct {
	ID       int
	Title    string
	Price    float64
	Quantity int
	Image    string
	Stock    int
}

// NewCartItem maps a product onto a cart line with quantity 1.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Quantity: 1,
		Image:    p.Thumbnail,
		Stock:    p.Stock,
	}
}
