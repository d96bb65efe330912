// internal/models/cart.go
package models

// CartItem is one cart line. ID equals the beat id; the cart holds at most
// one line per beat.
type CartItem struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Title        string  `json:"titulo" gorm:"size:255"`
	Price        float64 `json:"precioNumerico"`
	DisplayPrice string  `json:"precio" gorm:"size:50"`
	ImageRef     string  `json:"imagen"`
	Quantity     int     `json:"cantidad"`
}

// NewCartItem snapshots the beat fields the cart needs. Quantity is fixed at
// 1 on add; SetQuantity may later set anything.
func NewCartItem(b Beat) CartItem {
	title := b.Title
	if title == "" {
		title = "Beat"
	}
	return CartItem{
		ID:           b.ID,
		Title:        title,
		Price:        b.Price,
		DisplayPrice: b.DisplayPrice,
		ImageRef:     b.ImageRef,
		Quantity:     1,
	}
}

// CartTotal is Σ price × quantity over the given lines.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
