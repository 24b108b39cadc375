package entity

import (
	"fmt"
	"math"
)

// CartItem is one line of the backend cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// Cart is a read-only mirror of the backend cart.
type Cart struct {
	Items []CartItem `json:"items"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums the line totals.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}

	return total
}

// CheckoutItems flattens the cart into checkout lines.
func (c Cart) CheckoutItems() []CheckoutItem {
	items := make([]CheckoutItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, NewCheckoutItem(item.Product, item.Quantity))
	}

	return items
}

// CheckoutItem is an immutable line of a checkout session.
type CheckoutItem struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"productName,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// NewCheckoutItem builds a checkout line from a product.
func NewCheckoutItem(p Product, quantity int) CheckoutItem {
	return CheckoutItem{
		ProductID:   p.ID,
		Quantity:    quantity,
		ProductName: p.Name,
		Price:       p.Price,
		Image:       p.PrimaryImage(),
	}
}

// ProductIDs returns the product id of every line.
func ProductIDs(items []CheckoutItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	return ids
}

// ItemsSubtotal sums price times quantity over items.
func ItemsSubtotal(items []CheckoutItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

// FormatMoney renders an amount the way the storefront displays prices,
// e.g. "ETB 300" or "ETB 12.50".
func FormatMoney(currency string, amount float64) string {
	rounded := math.Round(amount*100) / 100
	if rounded == math.Trunc(rounded) {
		return fmt.Sprintf("%s %d", currency, int64(rounded))
	}

	return fmt.Sprintf("%s %.2f", currency, rounded)
}
