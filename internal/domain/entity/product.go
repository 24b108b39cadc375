package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Product is a read-only mirror of a backend product.
type Product struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         float64         `json:"price"`
	OriginalPrice float64         `json:"originalPrice,omitempty"`
	OnSale        bool            `json:"onSale,omitempty"`
	Featured      bool            `json:"featured,omitempty"`
	Promotion     json.RawMessage `json:"promotion,omitempty"` // only its presence matters
	Images        []string        `json:"images,omitempty"`
	Image         string          `json:"image,omitempty"`
	Stock         *int            `json:"stock,omitempty"` // nil when the backend does not track stock
	CreatedAt     time.Time       `json:"createdAt"`
}

// HasPromotion reports whether the backend attached a promotion to the product.
func (p Product) HasPromotion() bool {
	trimmed := bytes.TrimSpace(p.Promotion)

	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// IsDiscounted reports whether the product looks like a deal: flagged on
// sale, carrying a promotion, or priced under its original price.
func (p Product) IsDiscounted() bool {
	return p.OnSale || p.HasPromotion() || p.OriginalPrice > p.Price
}

// PrimaryImage returns the first available image URL.
func (p Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}

	return ""
}

// InStock reports whether quantity units can be ordered. Untracked stock
// never blocks an order.
func (p Product) InStock(quantity int) bool {
	return p.Stock == nil || *p.Stock >= quantity
}

// ProductRef is a product reference inside a promotion. The backend sends
// either a bare id or an embedded product object.
type ProductRef struct {
	ID      string
	Product *Product
}

// UnmarshalJSON accepts "id" or {"_id": "...", ...}.
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		return errors.WithStack(json.Unmarshal(trimmed, &r.ID))
	}

	var product Product
	if err := json.Unmarshal(trimmed, &product); err != nil {
		return errors.Wrap(err, "decode product reference")
	}
	r.ID = product.ID
	r.Product = &product

	return nil
}

// MarshalJSON writes the reference as its id.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Promotion is a read-only mirror of a backend promotion.
type Promotion struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	BannerText    string       `json:"bannerText,omitempty"`
	DiscountType  string       `json:"discountType,omitempty"`
	DiscountValue float64      `json:"discountValue,omitempty"`
	Image         string       `json:"image,omitempty"`
	Products      []ProductRef `json:"products,omitempty"`
}

// FirstProductID returns the first referenced product id.
func (p Promotion) FirstProductID() (string, bool) {
	for _, ref := range p.Products {
		if ref.ID != "" {
			return ref.ID, true
		}
	}

	return "", false
}

// FeaturedSource names the cascade step that produced a featured candidate.
type FeaturedSource string

const (
	FeaturedFromPromotion  FeaturedSource = "promotion"
	FeaturedFromDiscounted FeaturedSource = "discounted"
	FeaturedFromRecent     FeaturedSource = "recent"
	FeaturedFromFiller     FeaturedSource = "filler"
	FeaturedNone           FeaturedSource = "none"
)

// FeaturedCandidate is what the landing page hero shows. It is recomputed
// on every request and never cached.
type FeaturedCandidate struct {
	Product   *Product       `json:"product,omitempty"`
	Promotion *Promotion     `json:"promotion,omitempty"`
	Source    FeaturedSource `json:"source"`
}

// IsEmpty reports whether the hero should render its generic fallback.
func (c FeaturedCandidate) IsEmpty() bool {
	return c.Product == nil && c.Promotion == nil
}
