package entity

import "time"

// FeeSource tells where the displayed delivery fee came from.
type FeeSource string

const (
	FeeSourceDefault    FeeSource = "default"
	FeeSourceCalculated FeeSource = "calculated"
	FeeSourceManual     FeeSource = "manual"
)

// FeeTier is one distance band of the published delivery pricing.
// A zero UpToKm means the band is open-ended.
type FeeTier struct {
	FromKm float64 `json:"fromKm"`
	UpToKm float64 `json:"upToKm,omitempty"`
	Fee    float64 `json:"fee"`
}

// DeliveryQuote is a fee returned by a delivery fee calculator.
type DeliveryQuote struct {
	Fee        float64  `json:"deliveryFee"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// FeeState is a point-in-time view of a delivery fee estimator.
type FeeState struct {
	Fee       float64   `json:"fee"`
	Display   string    `json:"display"`
	Source    FeeSource `json:"source"`
	Pending   bool      `json:"pending"`
	LastError string    `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// CheckoutState is the client view of a checkout session.
type CheckoutState struct {
	ID              string         `json:"id"`
	Items           []CheckoutItem `json:"items"`
	Address         Address        `json:"address"`
	Resolution      Resolution     `json:"resolution,omitempty"`
	Warning         string         `json:"warning,omitempty"`
	DeliveryFee     FeeState       `json:"deliveryFee"`
	Subtotal        float64        `json:"subtotal"`
	SubtotalDisplay string         `json:"subtotalDisplay"`
	Total           float64        `json:"total"`
	TotalDisplay    string         `json:"totalDisplay"`
	ExpiresAt       time.Time      `json:"expiresAt"`
}

// OrderRequest is what the backend receives on order submission.
type OrderRequest struct {
	Items           []CheckoutItem `json:"items"`
	ShippingAddress Address        `json:"shippingAddress"`
	DeliveryFee     float64        `json:"deliveryFee"`
	PaymentMethod   string         `json:"paymentMethod,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// Order is the backend's answer to an order submission.
type Order struct {
	ID          string    `json:"_id"`
	Status      string    `json:"status,omitempty"`
	TotalAmount float64   `json:"totalAmount,omitempty"`
	DeliveryFee float64   `json:"deliveryFee,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// CheckoutEventType names a published checkout event.
type CheckoutEventType string

const (
	CheckoutOrderSubmitted CheckoutEventType = "order_submitted"
)

// CheckoutEvent is published for downstream consumers after checkout milestones.
type CheckoutEvent struct {
	RequestID   string            `json:"request_id,omitempty"`
	Type        CheckoutEventType `json:"type"`
	CheckoutID  string            `json:"checkout_id"`
	OrderID     string            `json:"order_id,omitempty"`
	ItemCount   int               `json:"item_count"`
	Subtotal    float64           `json:"subtotal"`
	DeliveryFee float64           `json:"delivery_fee"`
	FeeSource   FeeSource         `json:"fee_source"`
	City        string            `json:"city,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// TierFee returns the fee of the first tier covering km. Tiers must be
// ordered by UpToKm with the open-ended tier last.
func TierFee(tiers []FeeTier, km float64) (float64, bool) {
	for _, tier := range tiers {
		if tier.UpToKm == 0 || km <= tier.UpToKm {
			return tier.Fee, true
		}
	}

	return 0, false
}
