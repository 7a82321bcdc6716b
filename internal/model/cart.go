package model

// PurchaseType distinguishes recurring rental pricing from a one-time purchase.
type PurchaseType string

const (
	PurchaseTypeRent PurchaseType = "rent"
	PurchaseTypeBuy  PurchaseType = "buy"
)

type CartItem struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	Name          string       `json:"name"`
	Image         string       `json:"image,omitempty"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"originalPrice,omitempty"` // list price before discount, used for savings
	Quantity      int          `json:"quantity"`
	PurchaseType  PurchaseType `json:"purchaseType"`
}

// CartState is the full cart snapshot. TotalItems is derived from the lines
// and recomputed on every mutation, never set independently.
type CartState struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
}
