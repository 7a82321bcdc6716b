package dto

import "medieaze-storefront/internal/model"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AddItemRequest struct {
	ProductID     string             `json:"productId"`
	Name          string             `json:"name"`
	Image         string             `json:"image"`
	Price         float64            `json:"price"`
	OriginalPrice float64            `json:"originalPrice"`
	Quantity      int                `json:"quantity"`
	PurchaseType  model.PurchaseType `json:"purchaseType"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Cart    model.CartState `json:"cart"`
	Message string          `json:"message,omitempty"`
}

type InitiateCheckoutRequest struct {
	FlowID string `json:"flowId"`
}

type InitiateCheckoutResponse struct {
	FlowID         string `json:"flowId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"` // minor units
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

type ConfirmCheckoutRequest struct {
	FlowID          string              `json:"flowId"`
	GatewayOrderID  string              `json:"gatewayOrderId"`
	PaymentID       string              `json:"paymentId"`
	Signature       string              `json:"signature"`
	ShippingAddress *model.SavedAddress `json:"shippingAddress"`
	Total           float64             `json:"total"`
}

type CashOnDeliveryRequest struct {
	FlowID          string              `json:"flowId"`
	ShippingAddress *model.SavedAddress `json:"shippingAddress"`
	Total           float64             `json:"total"`
}

type BulkDeleteOrdersRequest struct {
	OrderIDs []string `json:"orderIds"`
}
