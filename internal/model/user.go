package model

import "time"

type AddressType string

const (
	AddressTypeHome    AddressType = "home"
	AddressTypeWork    AddressType = "work"
	AddressTypeHostel  AddressType = "hostel"
	AddressTypeCollege AddressType = "college"
	AddressTypeFriend  AddressType = "friend"
)

type SavedAddress struct {
	ID           string      `json:"id"`
	FullName     string      `json:"fullName"`
	MobileNumber string      `json:"mobileNumber"`
	Pincode      string      `json:"pincode"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	Landmark     string      `json:"landmark,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Type         AddressType `json:"type"`
	IsDefault    bool        `json:"isDefault"`
}

// OrderLine is the snapshot of a cart line taken at order time. It carries its
// own copies of everything so later catalog edits cannot rewrite history.
type OrderLine struct {
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	Price        float64      `json:"price"`
	Image        string       `json:"image,omitempty"`
	Category     string       `json:"category,omitempty"`
	PurchaseType PurchaseType `json:"purchaseType"`
}

// OrderHistoryItem is immutable once created; it is only ever deleted.
type OrderHistoryItem struct {
	ID              string        `json:"id"`
	Date            time.Time     `json:"date"`
	Total           float64       `json:"total"`
	Method          string        `json:"method"`
	Items           []OrderLine   `json:"items"`
	ShippingAddress *SavedAddress `json:"shippingAddress,omitempty"`
	Savings         float64       `json:"savings"`
	Status          string        `json:"status"`
}

type User struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone,omitempty"`
	Address        string             `json:"address,omitempty"`
	OrderHistory   []OrderHistoryItem `json:"orderHistory"`
	SavedAddresses []SavedAddress     `json:"savedAddresses"`
}

// UserRecord is what gets persisted per registered email.
type UserRecord struct {
	PasswordHash string `json:"passwordHash"`
	UserData     User   `json:"userData"`
}

// UserUpdate is a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
