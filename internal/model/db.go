package model

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string  `gorm:"size:128;not null"`
	Description string  `gorm:"size:512"`
	Category    string  `gorm:"size:64;index"`
	Image       string  `gorm:"size:256"`
	BuyPrice    float64 `gorm:"not null"`
	RentPrice   float64 `gorm:"not null"` // per month
	Currency    string  `gorm:"size:8;not null"`
}

// StorageRecord is one persisted key/value entry of the local store. The value
// is always a JSON blob; the stores never touch this table directly.
type StorageRecord struct {
	Key       string `gorm:"primaryKey;size:64;not null"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
