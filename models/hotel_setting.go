package models

import "time"

// HotelSetting is the single settings row the engine reads: tax rate and
// currency presentation. One row, upserted in place.
type HotelSetting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HotelName     string    `gorm:"size:255" json:"hotelName"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Currency      string    `gorm:"size:8;default:PKR" json:"currency"`
	CurrencyLabel string    `gorm:"size:16;default:Rs" json:"currencyLabel"`
	Locale        string    `gorm:"size:16;default:en-PK" json:"locale"`
	TaxRate       float64   `gorm:"column:tax_rate" json:"taxRate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
