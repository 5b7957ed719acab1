package models

import "time"

// Payment is money received against a guest's bill. Amount must be positive
// at entry; always subtracted from the bill to produce due.
type Payment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	GuestID uint    `gorm:"column:guest_id;index" json:"guestId"`
	Amount  float64 `json:"amount"`
	Method  string  `gorm:"size:40" json:"method"`
	Date    string  `gorm:"size:10" json:"date"`
	Time    string  `gorm:"size:5" json:"time"`
	Ref     string  `gorm:"size:64" json:"ref"`
	Notes   string  `gorm:"type:text" json:"notes"`
}
