package models

import "time"

// Order is a charge line item (room service, laundry, ...). Always additive.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	GuestID uint    `gorm:"column:guest_id;index" json:"guestId"`
	Item    string  `json:"item"`
	Amount  float64 `json:"amount"`
	Date    string  `gorm:"size:10" json:"date"`
	Time    string  `gorm:"size:5" json:"time"`
	Note    string  `gorm:"type:text" json:"note"`
}
