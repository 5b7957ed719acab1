package models

import "time"

// CustomItem is a signed adjustment outside standard room/order billing:
// positive = extra charge, negative = credit/waiver.
type CustomItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	GuestID     uint    `gorm:"column:guest_id;index" json:"guestId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `gorm:"size:10" json:"date"`
	Time        string  `gorm:"size:5" json:"time"`
	Note        string  `gorm:"type:text" json:"note"`
}
