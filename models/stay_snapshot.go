package models

import "time"

// StaySnapshot is the immutable historical record of one completed occupancy,
// written exactly once at checkout. There is no update path; only guest-level
// deletion (or explicit stay deletion) removes it.
type StaySnapshot struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	GuestID   uint    `gorm:"column:guest_id;index" json:"guestId"`
	GuestName string  `gorm:"column:guest_name" json:"guestName"`
	RoomNo    string  `gorm:"column:room_no;size:100" json:"roomNo"`
	Rate      float64 `json:"rate"`
	CheckIn   string  `gorm:"column:check_in;size:10" json:"checkIn"`
	CheckOut  string  `gorm:"column:check_out;size:10" json:"checkOut"`

	// Preview marks a synthesized stay for a guest who is still checked in
	// (check-in through today). Never persisted.
	Preview bool `gorm:"-" json:"preview,omitempty"`
}
