package models

import (
	"gorm.io/gorm"
)

// Room occupancy states.
const (
	RoomVacant   = "vacant"
	RoomOccupied = "occupied"
)

type Room struct {
	gorm.Model

	Number string  `json:"number" gorm:"column:number;uniqueIndex;type:varchar(50)"`
	Rate   float64 `json:"rate"`

	// Occupied is true iff GuestID points at a live (non-checked-out) guest.
	Occupied bool   `json:"occupied"`
	Status   string `json:"status" gorm:"size:20;default:vacant"`
	GuestID  *uint  `json:"guestId,omitempty" gorm:"column:guest_id;index"`
}
