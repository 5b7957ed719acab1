package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Guest lifecycle statuses. A guest record is one check-in/arrival instance;
// the same person may have many records over time.
const (
	StatusArrival    = "arrival"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
)

// MaxAttachmentSize caps the attachment payload at 1 MiB.
const MaxAttachmentSize = 1 << 20

// Attachment describes an optional file kept with a guest record
// (scanned ID card, registration form, ...). Stored as a JSON column.
type Attachment struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	DataURL string `json:"dataURL"`
}

type Guest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name       string `json:"name"`
	FatherName string `gorm:"column:father_name" json:"fatherName"`
	NationalID string `gorm:"column:national_id;size:64;index" json:"nationalId"`
	Phone      string `gorm:"size:32;index" json:"phone"`
	Address    string `gorm:"type:text" json:"address"`
	Company    string `json:"company"`
	Persons    int    `gorm:"default:1" json:"persons"`

	// Engine dates are canonical YYYY-MM-DD strings, times HH:MM.
	CheckInDate  string `gorm:"size:10" json:"checkInDate"`
	CheckInTime  string `gorm:"size:5" json:"checkInTime"`
	CheckOutDate string `gorm:"size:10" json:"checkOutDate"`
	CheckOutTime string `gorm:"size:5" json:"checkOutTime"`

	// RoomNo is the slash-joined set of held room numbers, e.g. "101/102".
	RoomNo          string  `gorm:"column:room_no;size:100" json:"roomNo"`
	RoomRent        float64 `gorm:"column:room_rent" json:"roomRent"`
	HalfNight       bool    `gorm:"column:half_night" json:"halfNight"`
	DiscountPercent float64 `gorm:"column:discount_percent" json:"discountPercent"`
	DiscountFlat    float64 `gorm:"column:discount_flat" json:"discountFlat"`

	Status     string `gorm:"size:20;default:checked-in;index" json:"status"`
	CheckedOut bool   `gorm:"column:checked_out" json:"checkedOut"`

	Attachment datatypes.JSON `json:"attachment,omitempty"`
}

// IsLive reports whether the record still occupies (or may occupy) a room.
func (g *Guest) IsLive() bool {
	return !g.CheckedOut && g.Status != StatusCheckedOut
}

// Rooms returns the individual room numbers behind the slash-joined RoomNo.
func (g *Guest) Rooms() []string {
	if strings.TrimSpace(g.RoomNo) == "" {
		return nil
	}
	parts := strings.Split(g.RoomNo, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RoomMultiplier is the number of rooms the guest holds; multi-room stays
// scale the room charge by this factor on multi-room screens.
func (g *Guest) RoomMultiplier() int {
	return len(g.Rooms())
}

// AttachmentMeta decodes the attachment column. Returns nil when absent.
func (g *Guest) AttachmentMeta() *Attachment {
	if len(g.Attachment) == 0 {
		return nil
	}
	var a Attachment
	if err := json.Unmarshal(g.Attachment, &a); err != nil {
		return nil
	}
	if a.Name == "" && a.DataURL == "" {
		return nil
	}
	return &a
}

// SetAttachment encodes the descriptor into the JSON column. Passing nil clears it.
func (g *Guest) SetAttachment(a *Attachment) error {
	if a == nil {
		g.Attachment = nil
		return nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	g.Attachment = datatypes.JSON(raw)
	return nil
}
