package models

import "time"

// PreferredRate is a staff-set suggested nightly rate keyed by identity
// ("nid:<digits>" or "phone:<digits>"). Advisory only, never auto-applied.
type PreferredRate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IdentityKey string    `gorm:"column:identity_key;uniqueIndex;size:80" json:"identityKey"`
	Rate        float64   `json:"rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
