package pricing

import (
	"time"

	"github.com/google/uuid"
)

// PriceTier prices some scope of an event's inventory. Scope is encoded by
// which of the optional references are set:
//
//   - SectionID set: prices one section
//   - ZoneID set: prices one zone
//   - SessionID set, no zone/section: session-wide default
//   - nothing set, IsDefault: event-wide default
type PriceTier struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	SessionID *uuid.UUID `gorm:"type:uuid;index" json:"session_id,omitempty"`
	ZoneID    *uuid.UUID `gorm:"type:uuid;index" json:"zone_id,omitempty"`
	SectionID *uuid.UUID `gorm:"type:uuid;index" json:"section_id,omitempty"`
	SeatType  string     `json:"seat_type,omitempty"`
	Label     string     `gorm:"not null" json:"label"`
	Price     float64    `gorm:"not null;default:0" json:"price"`
	Fee       float64    `gorm:"not null;default:0" json:"fee"`
	Currency  string     `gorm:"type:varchar(3)" json:"currency"`
	Capacity  int        `gorm:"default:0" json:"capacity"`
	IsDefault bool       `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (PriceTier) TableName() string {
	return "price_tiers"
}

// Quote is a resolved price for one unit of inventory
type Quote struct {
	Price    float64    `json:"price"`
	Fee      float64    `json:"fee"`
	Currency string     `json:"currency"`
	TierID   *uuid.UUID `json:"tier_id,omitempty"`
}

// SeatContext carries the classification a seat resolved to
type SeatContext struct {
	SessionID uuid.UUID
	SectionID *uuid.UUID
	ZoneID    *uuid.UUID
	SeatType  string
}
