package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a published show with one or more sessions
type Event struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Slug           string     `gorm:"uniqueIndex;not null" json:"slug"`
	Status         string     `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	EventType      string     `gorm:"type:varchar(20);default:'seated'" json:"event_type"`
	VenueID        uuid.UUID  `gorm:"type:uuid;index" json:"venue_id"`
	LayoutID       *uuid.UUID `gorm:"type:uuid;index" json:"layout_id,omitempty"`
	ServiceFeePct  float64    `gorm:"default:0" json:"service_fee_pct"`
	ServiceFeeFlat float64    `gorm:"default:0" json:"service_fee_flat"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Sessions []EventSession `json:"sessions,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`
}

// EventSession is one performance of an event; tickets sell per session
type EventSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	Status    string    `gorm:"type:varchar(20);default:'SCHEDULED'" json:"status"`
	Capacity  int       `gorm:"default:0" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string        { return "events" }
func (EventSession) TableName() string { return "event_sessions" }

// IsSellable reports whether new reservations may target the session
func (s *EventSession) IsSellable(now time.Time) bool {
	if s.Status != SessionStatusScheduled && s.Status != SessionStatusOnSale {
		return false
	}
	return s.StartsAt.After(now)
}
