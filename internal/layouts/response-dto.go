package layouts

import (
	"boletera/internal/pricing"

	"github.com/google/uuid"
)

// SectionStatsEntry is the occupancy rollup of one section for a session
type SectionStatsEntry struct {
	SectionID uuid.UUID     `json:"section_id"`
	Name      string        `json:"name"`
	Color     string        `json:"color,omitempty"`
	ZoneID    *uuid.UUID    `json:"zone_id,omitempty"`
	Total     int           `json:"total"`
	Available int           `json:"available"`
	Reserved  int           `json:"reserved"`
	Sold      int           `json:"sold"`
	Blocked   int           `json:"blocked"`
	Price     pricing.Quote `json:"price"`
}

// SectionStatsResponse is the per-section availability view of a session
type SectionStatsResponse struct {
	LayoutID       uuid.UUID           `json:"layout_id"`
	SessionID      uuid.UUID           `json:"session_id"`
	TotalSeats     int                 `json:"total_seats"`
	AvailableSeats int                 `json:"available_seats"`
	ReservedSeats  int                 `json:"reserved_seats"`
	SoldSeats      int                 `json:"sold_seats"`
	BlockedSeats   int                 `json:"blocked_seats"`
	Sections       []SectionStatsEntry `json:"sections"`
}
