package pricing

import "github.com/google/uuid"

type CreateTierRequest struct {
	EventID   uuid.UUID  `json:"event_id" binding:"required"`
	SessionID *uuid.UUID `json:"session_id"`
	ZoneID    *uuid.UUID `json:"zone_id"`
	SectionID *uuid.UUID `json:"section_id"`
	SeatType  string     `json:"seat_type"`
	Label     string     `json:"label" binding:"required"`
	Price     float64    `json:"price" binding:"min=0"`
	Fee       float64    `json:"fee" binding:"min=0"`
	Currency  string     `json:"currency" binding:"omitempty,len=3"`
	Capacity  int        `json:"capacity" binding:"min=0"`
	IsDefault bool       `json:"is_default"`
}

type UpdateTierRequest struct {
	Label     *string  `json:"label" binding:"omitempty"`
	Price     *float64 `json:"price" binding:"omitempty,min=0"`
	Fee       *float64 `json:"fee" binding:"omitempty,min=0"`
	Capacity  *int     `json:"capacity" binding:"omitempty,min=0"`
	IsDefault *bool    `json:"is_default"`
}

type QuoteQuery struct {
	SessionID string `form:"session_id" binding:"required,uuid"`
	SectionID string `form:"section_id" binding:"omitempty,uuid"`
	ZoneID    string `form:"zone_id" binding:"omitempty,uuid"`
	SeatType  string `form:"seat_type"`
}
