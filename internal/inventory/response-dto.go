package inventory

import (
	"time"

	"boletera/internal/orders"

	"github.com/google/uuid"
)

// TicketResponse is the API shape of a ticket
type TicketResponse struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	SeatID     *uuid.UUID `json:"seat_id,omitempty"`
	TierID     *uuid.UUID `json:"tier_id,omitempty"`
	Status     string     `json:"status"`
	Price      float64    `json:"price"`
	Fee        float64    `json:"fee"`
	Currency   string     `json:"currency"`
	TicketCode string     `json:"ticket_code,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ReservationResponse is returned by a successful reserve call
type ReservationResponse struct {
	HoldID    uuid.UUID        `json:"hold_id"`
	SessionID uuid.UUID        `json:"session_id"`
	ExpiresAt time.Time        `json:"expires_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// ConfirmResponse is returned after a confirm or a courtesy allocation
type ConfirmResponse struct {
	Order   *orders.Order    `json:"order"`
	Tickets []TicketResponse `json:"tickets"`
}

// SeatAvailabilityInfo is the live status of one seat in one session
type SeatAvailabilityInfo struct {
	SeatID    uuid.UUID  `json:"seat_id"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func toTicketResponses(tickets []Ticket, holdTTL time.Duration) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		out[i] = TicketResponse{
			ID:         t.ID,
			SessionID:  t.SessionID,
			SeatID:     t.SeatID,
			TierID:     t.TierID,
			Status:     t.Status,
			Price:      t.Price,
			Fee:        t.Fee,
			Currency:   t.Currency,
			TicketCode: t.TicketCode,
		}
		if t.Status == StatusReserved {
			expires := t.ExpiresAt(holdTTL)
			out[i].ExpiresAt = &expires
		}
	}
	return out
}
