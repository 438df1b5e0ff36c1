package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TicketEventType identifies what happened to a ticket
type TicketEventType string

const (
	TicketEventSold      TicketEventType = "ticket.sold"
	TicketEventCancelled TicketEventType = "ticket.cancelled"
	TicketEventCheckedIn TicketEventType = "ticket.checked_in"
	TicketEventCourtesy  TicketEventType = "ticket.courtesy_issued"
)

// TicketEvent is the message published for downstream consumers (email,
// PDF generation, analytics). Delivery of those artifacts is external;
// this service only announces state changes.
type TicketEvent struct {
	ID          uuid.UUID       `json:"id"`
	Type        TicketEventType `json:"type"`
	SessionID   uuid.UUID       `json:"session_id"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	OrderNumber string          `json:"order_number,omitempty"`
	TicketIDs   []uuid.UUID     `json:"ticket_ids"`
	BuyerEmail  string          `json:"buyer_email,omitempty"`
	BuyerName   string          `json:"buyer_name,omitempty"`
	Total       float64         `json:"total,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewTicketEvent builds an event with id and timestamp filled in
func NewTicketEvent(eventType TicketEventType, sessionID uuid.UUID, ticketIDs []uuid.UUID) *TicketEvent {
	return &TicketEvent{
		ID:         uuid.New(),
		Type:       eventType,
		SessionID:  sessionID,
		TicketIDs:  ticketIDs,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of a session to the same partition so
// consumers see them in order
func (e *TicketEvent) PartitionKey() string {
	return e.SessionID.String()
}
