package inventory

import "github.com/google/uuid"

// ReserveRequest opens a hold. Seated requests carry seat IDs; general
// admission carries a tier and a quantity. Both may appear together.
type ReserveRequest struct {
	SessionID uuid.UUID   `json:"session_id" binding:"required"`
	SeatIDs   []uuid.UUID `json:"seat_ids,omitempty"`
	TierID    *uuid.UUID  `json:"tier_id,omitempty"`
	Quantity  int         `json:"quantity,omitempty" binding:"omitempty,min=1"`
}

// ConfirmRequest turns held tickets into a paid order
type ConfirmRequest struct {
	TicketIDs        []uuid.UUID `json:"ticket_ids" binding:"required,min=1"`
	BuyerName        string      `json:"buyer_name" binding:"required"`
	BuyerEmail       string      `json:"buyer_email" binding:"required,email"`
	BuyerPhone       string      `json:"buyer_phone,omitempty"`
	PaymentMethod    string      `json:"payment_method" binding:"required,oneof=cash card transfer courtesy"`
	PaymentReference string      `json:"payment_reference,omitempty"`
}

// CancelRequest releases specific tickets back to the pool
type CancelRequest struct {
	TicketIDs []uuid.UUID `json:"ticket_ids" binding:"required,min=1"`
}

// AdminAllocateRequest issues courtesy tickets, overriding active holds
type AdminAllocateRequest struct {
	SessionID   uuid.UUID   `json:"session_id" binding:"required"`
	SeatIDs     []uuid.UUID `json:"seat_ids" binding:"required,min=1"`
	HolderName  string      `json:"holder_name" binding:"required"`
	HolderEmail string      `json:"holder_email" binding:"omitempty,email"`
}

// CheckInRequest validates a ticket code at the door
type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}
