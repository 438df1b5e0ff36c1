package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses. RESERVED and SOLD are the live states that occupy a
// seat; CANCELLED, REFUNDED and USED never block a new sale.
const (
	StatusReserved  = "RESERVED"
	StatusSold      = "SOLD"
	StatusCancelled = "CANCELLED"
	StatusRefunded  = "REFUNDED"
	StatusUsed      = "USED"
)

// Ticket is one unit of inventory for a session. Seated tickets carry a
// SeatID; general-admission tickets carry only a TierID. A RESERVED row is
// a hold: it blocks the seat until confirmed, cancelled or expired.
type Ticket struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	SeatID      *uuid.UUID `gorm:"type:uuid" json:"seat_id,omitempty"`
	TierID      *uuid.UUID `gorm:"type:uuid;index" json:"tier_id,omitempty"`
	HoldID      *uuid.UUID `gorm:"type:uuid;index" json:"hold_id,omitempty"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	Fee         float64    `gorm:"not null;default:0" json:"fee"`
	Currency    string     `gorm:"type:varchar(3)" json:"currency"`
	Status      string     `gorm:"type:varchar(20);not null;default:'RESERVED'" json:"status"`
	HolderName  string     `json:"holder_name,omitempty"`
	HolderEmail string     `gorm:"index" json:"holder_email,omitempty"`
	TicketCode  string     `gorm:"index" json:"ticket_code,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// IsExpired reports whether a RESERVED ticket's hold has run out. Expiry
// is lazy: expired rows stay in the table until a reserve, confirm or the
// cleanup job reclaims them, but they stop blocking the seat immediately.
func (t *Ticket) IsExpired(holdTTL time.Duration, now time.Time) bool {
	return t.Status == StatusReserved && now.Sub(t.CreatedAt) >= holdTTL
}

// ExpiresAt returns when the hold lapses; zero time for non-held tickets
func (t *Ticket) ExpiresAt(holdTTL time.Duration) time.Time {
	if t.Status != StatusReserved {
		return time.Time{}
	}
	return t.CreatedAt.Add(holdTTL)
}

// IsLive reports whether the ticket currently occupies its seat
func (t *Ticket) IsLive(holdTTL time.Duration, now time.Time) bool {
	switch t.Status {
	case StatusSold:
		return true
	case StatusReserved:
		return !t.IsExpired(holdTTL, now)
	default:
		return false
	}
}
