package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotSellable is returned when the target session is closed,
	// cancelled or already started
	ErrSessionNotSellable = errors.New("session is not open for sale")

	// ErrReservationExpired is returned by Confirm when a hold lapsed
	// before payment completed
	ErrReservationExpired = errors.New("reservation has expired")

	// ErrTicketNotReserved is returned by Confirm when a ticket is not in
	// RESERVED state
	ErrTicketNotReserved = errors.New("ticket is not reserved")

	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketNotSold     = errors.New("ticket is not sold")
	ErrTicketAlreadyUsed = errors.New("ticket has already been used")
)

// SeatUnavailableError reports which seats blocked a reservation or
// courtesy allocation. Callers surface the ids so buyers can retry with
// different seats.
type SeatUnavailableError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatUnavailableError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(ids, ", "))
}

// CapacityExceededError reports a general-admission request that exceeds
// the remaining capacity of its tier
type CapacityExceededError struct {
	TierID    uuid.UUID
	Requested int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded for tier %s: requested %d, available %d",
		e.TierID, e.Requested, e.Available)
}
