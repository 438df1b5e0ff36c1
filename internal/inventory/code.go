package inventory

import (
	"boletera/internal/shared/utils/codes"
)

// newTicketCode returns an 8-character redemption code
func newTicketCode() (string, error) {
	return codes.TicketCode()
}

// newOrderNumber returns the order number for a confirmation or courtesy
func newOrderNumber() (string, error) {
	return codes.OrderNumber()
}
