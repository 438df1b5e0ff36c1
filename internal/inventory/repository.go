package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boletera/internal/layouts"
	"boletera/internal/orders"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a SELECT ... FOR UPDATE row lock to the query.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// cancelReservedByIDs flips tickets to CANCELLED only while they are still
// RESERVED, so a ticket sold by a concurrent confirmation is never
// overwritten. Callers compare RowsAffected against what they selected.
func cancelReservedByIDs(tx *gorm.DB, ids []uuid.UUID) *gorm.DB {
	return tx.Model(&Ticket{}).
		Where("id IN ? AND status = ?", ids, StatusReserved).
		Update("status", StatusCancelled)
}

// SeatHold is one seat unit being reserved, priced by the service layer
type SeatHold struct {
	SeatID   uuid.UUID
	TierID   *uuid.UUID
	Price    float64
	Fee      float64
	Currency string
}

// ConfirmInput carries the buyer and payment details for a confirmation
type ConfirmInput struct {
	TicketIDs        []uuid.UUID
	BuyerName        string
	BuyerEmail       string
	BuyerPhone       string
	PaymentMethod    string
	PaymentReference string
	Currency         string
}

// Repository interface for ticket persistence. Every mutating method runs
// as one transaction; the partial unique index on live tickets backstops
// the in-transaction locks, so two racing reservations can never both
// commit for the same seat.
type Repository interface {
	ReserveSeats(ctx context.Context, sessionID, holdID uuid.UUID, seats []SeatHold, holdTTL time.Duration) ([]Ticket, error)
	ReserveGeneral(ctx context.Context, sessionID, holdID, tierID uuid.UUID, quantity, capacity int, price, fee float64, currency string, holdTTL time.Duration) ([]Ticket, error)

	ConfirmTickets(ctx context.Context, input ConfirmInput, holdTTL time.Duration) (*orders.Order, []Ticket, error)
	CancelTickets(ctx context.Context, ticketIDs []uuid.UUID) (int, error)
	CancelHold(ctx context.Context, holdID uuid.UUID) (int, error)

	// AdminAllocate issues zero-price SOLD tickets, force-cancelling live
	// holds on the target seats. Already-SOLD seats make it fail whole.
	AdminAllocate(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID, holderName, holderEmail, currency string, holdTTL time.Duration) (*orders.Order, []Ticket, error)

	CleanupExpired(ctx context.Context, holdTTL time.Duration) (int, error)

	GetTicketsByIDs(ctx context.Context, ids []uuid.UUID) ([]Ticket, error)
	GetTicketsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (*Ticket, error)
	GetSeatTicket(ctx context.Context, sessionID, seatID uuid.UUID) (*Ticket, error)
	GetLiveTicketsForSession(ctx context.Context, sessionID uuid.UUID) ([]Ticket, error)

	CheckInByCode(ctx context.Context, code string) (*Ticket, error)
}

type repository struct {
	db         *gorm.DB
	ordersRepo orders.Repository
}

// NewRepository creates a new inventory repository
func NewRepository(db *gorm.DB, ordersRepo orders.Repository) Repository {
	return &repository{db: db, ordersRepo: ordersRepo}
}

func (r *repository) ReserveSeats(ctx context.Context, sessionID, holdID uuid.UUID, seats []SeatHold, holdTTL time.Duration) ([]Ticket, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-holdTTL)

	seatIDs := make([]uuid.UUID, len(seats))
	for i, s := range seats {
		seatIDs[i] = s.SeatID
	}

	var created []Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reclaim lapsed holds on the target seats so they stop blocking
		if err := tx.Where("session_id = ? AND seat_id IN ? AND status = ? AND created_at <= ?",
			sessionID, seatIDs, StatusReserved, cutoff).
			Delete(&Ticket{}).Error; err != nil {
			return fmt.Errorf("failed to reclaim expired holds: %w", err)
		}

		// Lock whatever live tickets remain on these seats
		var blocking []Ticket
		err := lockForUpdate(tx).
			Where("session_id = ? AND seat_id IN ? AND status IN ?",
				sessionID, seatIDs, []string{StatusReserved, StatusSold}).
			Find(&blocking).Error
		if err != nil {
			return fmt.Errorf("failed to check seat availability: %w", err)
		}

		if len(blocking) > 0 {
			taken := make([]uuid.UUID, 0, len(blocking))
			for _, t := range blocking {
				if t.SeatID != nil {
					taken = append(taken, *t.SeatID)
				}
			}
			return &SeatUnavailableError{SeatIDs: taken}
		}

		created = make([]Ticket, len(seats))
		for i, s := range seats {
			seatID := s.SeatID
			created[i] = Ticket{
				ID:        uuid.New(),
				SessionID: sessionID,
				SeatID:    &seatID,
				TierID:    s.TierID,
				HoldID:    &holdID,
				Price:     s.Price,
				Fee:       s.Fee,
				Currency:  s.Currency,
				Status:    StatusReserved,
			}
		}

		if err := tx.Create(&created).Error; err != nil {
			// The unique index caught a racing insert that slipped past the
			// lock; report it like any other taken seat
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SeatUnavailableError{SeatIDs: seatIDs}
			}
			return fmt.Errorf("failed to create reservation tickets: %w", err)
		}

		return r.updateSeatStatusCache(tx, seatIDs, layouts.SeatStatusReserved)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) ReserveGeneral(ctx context.Context, sessionID, holdID, tierID uuid.UUID, quantity, capacity int, price, fee float64, currency string, holdTTL time.Duration) ([]Ticket, error) {
	cutoff := time.Now().UTC().Add(-holdTTL)

	var created []Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize GA reservations per tier by locking the tier row
		if err := tx.Exec("SELECT id FROM price_tiers WHERE id = ? FOR UPDATE", tierID).Error; err != nil {
			return fmt.Errorf("failed to lock price tier: %w", err)
		}

		if capacity > 0 {
			var taken int64
			err := tx.Model(&Ticket{}).
				Where("session_id = ? AND tier_id = ? AND seat_id IS NULL", sessionID, tierID).
				Where("status = ? OR (status = ? AND created_at > ?)", StatusSold, StatusReserved, cutoff).
				Count(&taken).Error
			if err != nil {
				return fmt.Errorf("failed to count tier tickets: %w", err)
			}

			available := capacity - int(taken)
			if quantity > available {
				return &CapacityExceededError{TierID: tierID, Requested: quantity, Available: available}
			}
		}

		created = make([]Ticket, quantity)
		tier := tierID
		for i := 0; i < quantity; i++ {
			created[i] = Ticket{
				ID:        uuid.New(),
				SessionID: sessionID,
				TierID:    &tier,
				HoldID:    &holdID,
				Price:     price,
				Fee:       fee,
				Currency:  currency,
				Status:    StatusReserved,
			}
		}

		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create reservation tickets: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) ConfirmTickets(ctx context.Context, input ConfirmInput, holdTTL time.Duration) (*orders.Order, []Ticket, error) {
	now := time.Now().UTC()

	var order *orders.Order
	var confirmed []Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tickets []Ticket
		err := lockForUpdate(tx).
			Where("id IN ?", input.TicketIDs).
			Find(&tickets).Error
		if err != nil {
			return fmt.Errorf("failed to lock tickets: %w", err)
		}
		if len(tickets) != len(input.TicketIDs) {
			return ErrTicketNotFound
		}

		// All-or-nothing: a single expired or non-reserved ticket fails the
		// whole confirmation before anything is written
		for i := range tickets {
			if tickets[i].Status != StatusReserved {
				return ErrTicketNotReserved
			}
			if tickets[i].IsExpired(holdTTL, now) {
				return ErrReservationExpired
			}
		}

		var subtotal, fees float64
		currency := input.Currency
		for i := range tickets {
			subtotal += tickets[i].Price
			fees += tickets[i].Fee
			if currency == "" {
				currency = tickets[i].Currency
			}
		}

		orderNumber, err := newOrderNumber()
		if err != nil {
			return err
		}
		order = &orders.Order{
			ID:          uuid.New(),
			OrderNumber: orderNumber,
			BuyerName:   input.BuyerName,
			BuyerEmail:  input.BuyerEmail,
			BuyerPhone:  input.BuyerPhone,
			Subtotal:    subtotal,
			Total:       subtotal + fees,
			Currency:    currency,
			Status:      orders.StatusPending,
		}
		if err := r.ordersRepo.CreateTx(tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		seatIDs := make([]uuid.UUID, 0, len(tickets))
		for i := range tickets {
			code, err := newTicketCode()
			if err != nil {
				return err
			}
			updates := map[string]interface{}{
				"status":       StatusSold,
				"order_id":     order.ID,
				"ticket_code":  code,
				"holder_name":  input.BuyerName,
				"holder_email": input.BuyerEmail,
				"purchased_at": now,
			}
			res := tx.Model(&Ticket{}).
				Where("id = ? AND status = ?", tickets[i].ID, StatusReserved).
				Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("failed to mark ticket sold: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrTicketNotReserved
			}
			if tickets[i].SeatID != nil {
				seatIDs = append(seatIDs, *tickets[i].SeatID)
			}
		}

		if err := r.updateSeatStatusCache(tx, seatIDs, layouts.SeatStatusSold); err != nil {
			return err
		}

		if err := r.ordersRepo.MarkPaidTx(tx, order.ID, input.PaymentMethod, input.PaymentReference); err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}

		return tx.Where("id IN ?", input.TicketIDs).Find(&confirmed).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return order, confirmed, nil
}

func (r *repository) CancelTickets(ctx context.Context, ticketIDs []uuid.UUID) (int, error) {
	var freed int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.cancelReservedTx(tx, tx.Where("id IN ?", ticketIDs), &freed)
	})
	if err != nil {
		return 0, err
	}
	return freed, nil
}

func (r *repository) CancelHold(ctx context.Context, holdID uuid.UUID) (int, error) {
	var freed int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.cancelReservedTx(tx, tx.Where("hold_id = ?", holdID), &freed)
	})
	if err != nil {
		return 0, err
	}
	return freed, nil
}

// cancelReservedTx flips the RESERVED tickets matched by scope to
// CANCELLED and frees their seats. Non-reserved matches are skipped, which
// makes cancellation idempotent.
func (r *repository) cancelReservedTx(tx *gorm.DB, scope *gorm.DB, freed *int) error {
	var tickets []Ticket
	err := lockForUpdate(scope).Where("status = ?", StatusReserved).
		Find(&tickets).Error
	if err != nil {
		return fmt.Errorf("failed to lock reserved tickets: %w", err)
	}
	if len(tickets) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(tickets))
	seatIDs := make([]uuid.UUID, 0, len(tickets))
	for i := range tickets {
		ids[i] = tickets[i].ID
		if tickets[i].SeatID != nil {
			seatIDs = append(seatIDs, *tickets[i].SeatID)
		}
	}

	res := cancelReservedByIDs(tx, ids)
	if res.Error != nil {
		return fmt.Errorf("failed to cancel tickets: %w", res.Error)
	}
	if res.RowsAffected != int64(len(ids)) {
		// A ticket changed state under us; roll back rather than free a
		// seat that may now belong to a paid ticket
		return ErrTicketNotReserved
	}

	*freed = len(ids)
	return r.updateSeatStatusCache(tx, seatIDs, layouts.SeatStatusAvailable)
}

func (r *repository) AdminAllocate(ctx context.Context, sessionID uuid.UUID, seatIDs []uuid.UUID, holderName, holderEmail, currency string, holdTTL time.Duration) (*orders.Order, []Ticket, error) {
	now := time.Now().UTC()

	var order *orders.Order
	var issued []Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []Ticket
		err := lockForUpdate(tx).
			Where("session_id = ? AND seat_id IN ? AND status IN ?",
				sessionID, seatIDs, []string{StatusReserved, StatusSold}).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to lock existing tickets: %w", err)
		}

		// Sold seats belong to paying customers; a courtesy never evicts
		// them. Holds lose to the courtesy and get force-cancelled.
		var sold []uuid.UUID
		var holdsToCancel []uuid.UUID
		for i := range existing {
			switch existing[i].Status {
			case StatusSold:
				if existing[i].SeatID != nil {
					sold = append(sold, *existing[i].SeatID)
				}
			case StatusReserved:
				holdsToCancel = append(holdsToCancel, existing[i].ID)
			}
		}
		if len(sold) > 0 {
			return &SeatUnavailableError{SeatIDs: sold}
		}

		if len(holdsToCancel) > 0 {
			res := cancelReservedByIDs(tx, holdsToCancel)
			if res.Error != nil {
				return fmt.Errorf("failed to cancel displaced holds: %w", res.Error)
			}
			if res.RowsAffected != int64(len(holdsToCancel)) {
				return &SeatUnavailableError{SeatIDs: seatIDs}
			}
		}

		orderNumber, err := newOrderNumber()
		if err != nil {
			return err
		}
		order = &orders.Order{
			ID:            uuid.New(),
			OrderNumber:   orderNumber,
			BuyerName:     holderName,
			BuyerEmail:    holderEmail,
			Currency:      currency,
			Status:        orders.StatusPaid,
			PaymentMethod: orders.PaymentCourtesy,
			PaidAt:        &now,
		}
		if err := r.ordersRepo.CreateTx(tx, order); err != nil {
			return fmt.Errorf("failed to create courtesy order: %w", err)
		}

		issued = make([]Ticket, len(seatIDs))
		for i, seatID := range seatIDs {
			code, err := newTicketCode()
			if err != nil {
				return err
			}
			sid := seatID
			issued[i] = Ticket{
				ID:          uuid.New(),
				SessionID:   sessionID,
				SeatID:      &sid,
				OrderID:     &order.ID,
				Currency:    currency,
				Status:      StatusSold,
				HolderName:  holderName,
				HolderEmail: holderEmail,
				TicketCode:  code,
				PurchasedAt: &now,
			}
		}

		if err := tx.Create(&issued).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SeatUnavailableError{SeatIDs: seatIDs}
			}
			return fmt.Errorf("failed to create courtesy tickets: %w", err)
		}

		return r.updateSeatStatusCache(tx, seatIDs, layouts.SeatStatusSold)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, issued, nil
}

func (r *repository) CleanupExpired(ctx context.Context, holdTTL time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-holdTTL)

	var reclaimed int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expired []Ticket
		err := lockForUpdate(tx).
			Where("status = ? AND created_at <= ?", StatusReserved, cutoff).
			Find(&expired).Error
		if err != nil {
			return fmt.Errorf("failed to find expired holds: %w", err)
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(expired))
		seatIDs := make([]uuid.UUID, 0, len(expired))
		for i := range expired {
			ids[i] = expired[i].ID
			if expired[i].SeatID != nil {
				seatIDs = append(seatIDs, *expired[i].SeatID)
			}
		}

		res := tx.Where("id IN ? AND status = ?", ids, StatusReserved).Delete(&Ticket{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete expired holds: %w", res.Error)
		}

		reclaimed = int(res.RowsAffected)
		return r.updateSeatStatusCache(tx, seatIDs, layouts.SeatStatusAvailable)
	})
	if err != nil {
		return 0, err
	}
	return reclaimed, nil
}

func (r *repository) GetTicketsByIDs(ctx context.Context, ids []uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetTicketsByOrderID(ctx context.Context, orderID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetTicketByCode(ctx context.Context, code string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "ticket_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetSeatTicket(ctx context.Context, sessionID, seatID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND seat_id = ? AND status IN ?",
			sessionID, seatID, []string{StatusReserved, StatusSold}).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetLiveTicketsForSession(ctx context.Context, sessionID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status IN ?", sessionID, []string{StatusReserved, StatusSold}).
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) CheckInByCode(ctx context.Context, code string) (*Ticket, error) {
	now := time.Now().UTC()

	var ticket Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("ticket_code = ?", code).
			First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		switch ticket.Status {
		case StatusUsed:
			return ErrTicketAlreadyUsed
		case StatusSold:
			// fall through to check-in
		default:
			return ErrTicketNotSold
		}

		res := tx.Model(&Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, StatusSold).
			Updates(map[string]interface{}{
				"status":        StatusUsed,
				"checked_in_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to check in ticket: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTicketAlreadyUsed
		}

		ticket.Status = StatusUsed
		ticket.CheckedInAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// updateSeatStatusCache refreshes the display status on seat rows. It is a
// rendering cache only; correctness always comes from the tickets table.
func (r *repository) updateSeatStatusCache(tx *gorm.DB, seatIDs []uuid.UUID, status string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	err := tx.Model(&layouts.Seat{}).
		Where("id IN ? AND status <> ?", seatIDs, layouts.SeatStatusBlocked).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update seat status cache: %w", err)
	}
	return nil
}
