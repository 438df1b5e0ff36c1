package inventory

import (
	"context"
	"fmt"
	"time"

	"boletera/internal/events"
	"boletera/internal/layouts"
	"boletera/internal/notifications"
	"boletera/internal/orders"
	"boletera/internal/pricing"
	"boletera/internal/shared/constants"
	"boletera/pkg/cache"
	"boletera/pkg/logger"

	"github.com/google/uuid"
)

// Service interface for reservation and ticket lifecycle operations
type Service interface {
	Reserve(ctx context.Context, req ReserveRequest) (*ReservationResponse, error)
	Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error)
	Cancel(ctx context.Context, ticketIDs []uuid.UUID) (int, error)
	CancelHold(ctx context.Context, holdID uuid.UUID) (int, error)
	AdminAllocate(ctx context.Context, req AdminAllocateRequest) (*ConfirmResponse, error)
	CleanupExpired(ctx context.Context) (int, error)
	CheckSeatAvailability(ctx context.Context, sessionID, seatID uuid.UUID) (*SeatAvailabilityInfo, error)
	SessionSeatStatus(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]layouts.SeatTicketStatus, error)
	CheckIn(ctx context.Context, code string) (*Ticket, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.Order, []Ticket, error)

	// SeatTicketStatuses implements layouts.TicketSource for section stats
	SeatTicketStatuses(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]layouts.SeatTicketStatus, error)
}

type service struct {
	repo        Repository
	events      events.Repository
	layouts     layouts.Repository
	orders      orders.Repository
	pricing     pricing.Service
	producer    notifications.Producer
	cache       cache.Service
	logger      *logger.Logger
	holdTTL     time.Duration
	maxPerOrder int
	currency    string
}

// NewService creates a new inventory service
func NewService(repo Repository, eventsRepo events.Repository, layoutsRepo layouts.Repository, ordersRepo orders.Repository, pricingService pricing.Service, producer notifications.Producer, cacheService cache.Service, log *logger.Logger, holdTTL time.Duration, maxPerOrder int, currency string) Service {
	return &service{
		repo:        repo,
		events:      eventsRepo,
		layouts:     layoutsRepo,
		orders:      ordersRepo,
		pricing:     pricingService,
		producer:    producer,
		cache:       cacheService,
		logger:      log,
		holdTTL:     holdTTL,
		maxPerOrder: maxPerOrder,
		currency:    currency,
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*ReservationResponse, error) {
	now := time.Now().UTC()

	session, err := s.events.GetSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsSellable(now) {
		return nil, ErrSessionNotSellable
	}

	units := len(req.SeatIDs) + req.Quantity
	if units == 0 {
		return nil, fmt.Errorf("nothing to reserve")
	}
	if units > s.maxPerOrder {
		return nil, fmt.Errorf("cannot reserve more than %d tickets per order", s.maxPerOrder)
	}

	resolver, err := s.pricing.ResolverForEvent(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	holdID := uuid.New()
	var tickets []Ticket

	if len(req.SeatIDs) > 0 {
		holds, err := s.priceSeats(ctx, session, resolver, req.SeatIDs)
		if err != nil {
			return nil, err
		}

		tickets, err = s.repo.ReserveSeats(ctx, session.ID, holdID, holds, s.holdTTL)
		if err != nil {
			return nil, err
		}
	}

	if req.Quantity > 0 {
		if req.TierID == nil {
			if len(tickets) > 0 {
				_, _ = s.repo.CancelHold(ctx, holdID)
			}
			return nil, fmt.Errorf("tier_id is required for general admission quantities")
		}

		quote, ok := resolver.ResolveForTier(*req.TierID)
		if !ok {
			if len(tickets) > 0 {
				_, _ = s.repo.CancelHold(ctx, holdID)
			}
			return nil, pricing.ErrTierNotFound
		}

		capacity := session.Capacity
		if tier, ok := resolver.Tier(*req.TierID); ok && tier.Capacity > 0 {
			capacity = tier.Capacity
		}

		gaTickets, err := s.repo.ReserveGeneral(ctx, session.ID, holdID, *req.TierID,
			req.Quantity, capacity, quote.Price, quote.Fee, quote.Currency, s.holdTTL)
		if err != nil {
			// All-or-nothing across the whole request: roll the seated part
			// back when the general-admission part loses
			if len(tickets) > 0 {
				_, _ = s.repo.CancelHold(ctx, holdID)
			}
			return nil, err
		}
		tickets = append(tickets, gaTickets...)
	}

	s.invalidateSeatMap(ctx, session.ID)
	s.logger.LogReservationCreated(ctx, holdID.String(), session.ID.String(), len(tickets))

	return &ReservationResponse{
		HoldID:    holdID,
		SessionID: session.ID,
		ExpiresAt: now.Add(s.holdTTL),
		Tickets:   toTicketResponses(tickets, s.holdTTL),
	}, nil
}

// priceSeats loads, validates and prices the requested seats
func (s *service) priceSeats(ctx context.Context, session *events.EventSession, resolver *pricing.Resolver, seatIDs []uuid.UUID) ([]SeatHold, error) {
	seats, err := s.layouts.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		found := make(map[uuid.UUID]bool, len(seats))
		for i := range seats {
			found[seats[i].ID] = true
		}
		var missing []uuid.UUID
		for _, id := range seatIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, &SeatUnavailableError{SeatIDs: missing}
	}

	var blocked []uuid.UUID
	for i := range seats {
		if seats[i].Status == layouts.SeatStatusBlocked {
			blocked = append(blocked, seats[i].ID)
		}
	}
	if len(blocked) > 0 {
		return nil, &SeatUnavailableError{SeatIDs: blocked}
	}

	sections, err := s.layouts.GetSections(ctx, seats[0].LayoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout sections: %w", err)
	}

	holds := make([]SeatHold, len(seats))
	for i := range seats {
		seatCtx := pricing.SeatContext{
			SessionID: session.ID,
			ZoneID:    seats[i].ZoneID,
			SeatType:  seats[i].SeatType(),
		}
		if section := layouts.ClassifySeat(&seats[i], sections); section != nil {
			seatCtx.SectionID = &section.ID
			if seatCtx.ZoneID == nil {
				seatCtx.ZoneID = section.ZoneID
			}
		}
		quote := resolver.ResolveForSeat(seatCtx)
		holds[i] = SeatHold{
			SeatID:   seats[i].ID,
			TierID:   quote.TierID,
			Price:    quote.Price,
			Fee:      quote.Fee,
			Currency: quote.Currency,
		}
	}
	return holds, nil
}

func (s *service) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error) {
	input := ConfirmInput{
		TicketIDs:        req.TicketIDs,
		BuyerName:        req.BuyerName,
		BuyerEmail:       req.BuyerEmail,
		BuyerPhone:       req.BuyerPhone,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Currency:         s.currency,
	}

	order, tickets, err := s.repo.ConfirmTickets(ctx, input, s.holdTTL)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.Nil
	if len(tickets) > 0 {
		sessionID = tickets[0].SessionID
	}

	s.invalidateSeatMap(ctx, sessionID)
	s.logger.LogReservationConfirmed(ctx, order.ID.String(), sessionID.String(), len(tickets))

	event := notifications.NewTicketEvent(notifications.TicketEventSold, sessionID, ticketIDs(tickets))
	event.OrderID = &order.ID
	event.OrderNumber = order.OrderNumber
	event.BuyerEmail = order.BuyerEmail
	event.BuyerName = order.BuyerName
	event.Total = order.Total
	event.Currency = order.Currency
	if err := s.producer.PublishTicketEvent(ctx, event); err != nil {
		// The sale is already committed; losing the event must not fail it
		s.logger.ErrorWithContext(ctx, "failed to publish ticket sold event", err, map[string]interface{}{
			"order_id": order.ID.String(),
		})
	}

	return &ConfirmResponse{
		Order:   order,
		Tickets: toTicketResponses(tickets, s.holdTTL),
	}, nil
}

func (s *service) Cancel(ctx context.Context, ticketIDs []uuid.UUID) (int, error) {
	freed, err := s.repo.CancelTickets(ctx, ticketIDs)
	if err != nil {
		return 0, err
	}
	if freed > 0 {
		s.logger.LogReservationCancelled(ctx, "", "", freed)
	}
	return freed, nil
}

func (s *service) CancelHold(ctx context.Context, holdID uuid.UUID) (int, error) {
	freed, err := s.repo.CancelHold(ctx, holdID)
	if err != nil {
		return 0, err
	}
	if freed > 0 {
		s.logger.LogReservationCancelled(ctx, holdID.String(), "", freed)
	}
	return freed, nil
}

func (s *service) AdminAllocate(ctx context.Context, req AdminAllocateRequest) (*ConfirmResponse, error) {
	session, err := s.events.GetSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	order, tickets, err := s.repo.AdminAllocate(ctx, session.ID, req.SeatIDs,
		req.HolderName, req.HolderEmail, s.currency, s.holdTTL)
	if err != nil {
		return nil, err
	}

	s.invalidateSeatMap(ctx, session.ID)

	event := notifications.NewTicketEvent(notifications.TicketEventCourtesy, session.ID, ticketIDs(tickets))
	event.OrderID = &order.ID
	event.OrderNumber = order.OrderNumber
	event.BuyerEmail = order.BuyerEmail
	event.BuyerName = order.BuyerName
	if err := s.producer.PublishTicketEvent(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish courtesy event", err, map[string]interface{}{
			"order_id": order.ID.String(),
		})
	}

	return &ConfirmResponse{
		Order:   order,
		Tickets: toTicketResponses(tickets, s.holdTTL),
	}, nil
}

func (s *service) CleanupExpired(ctx context.Context) (int, error) {
	start := time.Now()
	reclaimed, err := s.repo.CleanupExpired(ctx, s.holdTTL)
	if err != nil {
		return 0, err
	}
	if reclaimed > 0 {
		_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEAT_MAPS)
		s.logger.LogCleanupRun(ctx, reclaimed, time.Since(start))
	}
	return reclaimed, nil
}

func (s *service) CheckSeatAvailability(ctx context.Context, sessionID, seatID uuid.UUID) (*SeatAvailabilityInfo, error) {
	ticket, err := s.repo.GetSeatTicket(ctx, sessionID, seatID)
	if err != nil {
		return nil, err
	}

	info := &SeatAvailabilityInfo{SeatID: seatID, Status: layouts.SeatStatusAvailable}
	if ticket == nil {
		return info, nil
	}

	now := time.Now().UTC()
	switch {
	case ticket.Status == StatusSold:
		info.Status = layouts.SeatStatusSold
	case ticket.Status == StatusReserved && !ticket.IsExpired(s.holdTTL, now):
		expires := ticket.ExpiresAt(s.holdTTL)
		info.Status = layouts.SeatStatusReserved
		info.ExpiresAt = &expires
	}
	return info, nil
}

func (s *service) SessionSeatStatus(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]layouts.SeatTicketStatus, error) {
	return s.SeatTicketStatuses(ctx, sessionID)
}

func (s *service) SeatTicketStatuses(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]layouts.SeatTicketStatus, error) {
	tickets, err := s.repo.GetLiveTicketsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	statuses := make(map[uuid.UUID]layouts.SeatTicketStatus, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		if t.SeatID == nil || !t.IsLive(s.holdTTL, now) {
			continue
		}
		status := layouts.SeatTicketStatus{Status: t.Status}
		if t.Status == StatusReserved {
			expires := t.ExpiresAt(s.holdTTL)
			status.ExpiresAt = &expires
		}
		statuses[*t.SeatID] = status
	}
	return statuses, nil
}

func (s *service) CheckIn(ctx context.Context, code string) (*Ticket, error) {
	ticket, err := s.repo.CheckInByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.logger.LogCheckIn(ctx, ticket.ID.String(), ticket.SessionID.String())

	event := notifications.NewTicketEvent(notifications.TicketEventCheckedIn, ticket.SessionID, []uuid.UUID{ticket.ID})
	event.OrderID = ticket.OrderID
	if err := s.producer.PublishTicketEvent(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish check-in event", err, map[string]interface{}{
			"ticket_id": ticket.ID.String(),
		})
	}

	return ticket, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.Order, []Ticket, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	tickets, err := s.repo.GetTicketsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, tickets, nil
}

func (s *service) invalidateSeatMap(ctx context.Context, sessionID uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.BuildSeatMapKey(sessionID.String()))
	_ = s.cache.Delete(ctx, constants.BuildSectionStatsKey(sessionID.String()))
}

func ticketIDs(tickets []Ticket) []uuid.UUID {
	ids := make([]uuid.UUID, len(tickets))
	for i := range tickets {
		ids[i] = tickets[i].ID
	}
	return ids
}
