package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"boletera/internal/events"
	"boletera/internal/layouts"
	"boletera/internal/notifications"
	"boletera/internal/orders"
	"boletera/internal/pricing"
	"boletera/pkg/cache"
	"boletera/pkg/logger"

	"github.com/google/uuid"
)

const testHoldTTL = 15 * time.Minute

// fakeRepo overrides only the methods a test drives; anything else panics
// through the embedded nil interface, which would flag an unexpected call.
type fakeRepo struct {
	Repository

	reserveSeats    func(sessionID, holdID uuid.UUID, seats []SeatHold) ([]Ticket, error)
	reserveGeneral  func(sessionID, holdID, tierID uuid.UUID, quantity, capacity int, price float64) ([]Ticket, error)
	confirmTickets  func(input ConfirmInput) (*orders.Order, []Ticket, error)
	cancelHold      func(holdID uuid.UUID) (int, error)
	cleanupExpired  func() (int, error)
	seatTicket      func(sessionID, seatID uuid.UUID) (*Ticket, error)
	liveTickets     func(sessionID uuid.UUID) ([]Ticket, error)
	checkInByCode   func(code string) (*Ticket, error)
	cancelledHolds  []uuid.UUID
	reservedSeated  [][]SeatHold
	reservedGeneral int
}

func (f *fakeRepo) ReserveSeats(ctx context.Context, sessionID, holdID uuid.UUID, seats []SeatHold, holdTTL time.Duration) ([]Ticket, error) {
	f.reservedSeated = append(f.reservedSeated, seats)
	return f.reserveSeats(sessionID, holdID, seats)
}

func (f *fakeRepo) ReserveGeneral(ctx context.Context, sessionID, holdID, tierID uuid.UUID, quantity, capacity int, price, fee float64, currency string, holdTTL time.Duration) ([]Ticket, error) {
	f.reservedGeneral++
	return f.reserveGeneral(sessionID, holdID, tierID, quantity, capacity, price)
}

func (f *fakeRepo) ConfirmTickets(ctx context.Context, input ConfirmInput, holdTTL time.Duration) (*orders.Order, []Ticket, error) {
	return f.confirmTickets(input)
}

func (f *fakeRepo) CancelHold(ctx context.Context, holdID uuid.UUID) (int, error) {
	f.cancelledHolds = append(f.cancelledHolds, holdID)
	if f.cancelHold != nil {
		return f.cancelHold(holdID)
	}
	return 0, nil
}

func (f *fakeRepo) CleanupExpired(ctx context.Context, holdTTL time.Duration) (int, error) {
	return f.cleanupExpired()
}

func (f *fakeRepo) GetSeatTicket(ctx context.Context, sessionID, seatID uuid.UUID) (*Ticket, error) {
	return f.seatTicket(sessionID, seatID)
}

func (f *fakeRepo) GetLiveTicketsForSession(ctx context.Context, sessionID uuid.UUID) ([]Ticket, error) {
	return f.liveTickets(sessionID)
}

func (f *fakeRepo) CheckInByCode(ctx context.Context, code string) (*Ticket, error) {
	return f.checkInByCode(code)
}

type fakeEvents struct {
	events.Repository
	session *events.EventSession
	err     error
}

func (f *fakeEvents) GetSessionByID(ctx context.Context, id uuid.UUID) (*events.EventSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeLayouts struct {
	layouts.Repository
	seats    []layouts.Seat
	sections []layouts.LayoutSection
}

func (f *fakeLayouts) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]layouts.Seat, error) {
	byID := make(map[uuid.UUID]layouts.Seat, len(f.seats))
	for _, s := range f.seats {
		byID[s.ID] = s
	}
	var out []layouts.Seat
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLayouts) GetSections(ctx context.Context, layoutID uuid.UUID) ([]layouts.LayoutSection, error) {
	return f.sections, nil
}

type fakePricing struct {
	pricing.Service
	resolver *pricing.Resolver
}

func (f *fakePricing) ResolverForEvent(ctx context.Context, eventID uuid.UUID) (*pricing.Resolver, error) {
	return f.resolver, nil
}

type fakeCache struct {
	cache.Service
}

func (fakeCache) Delete(ctx context.Context, key string) error { return nil }

func (fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

type capturingProducer struct {
	events []*notifications.TicketEvent
}

func (p *capturingProducer) PublishTicketEvent(ctx context.Context, event *notifications.TicketEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturingProducer) Close() error { return nil }

func sellableSession() *events.EventSession {
	return &events.EventSession{
		ID:       uuid.New(),
		EventID:  uuid.New(),
		StartsAt: time.Now().Add(48 * time.Hour),
		Status:   events.SessionStatusOnSale,
		Capacity: 100,
	}
}

func newTestService(repo Repository, ev events.Repository, lay layouts.Repository, pr pricing.Service, producer notifications.Producer) Service {
	return NewService(repo, ev, lay, nil, pr, producer, fakeCache{}, logger.New(), testHoldTTL, 10, "MXN")
}

func reservedTickets(sessionID uuid.UUID, seats []SeatHold) []Ticket {
	out := make([]Ticket, len(seats))
	now := time.Now().UTC()
	for i, s := range seats {
		seatID := s.SeatID
		out[i] = Ticket{
			ID:        uuid.New(),
			SessionID: sessionID,
			SeatID:    &seatID,
			TierID:    s.TierID,
			Price:     s.Price,
			Fee:       s.Fee,
			Currency:  s.Currency,
			Status:    StatusReserved,
			CreatedAt: now,
		}
	}
	return out
}

func TestReserveRejectsUnsellableSession(t *testing.T) {
	tests := []struct {
		name    string
		session *events.EventSession
		wantErr error
	}{
		{
			name: "session already started",
			session: &events.EventSession{
				ID: uuid.New(), Status: events.SessionStatusOnSale,
				StartsAt: time.Now().Add(-time.Hour),
			},
			wantErr: ErrSessionNotSellable,
		},
		{
			name: "closed session",
			session: &events.EventSession{
				ID: uuid.New(), Status: events.SessionStatusClosed,
				StartsAt: time.Now().Add(time.Hour),
			},
			wantErr: ErrSessionNotSellable,
		},
		{
			name: "cancelled session",
			session: &events.EventSession{
				ID: uuid.New(), Status: events.SessionStatusCancelled,
				StartsAt: time.Now().Add(time.Hour),
			},
			wantErr: ErrSessionNotSellable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeRepo{}, &fakeEvents{session: tt.session}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

			_, err := svc.Reserve(context.Background(), ReserveRequest{
				SessionID: tt.session.ID,
				SeatIDs:   []uuid.UUID{uuid.New()},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReserveRejectsUnknownSession(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{err: events.ErrSessionNotFound}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: uuid.New(),
		SeatIDs:   []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, events.ErrSessionNotFound) {
		t.Errorf("expected session not found, got %v", err)
	}
}

func TestReserveEnforcesMaxSeatsPerOrder(t *testing.T) {
	session := sellableSession()
	svc := newTestService(&fakeRepo{}, &fakeEvents{session: session}, &fakeLayouts{}, &fakePricing{resolver: pricing.NewResolver(nil, "MXN")}, notifications.NewNoopProducer())

	seatIDs := make([]uuid.UUID, 11)
	for i := range seatIDs {
		seatIDs[i] = uuid.New()
	}

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		SeatIDs:   seatIDs,
	})
	if err == nil {
		t.Fatal("expected per-order limit error")
	}
}

func TestReserveSeatedPricesByClassification(t *testing.T) {
	session := sellableSession()

	zoneID := uuid.New()
	section := layouts.LayoutSection{
		ID:       uuid.New(),
		ZoneID:   &zoneID,
		IsActive: true,
		PolygonPoints: layouts.PointList{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
	}
	seat := layouts.Seat{
		ID:       uuid.New(),
		LayoutID: uuid.New(),
		Status:   layouts.SeatStatusAvailable,
		Metadata: layouts.JSONMap{"x": float64(50), "y": float64(50)},
	}

	sectionID := section.ID
	resolver := pricing.NewResolver([]pricing.PriceTier{
		{ID: uuid.New(), SectionID: &sectionID, Price: 1800, Fee: 180, Currency: "MXN"},
	}, "MXN")

	repo := &fakeRepo{
		reserveSeats: func(sessionID, holdID uuid.UUID, seats []SeatHold) ([]Ticket, error) {
			return reservedTickets(sessionID, seats), nil
		},
	}
	svc := newTestService(repo,
		&fakeEvents{session: session},
		&fakeLayouts{seats: []layouts.Seat{seat}, sections: []layouts.LayoutSection{section}},
		&fakePricing{resolver: resolver},
		notifications.NewNoopProducer())

	resp, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		SeatIDs:   []uuid.UUID{seat.ID},
	})
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	if len(repo.reservedSeated) != 1 || len(repo.reservedSeated[0]) != 1 {
		t.Fatalf("expected 1 seat hold passed to repository")
	}
	hold := repo.reservedSeated[0][0]
	if hold.Price != 1800 || hold.Fee != 180 {
		t.Errorf("seat not priced by its section tier: %+v", hold)
	}

	if resp.HoldID == uuid.Nil {
		t.Errorf("reservation must return a hold id")
	}
	wantExpiry := time.Now().Add(testHoldTTL)
	if resp.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || resp.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry not based on hold TTL: %v", resp.ExpiresAt)
	}
	if len(resp.Tickets) != 1 || resp.Tickets[0].Status != StatusReserved {
		t.Errorf("expected 1 RESERVED ticket in response")
	}
}

func TestReserveRejectsBlockedSeat(t *testing.T) {
	session := sellableSession()
	blocked := layouts.Seat{
		ID:       uuid.New(),
		LayoutID: uuid.New(),
		Status:   layouts.SeatStatusBlocked,
	}

	svc := newTestService(&fakeRepo{},
		&fakeEvents{session: session},
		&fakeLayouts{seats: []layouts.Seat{blocked}},
		&fakePricing{resolver: pricing.NewResolver(nil, "MXN")},
		notifications.NewNoopProducer())

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		SeatIDs:   []uuid.UUID{blocked.ID},
	})

	var unavailable *SeatUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if len(unavailable.SeatIDs) != 1 || unavailable.SeatIDs[0] != blocked.ID {
		t.Errorf("error must name the blocked seat")
	}
}

func TestReserveReportsMissingSeats(t *testing.T) {
	session := sellableSession()
	missing := uuid.New()

	svc := newTestService(&fakeRepo{},
		&fakeEvents{session: session},
		&fakeLayouts{},
		&fakePricing{resolver: pricing.NewResolver(nil, "MXN")},
		notifications.NewNoopProducer())

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		SeatIDs:   []uuid.UUID{missing},
	})

	var unavailable *SeatUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if len(unavailable.SeatIDs) != 1 || unavailable.SeatIDs[0] != missing {
		t.Errorf("error must name the missing seat")
	}
}

func TestReserveRollsBackSeatsWhenGeneralAdmissionFails(t *testing.T) {
	session := sellableSession()
	seat := layouts.Seat{
		ID:       uuid.New(),
		LayoutID: uuid.New(),
		Status:   layouts.SeatStatusAvailable,
	}
	tierID := uuid.New()
	resolver := pricing.NewResolver([]pricing.PriceTier{
		{ID: tierID, SessionID: &session.ID, Price: 300, Capacity: 2},
	}, "MXN")

	repo := &fakeRepo{
		reserveSeats: func(sessionID, holdID uuid.UUID, seats []SeatHold) ([]Ticket, error) {
			return reservedTickets(sessionID, seats), nil
		},
		reserveGeneral: func(sessionID, holdID, tID uuid.UUID, quantity, capacity int, price float64) ([]Ticket, error) {
			return nil, &CapacityExceededError{TierID: tID, Requested: quantity, Available: 1}
		},
	}
	svc := newTestService(repo,
		&fakeEvents{session: session},
		&fakeLayouts{seats: []layouts.Seat{seat}},
		&fakePricing{resolver: resolver},
		notifications.NewNoopProducer())

	_, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		SeatIDs:   []uuid.UUID{seat.ID},
		TierID:    &tierID,
		Quantity:  2,
	})

	var capacity *CapacityExceededError
	if !errors.As(err, &capacity) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if len(repo.cancelledHolds) != 1 {
		t.Errorf("seated part of a failed mixed reservation must be released")
	}
}

func TestReserveGeneralUsesTierCapacity(t *testing.T) {
	session := sellableSession()
	tierID := uuid.New()
	resolver := pricing.NewResolver([]pricing.PriceTier{
		{ID: tierID, SessionID: &session.ID, Price: 300, Fee: 30, Capacity: 40},
	}, "MXN")

	var gotCapacity int
	repo := &fakeRepo{
		reserveGeneral: func(sessionID, holdID, tID uuid.UUID, quantity, capacity int, price float64) ([]Ticket, error) {
			gotCapacity = capacity
			tickets := make([]Ticket, quantity)
			for i := range tickets {
				tickets[i] = Ticket{ID: uuid.New(), SessionID: sessionID, TierID: &tID, Status: StatusReserved, CreatedAt: time.Now().UTC()}
			}
			return tickets, nil
		},
	}
	svc := newTestService(repo, &fakeEvents{session: session}, &fakeLayouts{}, &fakePricing{resolver: resolver}, notifications.NewNoopProducer())

	resp, err := svc.Reserve(context.Background(), ReserveRequest{
		SessionID: session.ID,
		TierID:    &tierID,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if gotCapacity != 40 {
		t.Errorf("tier capacity must bound the pool, got %d", gotCapacity)
	}
	if len(resp.Tickets) != 3 {
		t.Errorf("expected 3 tickets, got %d", len(resp.Tickets))
	}
}

func TestConfirmPublishesSoldEvent(t *testing.T) {
	sessionID := uuid.New()
	order := &orders.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-TEST-ABCD",
		BuyerName:   "Ana López",
		BuyerEmail:  "ana@example.com",
		Total:       1980,
		Currency:    "MXN",
		Status:      orders.StatusPaid,
	}
	sold := []Ticket{{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    StatusSold,
		OrderID:   &order.ID,
	}}

	repo := &fakeRepo{
		confirmTickets: func(input ConfirmInput) (*orders.Order, []Ticket, error) {
			if input.Currency != "MXN" {
				t.Errorf("confirm must carry the configured currency, got %q", input.Currency)
			}
			return order, sold, nil
		},
	}
	producer := &capturingProducer{}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, producer)

	resp, err := svc.Confirm(context.Background(), ConfirmRequest{
		TicketIDs:     []uuid.UUID{sold[0].ID},
		BuyerName:     order.BuyerName,
		BuyerEmail:    order.BuyerEmail,
		PaymentMethod: orders.PaymentCard,
	})
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if resp.Order.OrderNumber != order.OrderNumber {
		t.Errorf("order not returned")
	}
	if len(producer.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(producer.events))
	}
	event := producer.events[0]
	if event.Type != notifications.TicketEventSold {
		t.Errorf("expected sold event, got %s", event.Type)
	}
	if event.SessionID != sessionID || len(event.TicketIDs) != 1 {
		t.Errorf("event must reference the sold tickets")
	}
}

func TestConfirmSurfacesExpiredHold(t *testing.T) {
	repo := &fakeRepo{
		confirmTickets: func(input ConfirmInput) (*orders.Order, []Ticket, error) {
			return nil, nil, ErrReservationExpired
		},
	}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

	_, err := svc.Confirm(context.Background(), ConfirmRequest{TicketIDs: []uuid.UUID{uuid.New()}})
	if !errors.Is(err, ErrReservationExpired) {
		t.Errorf("expected ErrReservationExpired, got %v", err)
	}
}

func TestCheckSeatAvailability(t *testing.T) {
	sessionID := uuid.New()
	seatID := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name       string
		ticket     *Ticket
		wantStatus string
		wantExpiry bool
	}{
		{
			name:       "no ticket means available",
			ticket:     nil,
			wantStatus: layouts.SeatStatusAvailable,
		},
		{
			name: "live hold reports reserved with expiry",
			ticket: &Ticket{
				Status:    StatusReserved,
				CreatedAt: now.Add(-time.Minute),
			},
			wantStatus: layouts.SeatStatusReserved,
			wantExpiry: true,
		},
		{
			name: "expired hold reports available",
			ticket: &Ticket{
				Status:    StatusReserved,
				CreatedAt: now.Add(-testHoldTTL - time.Minute),
			},
			wantStatus: layouts.SeatStatusAvailable,
		},
		{
			name:       "sold ticket reports sold",
			ticket:     &Ticket{Status: StatusSold, CreatedAt: now.Add(-time.Hour)},
			wantStatus: layouts.SeatStatusSold,
		},
		{
			name:       "cancelled ticket frees the seat",
			ticket:     &Ticket{Status: StatusCancelled, CreatedAt: now},
			wantStatus: layouts.SeatStatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{
				seatTicket: func(sID, stID uuid.UUID) (*Ticket, error) {
					return tt.ticket, nil
				},
			}
			svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

			info, err := svc.CheckSeatAvailability(context.Background(), sessionID, seatID)
			if err != nil {
				t.Fatalf("CheckSeatAvailability failed: %v", err)
			}
			if info.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", info.Status, tt.wantStatus)
			}
			if tt.wantExpiry && info.ExpiresAt == nil {
				t.Errorf("live hold must expose its expiry")
			}
			if !tt.wantExpiry && info.ExpiresAt != nil {
				t.Errorf("unexpected expiry on %q", info.Status)
			}
		})
	}
}

func TestSeatTicketStatusesFiltersExpiredAndGeneral(t *testing.T) {
	sessionID := uuid.New()
	now := time.Now().UTC()
	liveSeat := uuid.New()
	expiredSeat := uuid.New()
	soldSeat := uuid.New()

	repo := &fakeRepo{
		liveTickets: func(sID uuid.UUID) ([]Ticket, error) {
			return []Ticket{
				{SeatID: &liveSeat, Status: StatusReserved, CreatedAt: now.Add(-time.Minute)},
				{SeatID: &expiredSeat, Status: StatusReserved, CreatedAt: now.Add(-testHoldTTL - time.Minute)},
				{SeatID: &soldSeat, Status: StatusSold, CreatedAt: now.Add(-time.Hour)},
				{SeatID: nil, Status: StatusReserved, CreatedAt: now}, // general admission
			}, nil
		},
	}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

	statuses, err := svc.SeatTicketStatuses(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("SeatTicketStatuses failed: %v", err)
	}

	if len(statuses) != 2 {
		t.Fatalf("expected 2 live seats, got %d", len(statuses))
	}
	if statuses[liveSeat].Status != StatusReserved || statuses[liveSeat].ExpiresAt == nil {
		t.Errorf("live hold missing or without expiry: %+v", statuses[liveSeat])
	}
	if statuses[soldSeat].Status != StatusSold {
		t.Errorf("sold seat missing: %+v", statuses[soldSeat])
	}
	if _, ok := statuses[expiredSeat]; ok {
		t.Errorf("expired hold must not occupy its seat")
	}
}

func TestCleanupExpiredReportsReclaimed(t *testing.T) {
	repo := &fakeRepo{
		cleanupExpired: func() (int, error) { return 7, nil },
	}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

	reclaimed, err := svc.CleanupExpired(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if reclaimed != 7 {
		t.Errorf("expected 7 reclaimed, got %d", reclaimed)
	}
}

func TestCheckInPublishesEvent(t *testing.T) {
	ticket := &Ticket{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		Status:    StatusUsed,
	}
	repo := &fakeRepo{
		checkInByCode: func(code string) (*Ticket, error) {
			if code != "ABCD2345" {
				t.Errorf("unexpected code %q", code)
			}
			return ticket, nil
		},
	}
	producer := &capturingProducer{}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, producer)

	got, err := svc.CheckIn(context.Background(), "ABCD2345")
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if got.Status != StatusUsed {
		t.Errorf("expected USED ticket back")
	}
	if len(producer.events) != 1 || producer.events[0].Type != notifications.TicketEventCheckedIn {
		t.Errorf("check-in event not published")
	}
}

func TestCheckInRejectsReusedCode(t *testing.T) {
	repo := &fakeRepo{
		checkInByCode: func(code string) (*Ticket, error) {
			return nil, ErrTicketAlreadyUsed
		},
	}
	svc := newTestService(repo, &fakeEvents{}, &fakeLayouts{}, &fakePricing{}, notifications.NewNoopProducer())

	if _, err := svc.CheckIn(context.Background(), "ABCD2345"); !errors.Is(err, ErrTicketAlreadyUsed) {
		t.Errorf("expected ErrTicketAlreadyUsed, got %v", err)
	}
}
