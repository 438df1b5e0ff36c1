package pricing

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolveForSeatPrecedence(t *testing.T) {
	sessionID := uuid.New()
	otherSession := uuid.New()
	zoneID := uuid.New()
	sectionID := uuid.New()

	tiers := []PriceTier{
		{ID: uuid.New(), SectionID: &sectionID, Label: "Section", Price: 1800, Fee: 180},
		{ID: uuid.New(), ZoneID: &zoneID, Label: "Zone", Price: 1500, Fee: 150},
		{ID: uuid.New(), SessionID: &sessionID, SeatType: "vip", Label: "VIP type", Price: 1200, Fee: 120},
		{ID: uuid.New(), SessionID: &sessionID, Label: "Session default", Price: 700, Fee: 70},
		{ID: uuid.New(), IsDefault: true, Label: "Event default", Price: 500, Fee: 50, Currency: "USD"},
	}
	r := NewResolver(tiers, "MXN")

	tests := []struct {
		name      string
		ctx       SeatContext
		wantPrice float64
	}{
		{
			name:      "section beats zone and everything below",
			ctx:       SeatContext{SessionID: sessionID, SectionID: &sectionID, ZoneID: &zoneID, SeatType: "vip"},
			wantPrice: 1800,
		},
		{
			name:      "zone beats session seat type",
			ctx:       SeatContext{SessionID: sessionID, ZoneID: &zoneID, SeatType: "vip"},
			wantPrice: 1500,
		},
		{
			name:      "session seat type beats session default",
			ctx:       SeatContext{SessionID: sessionID, SeatType: "vip"},
			wantPrice: 1200,
		},
		{
			name:      "session default",
			ctx:       SeatContext{SessionID: sessionID, SeatType: "regular"},
			wantPrice: 700,
		},
		{
			name:      "event default for unpriced session",
			ctx:       SeatContext{SessionID: otherSession},
			wantPrice: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveForSeat(tt.ctx)
			if got.Price != tt.wantPrice {
				t.Errorf("price = %v, want %v", got.Price, tt.wantPrice)
			}
			if got.TierID == nil {
				t.Errorf("resolved quote must carry its tier id")
			}
		})
	}
}

func TestResolverUnflaggedEventTierIsDefault(t *testing.T) {
	// A lone event-level tier prices every seat even without is_default
	r := NewResolver([]PriceTier{
		{ID: uuid.New(), Price: 500, Fee: 50},
	}, "MXN")

	got := r.ResolveForSeat(SeatContext{SessionID: uuid.New()})
	if got.Price != 500 || got.Fee != 50 {
		t.Errorf("unflagged event tier must quote, got %+v", got)
	}
	if got.TierID == nil {
		t.Errorf("quote must carry the tier id")
	}
}

func TestResolverFlaggedDefaultBeatsUnflagged(t *testing.T) {
	flagged := PriceTier{ID: uuid.New(), IsDefault: true, Price: 500}
	unflagged := PriceTier{ID: uuid.New(), Price: 900}

	// Even when the unflagged tier is newer, the flagged default wins
	r := NewResolver([]PriceTier{unflagged, flagged}, "MXN")

	got := r.ResolveForSeat(SeatContext{SessionID: uuid.New()})
	if got.Price != 500 {
		t.Errorf("flagged default must win, got price %v", got.Price)
	}
}

func TestResolveForSeatZeroQuote(t *testing.T) {
	r := NewResolver(nil, "MXN")

	got := r.ResolveForSeat(SeatContext{SessionID: uuid.New()})
	if got.Price != 0 || got.Fee != 0 {
		t.Errorf("unpriced seat must quote zero, got %+v", got)
	}
	if got.Currency != "MXN" {
		t.Errorf("zero quote must carry the default currency, got %q", got.Currency)
	}
	if got.TierID != nil {
		t.Errorf("zero quote has no tier")
	}
}

func TestResolverCurrencyFallback(t *testing.T) {
	sessionID := uuid.New()
	r := NewResolver([]PriceTier{
		{ID: uuid.New(), SessionID: &sessionID, Price: 700},
	}, "MXN")

	got := r.ResolveForSeat(SeatContext{SessionID: sessionID})
	if got.Currency != "MXN" {
		t.Errorf("tier without currency must inherit the default, got %q", got.Currency)
	}
}

func TestNewResolverNewestTierWinsScope(t *testing.T) {
	zoneID := uuid.New()
	newest := PriceTier{ID: uuid.New(), ZoneID: &zoneID, Price: 900}
	stale := PriceTier{ID: uuid.New(), ZoneID: &zoneID, Price: 100}

	// Tiers arrive ordered most recently updated first
	r := NewResolver([]PriceTier{newest, stale}, "MXN")

	got := r.ResolveForSeat(SeatContext{SessionID: uuid.New(), ZoneID: &zoneID})
	if got.Price != 900 {
		t.Errorf("expected newest tier to win the zone scope, got price %v", got.Price)
	}

	// Both stay addressable by id for general admission
	if _, ok := r.ResolveForTier(stale.ID); !ok {
		t.Errorf("stale tier must remain resolvable by id")
	}
}

func TestResolveForTierUnknown(t *testing.T) {
	r := NewResolver(nil, "MXN")
	if _, ok := r.ResolveForTier(uuid.New()); ok {
		t.Errorf("unknown tier must not resolve")
	}
}
