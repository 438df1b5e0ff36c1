package pricing

import (
	"github.com/google/uuid"
)

// Resolver answers price lookups for one event from a snapshot of its
// tiers. Listing a seat never fails: an unpriced seat quotes zero, which
// operators notice immediately, instead of breaking the seat map.
type Resolver struct {
	bySection       map[uuid.UUID]*PriceTier
	byZone          map[uuid.UUID]*PriceTier
	bySessionSeat   map[sessionSeatKey]*PriceTier
	sessionDefaults map[uuid.UUID]*PriceTier
	byID            map[uuid.UUID]*PriceTier
	eventDefault    *PriceTier
	currency        string
}

type sessionSeatKey struct {
	sessionID uuid.UUID
	seatType  string
}

// NewResolver builds a resolver from tiers ordered most recently updated
// first. When two tiers claim the same scope, the newest one wins; stale
// duplicates left behind by editors are ignored. An event-level tier acts
// as the event default even without the is_default flag, though a flagged
// one takes precedence.
func NewResolver(tiers []PriceTier, defaultCurrency string) *Resolver {
	r := &Resolver{
		bySection:       map[uuid.UUID]*PriceTier{},
		byZone:          map[uuid.UUID]*PriceTier{},
		bySessionSeat:   map[sessionSeatKey]*PriceTier{},
		sessionDefaults: map[uuid.UUID]*PriceTier{},
		byID:            map[uuid.UUID]*PriceTier{},
		currency:        defaultCurrency,
	}

	for i := range tiers {
		tier := &tiers[i]
		r.byID[tier.ID] = tier

		switch {
		case tier.SectionID != nil:
			if _, dup := r.bySection[*tier.SectionID]; !dup {
				r.bySection[*tier.SectionID] = tier
			}
		case tier.ZoneID != nil:
			if _, dup := r.byZone[*tier.ZoneID]; !dup {
				r.byZone[*tier.ZoneID] = tier
			}
		case tier.SessionID != nil && tier.SeatType != "":
			key := sessionSeatKey{sessionID: *tier.SessionID, seatType: tier.SeatType}
			if _, dup := r.bySessionSeat[key]; !dup {
				r.bySessionSeat[key] = tier
			}
		case tier.SessionID != nil:
			if _, dup := r.sessionDefaults[*tier.SessionID]; !dup {
				r.sessionDefaults[*tier.SessionID] = tier
			}
		case tier.IsDefault:
			// An explicitly flagged default beats any unflagged event tier
			if r.eventDefault == nil || !r.eventDefault.IsDefault {
				r.eventDefault = tier
			}
		default:
			// Unscoped and unflagged still prices the whole event when
			// nothing better exists
			if r.eventDefault == nil {
				r.eventDefault = tier
			}
		}
	}

	return r
}

// ResolveForSeat resolves a quote for a classified seat. Precedence:
// section tier, zone tier, session seat-type tier, session default,
// event default, then a zero quote.
func (r *Resolver) ResolveForSeat(ctx SeatContext) Quote {
	if ctx.SectionID != nil {
		if tier, ok := r.bySection[*ctx.SectionID]; ok {
			return r.quote(tier)
		}
	}
	if ctx.ZoneID != nil {
		if tier, ok := r.byZone[*ctx.ZoneID]; ok {
			return r.quote(tier)
		}
	}
	if ctx.SeatType != "" {
		if tier, ok := r.bySessionSeat[sessionSeatKey{sessionID: ctx.SessionID, seatType: ctx.SeatType}]; ok {
			return r.quote(tier)
		}
	}
	if tier, ok := r.sessionDefaults[ctx.SessionID]; ok {
		return r.quote(tier)
	}
	if r.eventDefault != nil {
		return r.quote(r.eventDefault)
	}
	return Quote{Price: 0, Fee: 0, Currency: r.currency}
}

// ResolveForTier quotes a specific tier, used for general-admission units
// where the buyer picks the tier rather than a seat.
func (r *Resolver) ResolveForTier(tierID uuid.UUID) (Quote, bool) {
	tier, ok := r.byID[tierID]
	if !ok {
		return Quote{Currency: r.currency}, false
	}
	return r.quote(tier), true
}

// Tier returns the raw tier by id
func (r *Resolver) Tier(tierID uuid.UUID) (*PriceTier, bool) {
	tier, ok := r.byID[tierID]
	return tier, ok
}

func (r *Resolver) quote(tier *PriceTier) Quote {
	currency := tier.Currency
	if currency == "" {
		currency = r.currency
	}
	id := tier.ID
	return Quote{
		Price:    tier.Price,
		Fee:      tier.Fee,
		Currency: currency,
		TierID:   &id,
	}
}
