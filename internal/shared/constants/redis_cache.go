package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Boletera application
// Pattern: boletera:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for architectural data
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // 4 hours - for venue layouts
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for sellable sessions
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for section stats rollups
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for price tier lookups
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "boletera"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	CACHE_KEY_EVENTS_LIST   = CACHE_PREFIX + ":events:list"        // + :page:X:limit:Y
	CACHE_KEY_EVENT_DETAIL  = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
	CACHE_KEY_EVENT_SESSION = CACHE_PREFIX + ":events:session:uuid:" // + session-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST    = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_DETAIL  = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_EVENT_SESSION = TTL_SEMI_STATIC_QUICK  // 15 minutes
)

// ================== LAYOUTS MODULE ==================

// Layout Cache Keys
const (
	CACHE_KEY_VENUE_LAYOUT  = CACHE_PREFIX + ":layouts:venue:uuid:"   // + venue-id
	CACHE_KEY_SECTION_STATS = CACHE_PREFIX + ":layouts:stats:session:" // + session-id
)

// Layout Cache TTLs
const (
	TTL_VENUE_LAYOUT  = TTL_SEMI_STATIC_LONG // 4 hours
	TTL_SECTION_STATS = TTL_REALTIME_SHORT   // 30 seconds
)

// ================== PRICING MODULE ==================

// Pricing Cache Keys
const (
	CACHE_KEY_PRICE_TIERS = CACHE_PREFIX + ":pricing:tiers:event:" // + event-id
)

// Pricing Cache TTLs
const (
	TTL_PRICE_TIERS = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== INVENTORY MODULE ==================

// Inventory Cache Keys
const (
	CACHE_KEY_SEAT_MAP     = CACHE_PREFIX + ":inventory:seatmap:session:"     // + session-id
	CACHE_KEY_SEAT_STATUS  = CACHE_PREFIX + ":inventory:seat_status:session:" // + session-id:seat:seat-id
	CACHE_KEY_ORDER_DETAIL = CACHE_PREFIX + ":inventory:order:uuid:"          // + order-id
)

// Inventory Cache TTLs
const (
	TTL_SEAT_MAP     = TTL_REALTIME_SHORT // 30 seconds
	TTL_ORDER_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation
const (
	PATTERN_INVALIDATE_EVENTS_ALL  = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_LAYOUTS_ALL = CACHE_PREFIX + ":layouts:*"
	PATTERN_INVALIDATE_PRICING_ALL = CACHE_PREFIX + ":pricing:*"
	PATTERN_INVALIDATE_SEAT_MAPS   = CACHE_PREFIX + ":inventory:seatmap:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventListKey(page, limit int) string {
	return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildSessionKey(sessionID string) string {
	return CACHE_KEY_EVENT_SESSION + sessionID
}

func BuildVenueLayoutKey(venueID string) string {
	return CACHE_KEY_VENUE_LAYOUT + venueID
}

func BuildSectionStatsKey(sessionID string) string {
	return CACHE_KEY_SECTION_STATS + sessionID
}

func BuildPriceTiersKey(eventID string) string {
	return CACHE_KEY_PRICE_TIERS + eventID
}

func BuildSeatMapKey(sessionID string) string {
	return CACHE_KEY_SEAT_MAP + sessionID
}

func BuildOrderDetailKey(orderID string) string {
	return CACHE_KEY_ORDER_DETAIL + orderID
}
