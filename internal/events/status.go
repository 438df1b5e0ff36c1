package events

// Event statuses
const (
	EventStatusDraft     = "DRAFT"
	EventStatusPublished = "PUBLISHED"
	EventStatusArchived  = "ARCHIVED"
)

// Event types
const (
	EventTypeSeated  = "seated"
	EventTypeGeneral = "general"
)

// Session statuses
const (
	SessionStatusScheduled = "SCHEDULED"
	SessionStatusOnSale    = "ON_SALE"
	SessionStatusClosed    = "CLOSED"
	SessionStatusCancelled = "CANCELLED"
)
