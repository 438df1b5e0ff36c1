package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one live ticket per seat per session. RESERVED and SOLD rows
	// block the slot; CANCELLED, REFUNDED and USED rows do not. Inserts that
	// violate this index surface as gorm.ErrDuplicatedKey, which is how
	// concurrent reservations lose the race instead of double selling.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_ticket_per_seat
		ON tickets (session_id, seat_id)
		WHERE status IN ('RESERVED', 'SOLD') AND seat_id IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Ticket lookups by session drive seat maps and section stats
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_session_status
		ON tickets (session_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Expired-hold sweeps scan RESERVED tickets by creation time
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_reserved_created
		ON tickets (created_at)
		WHERE status = 'RESERVED';
	`).Error
	if err != nil {
		return err
	}

	// Order views load all tickets in an order
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_order_id
		ON tickets (order_id);
	`).Error
	if err != nil {
		return err
	}

	// Seat queries are always scoped to a layout
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_layout_id
		ON seats (layout_id);
	`).Error
	if err != nil {
		return err
	}

	// Price resolution loads every tier of an event at once
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_price_tiers_event_id
		ON price_tiers (event_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
