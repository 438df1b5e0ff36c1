package database

import (
	"boletera/internal/events"
	"boletera/internal/inventory"
	"boletera/internal/layouts"
	"boletera/internal/orders"
	"boletera/internal/pricing"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&layouts.VenueLayout{},
		&layouts.LayoutZone{},
		&layouts.LayoutSection{},
		&layouts.Seat{},
		&layouts.VenueTable{},
		&events.Event{},
		&events.EventSession{},
		&pricing.PriceTier{},
		&orders.Order{},
		&inventory.Ticket{},
	)
	if err != nil {
		return err
	}
	return MigrateConstraints(db)
}
