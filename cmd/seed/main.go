package main

import (
	"fmt"
	"log"
	"time"

	"boletera/internal/events"
	"boletera/internal/layouts"
	"boletera/internal/pricing"
	"boletera/internal/shared/config"
	"boletera/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Boletera Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"tickets",
		"orders",
		"price_tiers",
		"event_sessions",
		"events",
		"seats",
		"venue_tables",
		"layout_sections",
		"layout_zones",
		"venue_layouts",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates a demo venue layout, a published event with sessions
// and a price tier hierarchy exercising every resolution scope
func (s *Seeder) SeedAll() error {
	layout, zones, sections, err := s.seedLayout()
	if err != nil {
		return fmt.Errorf("failed to seed layout: %w", err)
	}
	fmt.Printf("   📐 Layout %q created (version %d)\n", layout.Name, layout.Version)

	event, sessions, err := s.seedEvent(layout)
	if err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}
	fmt.Printf("   🎭 Event %q with %d sessions created\n", event.Name, len(sessions))

	tiers, err := s.seedPriceTiers(event, sessions, zones, sections)
	if err != nil {
		return fmt.Errorf("failed to seed price tiers: %w", err)
	}
	fmt.Printf("   💰 %d price tiers created\n", len(tiers))

	return nil
}

// seedLayout creates a small theater: a VIP zone close to the stage, a
// general zone behind it, two polygon sections and a row grid of seats
func (s *Seeder) seedLayout() (*layouts.VenueLayout, []layouts.LayoutZone, []layouts.LayoutSection, error) {
	pg := s.db.GetPostgreSQL()

	layout := &layouts.VenueLayout{
		ID:           uuid.New(),
		VenueID:      uuid.New(),
		Name:         "Teatro Principal",
		Version:      1,
		IsDefault:    true,
		LastEditedBy: "seeder",
	}
	if err := pg.Create(layout).Error; err != nil {
		return nil, nil, nil, err
	}

	zones := []layouts.LayoutZone{
		{
			ID:        uuid.New(),
			LayoutID:  layout.ID,
			Name:      "VIP",
			Color:     "#d4af37",
			BasePrice: 1500,
			Capacity:  40,
		},
		{
			ID:        uuid.New(),
			LayoutID:  layout.ID,
			Name:      "General",
			Color:     "#4a90d9",
			BasePrice: 600,
			Capacity:  120,
		},
	}
	if err := pg.Create(&zones).Error; err != nil {
		return nil, nil, nil, err
	}

	// Two rectangular sections stacked vertically. Seats fall into a
	// section when their canvas position is inside its polygon.
	sections := []layouts.LayoutSection{
		{
			ID:       uuid.New(),
			LayoutID: layout.ID,
			ZoneID:   &zones[0].ID,
			Name:     "Platea VIP",
			Color:    "#d4af37",
			PolygonPoints: layouts.PointList{
				{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 120}, {X: 0, Y: 120},
			},
			LabelX:       200,
			LabelY:       60,
			Capacity:     40,
			DisplayOrder: 1,
			IsActive:     true,
		},
		{
			ID:       uuid.New(),
			LayoutID: layout.ID,
			ZoneID:   &zones[1].ID,
			Name:     "Platea General",
			Color:    "#4a90d9",
			PolygonPoints: layouts.PointList{
				{X: 0, Y: 140}, {X: 400, Y: 140}, {X: 400, Y: 400}, {X: 0, Y: 400},
			},
			LabelX:       200,
			LabelY:       270,
			Capacity:     120,
			DisplayOrder: 2,
			IsActive:     true,
		},
	}
	if err := pg.Create(&sections).Error; err != nil {
		return nil, nil, nil, err
	}

	// Round table whose seats sync together
	table := &layouts.VenueTable{
		ID:        uuid.New(),
		LayoutID:  layout.ID,
		Shape:     "round",
		CenterX:   200,
		CenterY:   60,
		SeatCount: 4,
	}
	if err := pg.Create(table).Error; err != nil {
		return nil, nil, nil, err
	}

	var seats []layouts.Seat

	// VIP rows A-B inside the first polygon
	for row := 0; row < 2; row++ {
		rowLabel := string(rune('A' + row))
		for col := 1; col <= 10; col++ {
			seats = append(seats, layouts.Seat{
				ID:           uuid.New(),
				LayoutID:     layout.ID,
				ZoneID:       &zones[0].ID,
				Label:        fmt.Sprintf("%s%d", rowLabel, col),
				RowLabel:     rowLabel,
				ColumnNumber: col,
				Status:       layouts.SeatStatusAvailable,
				Metadata: layouts.JSONMap{
					"x":        float64(20 + col*35),
					"y":        float64(30 + row*40),
					"seatType": "vip",
				},
			})
		}
	}

	// General rows C-H inside the second polygon
	for row := 0; row < 6; row++ {
		rowLabel := string(rune('C' + row))
		for col := 1; col <= 20; col++ {
			seats = append(seats, layouts.Seat{
				ID:           uuid.New(),
				LayoutID:     layout.ID,
				ZoneID:       &zones[1].ID,
				Label:        fmt.Sprintf("%s%d", rowLabel, col),
				RowLabel:     rowLabel,
				ColumnNumber: col,
				Status:       layouts.SeatStatusAvailable,
				Metadata: layouts.JSONMap{
					"x": float64(10 + col*19),
					"y": float64(160 + row*40),
				},
			})
		}
	}

	// Table seats carry no coordinates; metadata pins their section
	for i := 1; i <= table.SeatCount; i++ {
		seats = append(seats, layouts.Seat{
			ID:           uuid.New(),
			LayoutID:     layout.ID,
			ZoneID:       &zones[0].ID,
			TableID:      &table.ID,
			Label:        fmt.Sprintf("T1-%d", i),
			ColumnNumber: i,
			Status:       layouts.SeatStatusAvailable,
			Metadata: layouts.JSONMap{
				"seatType":  "vip",
				"sectionId": sections[0].ID.String(),
			},
		})
	}

	if err := pg.CreateInBatches(&seats, 100).Error; err != nil {
		return nil, nil, nil, err
	}

	return layout, zones, sections, nil
}

func (s *Seeder) seedEvent(layout *layouts.VenueLayout) (*events.Event, []events.EventSession, error) {
	pg := s.db.GetPostgreSQL()

	event := &events.Event{
		ID:             uuid.New(),
		Name:           "Noche de Ópera",
		Slug:           "noche-de-opera",
		Status:         events.EventStatusPublished,
		EventType:      events.EventTypeSeated,
		VenueID:        layout.VenueID,
		LayoutID:       &layout.ID,
		ServiceFeePct:  0.10,
		ServiceFeeFlat: 25,
	}
	if err := pg.Create(event).Error; err != nil {
		return nil, nil, err
	}

	now := time.Now()
	sessions := []events.EventSession{
		{
			ID:       uuid.New(),
			EventID:  event.ID,
			Title:    "Función de estreno",
			StartsAt: now.AddDate(0, 0, 7).Truncate(time.Hour),
			Status:   events.SessionStatusOnSale,
			Capacity: 164,
		},
		{
			ID:       uuid.New(),
			EventID:  event.ID,
			Title:    "Segunda función",
			StartsAt: now.AddDate(0, 0, 8).Truncate(time.Hour),
			Status:   events.SessionStatusScheduled,
			Capacity: 164,
		},
	}
	if err := pg.Create(&sessions).Error; err != nil {
		return nil, nil, err
	}

	return event, sessions, nil
}

func (s *Seeder) seedPriceTiers(event *events.Event, sessions []events.EventSession, zones []layouts.LayoutZone, sections []layouts.LayoutSection) ([]pricing.PriceTier, error) {
	pg := s.db.GetPostgreSQL()

	tiers := []pricing.PriceTier{
		// Event-wide fallback
		{
			ID:        uuid.New(),
			EventID:   event.ID,
			Label:     "Entrada general",
			Price:     500,
			Fee:       50,
			Currency:  "MXN",
			IsDefault: true,
		},
		// Session default for the premiere
		{
			ID:        uuid.New(),
			EventID:   event.ID,
			SessionID: &sessions[0].ID,
			Label:     "Estreno",
			Price:     700,
			Fee:       70,
			Currency:  "MXN",
		},
		// Zone price beats session default
		{
			ID:       uuid.New(),
			EventID:  event.ID,
			ZoneID:   &zones[0].ID,
			Label:    "Zona VIP",
			Price:    1500,
			Fee:      150,
			Currency: "MXN",
		},
		// Section price beats everything
		{
			ID:        uuid.New(),
			EventID:   event.ID,
			SectionID: &sections[0].ID,
			Label:     "Platea VIP preferente",
			Price:     1800,
			Fee:       180,
			Currency:  "MXN",
		},
	}

	if err := pg.Create(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}
