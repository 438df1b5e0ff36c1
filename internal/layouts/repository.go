package layouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for layout operations
type Repository interface {
	CreateLayout(ctx context.Context, layout *VenueLayout) error
	GetLayoutByID(ctx context.Context, id uuid.UUID) (*VenueLayout, error)
	GetDefaultLayoutForVenue(ctx context.Context, venueID uuid.UUID) (*VenueLayout, error)
	GetSections(ctx context.Context, layoutID uuid.UUID) ([]LayoutSection, error)
	GetSeats(ctx context.Context, layoutID uuid.UUID) ([]Seat, error)
	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error)

	// GetProtection collects the live state a sync must preserve: seats
	// holding an unexpired RESERVED or a SOLD ticket, and zones/sections
	// referenced by price tiers.
	GetProtection(ctx context.Context, layoutID uuid.UUID, holdTTL time.Duration) (Protection, error)

	// ApplySyncPlan executes a plan as one transaction and bumps the layout
	// version. When expectedVersion >= 0 the bump is conditional on it and a
	// mismatch returns ErrLayoutNotFound-free rows (surfaced as a conflict by
	// the service); pass -1 to force.
	ApplySyncPlan(ctx context.Context, layoutID uuid.UUID, expectedVersion int, name, editedBy string, plan *SyncPlan) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new layout repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLayout(ctx context.Context, layout *VenueLayout) error {
	return r.db.WithContext(ctx).Create(layout).Error
}

func (r *repository) GetLayoutByID(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	var layout VenueLayout
	err := r.db.WithContext(ctx).
		Preload("Zones").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_label ASC, column_number ASC")
		}).
		Preload("Tables").
		First(&layout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetDefaultLayoutForVenue(ctx context.Context, venueID uuid.UUID) (*VenueLayout, error) {
	var layout VenueLayout
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND is_default = true", venueID).
		Order("updated_at DESC").
		First(&layout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetSections(ctx context.Context, layoutID uuid.UUID) ([]LayoutSection, error) {
	var sections []LayoutSection
	err := r.db.WithContext(ctx).
		Where("layout_id = ?", layoutID).
		Order("display_order ASC, name ASC").
		Find(&sections).Error
	return sections, err
}

func (r *repository) GetSeats(ctx context.Context, layoutID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("layout_id = ?", layoutID).
		Order("row_label ASC, column_number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&seats).Error
	return seats, err
}

func (r *repository) GetProtection(ctx context.Context, layoutID uuid.UUID, holdTTL time.Duration) (Protection, error) {
	prot := Protection{
		SeatIDs:    map[uuid.UUID]bool{},
		ZoneIDs:    map[uuid.UUID]bool{},
		SectionIDs: map[uuid.UUID]bool{},
	}

	holdCutoff := time.Now().UTC().Add(-holdTTL)

	// Seats pinned by live tickets. Expired holds do not protect.
	var seatIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("tickets t").
		Joins("JOIN seats s ON s.id = t.seat_id").
		Where("s.layout_id = ?", layoutID).
		Where("t.status = 'SOLD' OR (t.status = 'RESERVED' AND t.created_at > ?)", holdCutoff).
		Distinct("t.seat_id").
		Find(&seatIDs).Error
	if err != nil {
		return prot, fmt.Errorf("failed to query protected seats: %w", err)
	}
	for _, id := range seatIDs {
		prot.SeatIDs[id] = true
	}

	// Zones referenced by price tiers
	var zoneIDs []uuid.UUID
	err = r.db.WithContext(ctx).
		Table("price_tiers pt").
		Joins("JOIN layout_zones z ON z.id = pt.zone_id").
		Where("z.layout_id = ?", layoutID).
		Distinct("pt.zone_id").
		Find(&zoneIDs).Error
	if err != nil {
		return prot, fmt.Errorf("failed to query tier-referenced zones: %w", err)
	}
	for _, id := range zoneIDs {
		prot.ZoneIDs[id] = true
	}

	// Sections referenced by price tiers
	var sectionIDs []uuid.UUID
	err = r.db.WithContext(ctx).
		Table("price_tiers pt").
		Joins("JOIN layout_sections sec ON sec.id = pt.section_id").
		Where("sec.layout_id = ?", layoutID).
		Distinct("pt.section_id").
		Find(&sectionIDs).Error
	if err != nil {
		return prot, fmt.Errorf("failed to query tier-referenced sections: %w", err)
	}
	for _, id := range sectionIDs {
		prot.SectionIDs[id] = true
	}

	return prot, nil
}

func (r *repository) ApplySyncPlan(ctx context.Context, layoutID uuid.UUID, expectedVersion int, name, editedBy string, plan *SyncPlan) (int, error) {
	var newVersion int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Bump the version first; the optimistic predicate makes two
		// concurrent syncs serialize, the loser sees zero rows.
		updates := map[string]interface{}{
			"version":        gorm.Expr("version + 1"),
			"last_edited_by": editedBy,
		}
		if name != "" {
			updates["name"] = name
		}

		bump := tx.Model(&VenueLayout{}).Where("id = ?", layoutID)
		if expectedVersion >= 0 {
			bump = bump.Where("version = ?", expectedVersion)
		}
		result := bump.Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Deletes before creates so freed labels can be reused in one sync
		if len(plan.SeatIDsToDelete) > 0 {
			if err := tx.Delete(&Seat{}, "id IN ?", plan.SeatIDsToDelete).Error; err != nil {
				return err
			}
		}
		if len(plan.TableIDsToDelete) > 0 {
			if err := tx.Delete(&VenueTable{}, "id IN ?", plan.TableIDsToDelete).Error; err != nil {
				return err
			}
		}
		if len(plan.SectionIDsToDelete) > 0 {
			if err := tx.Delete(&LayoutSection{}, "id IN ?", plan.SectionIDsToDelete).Error; err != nil {
				return err
			}
		}
		if len(plan.ZoneIDsToDelete) > 0 {
			if err := tx.Delete(&LayoutZone{}, "id IN ?", plan.ZoneIDsToDelete).Error; err != nil {
				return err
			}
		}

		if len(plan.ZonesToCreate) > 0 {
			if err := tx.Create(&plan.ZonesToCreate).Error; err != nil {
				return err
			}
		}
		for i := range plan.ZonesToUpdate {
			if err := tx.Save(&plan.ZonesToUpdate[i]).Error; err != nil {
				return err
			}
		}

		if len(plan.SectionsToCreate) > 0 {
			if err := tx.Create(&plan.SectionsToCreate).Error; err != nil {
				return err
			}
		}
		for i := range plan.SectionsToUpdate {
			if err := tx.Save(&plan.SectionsToUpdate[i]).Error; err != nil {
				return err
			}
		}

		if len(plan.TablesToCreate) > 0 {
			if err := tx.Create(&plan.TablesToCreate).Error; err != nil {
				return err
			}
		}
		for i := range plan.TablesToUpdate {
			if err := tx.Save(&plan.TablesToUpdate[i]).Error; err != nil {
				return err
			}
		}

		if len(plan.SeatsToCreate) > 0 {
			if err := tx.Create(&plan.SeatsToCreate).Error; err != nil {
				return err
			}
		}
		for i := range plan.SeatsToUpdate {
			if err := tx.Save(&plan.SeatsToUpdate[i]).Error; err != nil {
				return err
			}
		}

		return tx.Model(&VenueLayout{}).
			Select("version").
			Where("id = ?", layoutID).
			Scan(&newVersion).Error
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}
