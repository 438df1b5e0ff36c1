package layouts

import (
	"sort"

	"github.com/google/uuid"
)

// ClassifySeat resolves which section a seat belongs to. Resolution order:
//
//  1. an explicit sectionId embedded in seat metadata,
//  2. a section bound to the seat's zone,
//  3. the first active section whose polygon contains the seat position.
//
// Returns nil when no section claims the seat, which is a valid outcome
// for aisle or standing positions.
func ClassifySeat(seat *Seat, sections []LayoutSection) *LayoutSection {
	if len(sections) == 0 {
		return nil
	}

	if explicitID, ok := seat.ExplicitSectionID(); ok {
		for i := range sections {
			if sections[i].ID == explicitID {
				return &sections[i]
			}
		}
	}

	if seat.ZoneID != nil {
		for i := range sections {
			if sections[i].ZoneID != nil && *sections[i].ZoneID == *seat.ZoneID {
				return &sections[i]
			}
		}
	}

	pos, ok := seat.Position()
	if !ok {
		return nil
	}

	// Stable order so overlapping polygons classify deterministically
	ordered := make([]*LayoutSection, 0, len(sections))
	for i := range sections {
		if sections[i].IsActive {
			ordered = append(ordered, &sections[i])
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DisplayOrder != ordered[j].DisplayOrder {
			return ordered[i].DisplayOrder < ordered[j].DisplayOrder
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	for _, section := range ordered {
		if PointInPolygon(pos, section.PolygonPoints) {
			return section
		}
	}
	return nil
}

// ClassifySeats maps every seat in the slice to its section id. Seats with
// no section are omitted from the result.
func ClassifySeats(seats []Seat, sections []LayoutSection) map[uuid.UUID]uuid.UUID {
	result := make(map[uuid.UUID]uuid.UUID, len(seats))
	for i := range seats {
		if section := ClassifySeat(&seats[i], sections); section != nil {
			result[seats[i].ID] = section.ID
		}
	}
	return result
}
