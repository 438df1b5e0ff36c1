package layouts

import (
	"github.com/google/uuid"
)

// SyncRequest is the full desired state of a layout submitted by the
// editor. Entities present in the request are created or updated; entities
// missing from it are deleted unless protected.
type SyncRequest struct {
	ExpectedVersion int    `json:"expected_version" binding:"required,min=1" validate:"required,min=1"`
	Force           bool   `json:"force"`
	EditedBy        string `json:"edited_by"`

	Name     string           `json:"name"`
	Zones    []ZonePayload    `json:"zones" validate:"dive"`
	Sections []SectionPayload `json:"sections" validate:"dive"`
	Seats    []SeatPayload    `json:"seats" validate:"dive"`
	Tables   []TablePayload   `json:"tables"`
}

// ZonePayload is one zone in the desired state. A nil ID means create.
type ZonePayload struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name" binding:"required" validate:"required"`
	Color     string     `json:"color"`
	BasePrice float64    `json:"base_price" validate:"min=0"`
	Capacity  int        `json:"capacity"`
	Metadata  JSONMap    `json:"metadata"`
}

type SectionPayload struct {
	ID            *uuid.UUID `json:"id"`
	ZoneID        *uuid.UUID `json:"zone_id"`
	Name          string     `json:"name" binding:"required" validate:"required"`
	Color         string     `json:"color"`
	PolygonPoints PointList  `json:"polygon_points"`
	LabelX        float64    `json:"label_x"`
	LabelY        float64    `json:"label_y"`
	Capacity      int        `json:"capacity"`
	DisplayOrder  int        `json:"display_order"`
	IsActive      *bool      `json:"is_active"`
	Metadata      JSONMap    `json:"metadata"`
}

type SeatPayload struct {
	ID           *uuid.UUID `json:"id"`
	ZoneID       *uuid.UUID `json:"zone_id"`
	TableID      *uuid.UUID `json:"table_id"`
	Label        string     `json:"label" binding:"required" validate:"required"`
	RowLabel     string     `json:"row_label"`
	ColumnNumber int        `json:"column_number"`
	Metadata     JSONMap    `json:"metadata"`
}

type TablePayload struct {
	ID        *uuid.UUID `json:"id"`
	Shape     string     `json:"shape"`
	CenterX   float64    `json:"center_x"`
	CenterY   float64    `json:"center_y"`
	Rotation  float64    `json:"rotation"`
	SeatCount int        `json:"seat_count"`
	Metadata  JSONMap    `json:"metadata"`
}

// EntityCounts summarizes what the sync did to one entity type
type EntityCounts struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Protected int `json:"protected"`
}

// SyncReport is returned to the editor after a successful sync
type SyncReport struct {
	Version  int          `json:"version"`
	Zones    EntityCounts `json:"zones"`
	Sections EntityCounts `json:"sections"`
	Seats    EntityCounts `json:"seats"`
	Tables   EntityCounts `json:"tables"`
}

// SyncPlan is the set of row mutations a sync request resolves to once
// protection rules are applied. Building the plan is pure; applying it is
// one repository transaction.
type SyncPlan struct {
	ZonesToCreate []LayoutZone
	ZonesToUpdate []LayoutZone
	ZoneIDsToDelete []uuid.UUID

	SectionsToCreate []LayoutSection
	SectionsToUpdate []LayoutSection
	SectionIDsToDelete []uuid.UUID

	SeatsToCreate []Seat
	SeatsToUpdate []Seat
	SeatIDsToDelete []uuid.UUID

	TablesToCreate []VenueTable
	TablesToUpdate []VenueTable
	TableIDsToDelete []uuid.UUID

	Report SyncReport
}

// Protection is the live state a sync must not destroy: seats with a
// RESERVED or SOLD ticket on any session, and zones/sections referenced
// by a price tier.
type Protection struct {
	SeatIDs    map[uuid.UUID]bool
	ZoneIDs    map[uuid.UUID]bool
	SectionIDs map[uuid.UUID]bool
}

// BuildSyncPlan diffs the desired state against the current layout and
// applies the protection rules:
//
//   - protected seats are never deleted and never relabeled; their zone
//     association and metadata still follow the payload;
//   - a payload seat whose label collides with a protected seat's label is
//     skipped, so the protected seat keeps its identity;
//   - zones and sections referenced by price tiers survive omission from
//     the payload.
func BuildSyncPlan(layout *VenueLayout, req *SyncRequest, prot Protection) *SyncPlan {
	plan := &SyncPlan{}
	if prot.SeatIDs == nil {
		prot.SeatIDs = map[uuid.UUID]bool{}
	}
	if prot.ZoneIDs == nil {
		prot.ZoneIDs = map[uuid.UUID]bool{}
	}
	if prot.SectionIDs == nil {
		prot.SectionIDs = map[uuid.UUID]bool{}
	}

	planZones(plan, layout, req, prot)
	planSections(plan, layout, req, prot)
	planTables(plan, layout, req)
	planSeats(plan, layout, req, prot)

	return plan
}

func planZones(plan *SyncPlan, layout *VenueLayout, req *SyncRequest, prot Protection) {
	existing := make(map[uuid.UUID]*LayoutZone, len(layout.Zones))
	for i := range layout.Zones {
		existing[layout.Zones[i].ID] = &layout.Zones[i]
	}

	seen := make(map[uuid.UUID]bool, len(req.Zones))
	for _, p := range req.Zones {
		if p.ID != nil {
			if current, ok := existing[*p.ID]; ok {
				seen[*p.ID] = true
				updated := *current
				updated.Name = p.Name
				updated.Color = p.Color
				updated.BasePrice = p.BasePrice
				updated.Capacity = p.Capacity
				updated.Metadata = p.Metadata
				plan.ZonesToUpdate = append(plan.ZonesToUpdate, updated)
				plan.Report.Zones.Updated++
				continue
			}
		}
		zone := LayoutZone{
			ID:        uuid.New(),
			LayoutID:  layout.ID,
			Name:      p.Name,
			Color:     p.Color,
			BasePrice: p.BasePrice,
			Capacity:  p.Capacity,
			Metadata:  p.Metadata,
		}
		if p.ID != nil {
			zone.ID = *p.ID
		}
		plan.ZonesToCreate = append(plan.ZonesToCreate, zone)
		plan.Report.Zones.Created++
	}

	for id := range existing {
		if seen[id] {
			continue
		}
		if prot.ZoneIDs[id] {
			plan.Report.Zones.Protected++
			continue
		}
		plan.ZoneIDsToDelete = append(plan.ZoneIDsToDelete, id)
		plan.Report.Zones.Deleted++
	}
}

func planSections(plan *SyncPlan, layout *VenueLayout, req *SyncRequest, prot Protection) {
	existing := make(map[uuid.UUID]*LayoutSection, len(layout.Sections))
	for i := range layout.Sections {
		existing[layout.Sections[i].ID] = &layout.Sections[i]
	}

	seen := make(map[uuid.UUID]bool, len(req.Sections))
	for _, p := range req.Sections {
		isActive := true
		if p.IsActive != nil {
			isActive = *p.IsActive
		}
		if p.ID != nil {
			if current, ok := existing[*p.ID]; ok {
				seen[*p.ID] = true
				updated := *current
				updated.ZoneID = p.ZoneID
				updated.Name = p.Name
				updated.Color = p.Color
				updated.PolygonPoints = p.PolygonPoints
				updated.LabelX = p.LabelX
				updated.LabelY = p.LabelY
				updated.Capacity = p.Capacity
				updated.DisplayOrder = p.DisplayOrder
				updated.IsActive = isActive
				updated.Metadata = p.Metadata
				plan.SectionsToUpdate = append(plan.SectionsToUpdate, updated)
				plan.Report.Sections.Updated++
				continue
			}
		}
		section := LayoutSection{
			ID:            uuid.New(),
			LayoutID:      layout.ID,
			ZoneID:        p.ZoneID,
			Name:          p.Name,
			Color:         p.Color,
			PolygonPoints: p.PolygonPoints,
			LabelX:        p.LabelX,
			LabelY:        p.LabelY,
			Capacity:      p.Capacity,
			DisplayOrder:  p.DisplayOrder,
			IsActive:      isActive,
			Metadata:      p.Metadata,
		}
		if p.ID != nil {
			section.ID = *p.ID
		}
		plan.SectionsToCreate = append(plan.SectionsToCreate, section)
		plan.Report.Sections.Created++
	}

	for id := range existing {
		if seen[id] {
			continue
		}
		if prot.SectionIDs[id] {
			plan.Report.Sections.Protected++
			continue
		}
		plan.SectionIDsToDelete = append(plan.SectionIDsToDelete, id)
		plan.Report.Sections.Deleted++
	}
}

func planTables(plan *SyncPlan, layout *VenueLayout, req *SyncRequest) {
	existing := make(map[uuid.UUID]*VenueTable, len(layout.Tables))
	for i := range layout.Tables {
		existing[layout.Tables[i].ID] = &layout.Tables[i]
	}

	seen := make(map[uuid.UUID]bool, len(req.Tables))
	for _, p := range req.Tables {
		shape := p.Shape
		if shape == "" {
			shape = "round"
		}
		if p.ID != nil {
			if current, ok := existing[*p.ID]; ok {
				seen[*p.ID] = true
				updated := *current
				updated.Shape = shape
				updated.CenterX = p.CenterX
				updated.CenterY = p.CenterY
				updated.Rotation = p.Rotation
				updated.SeatCount = p.SeatCount
				updated.Metadata = p.Metadata
				plan.TablesToUpdate = append(plan.TablesToUpdate, updated)
				plan.Report.Tables.Updated++
				continue
			}
		}
		table := VenueTable{
			ID:        uuid.New(),
			LayoutID:  layout.ID,
			Shape:     shape,
			CenterX:   p.CenterX,
			CenterY:   p.CenterY,
			Rotation:  p.Rotation,
			SeatCount: p.SeatCount,
			Metadata:  p.Metadata,
		}
		if p.ID != nil {
			table.ID = *p.ID
		}
		plan.TablesToCreate = append(plan.TablesToCreate, table)
		plan.Report.Tables.Created++
	}

	for id := range existing {
		if seen[id] {
			continue
		}
		plan.TableIDsToDelete = append(plan.TableIDsToDelete, id)
		plan.Report.Tables.Deleted++
	}
}

func planSeats(plan *SyncPlan, layout *VenueLayout, req *SyncRequest, prot Protection) {
	existing := make(map[uuid.UUID]*Seat, len(layout.Seats))
	protectedLabels := make(map[string]uuid.UUID)
	for i := range layout.Seats {
		seat := &layout.Seats[i]
		existing[seat.ID] = seat
		if prot.SeatIDs[seat.ID] {
			protectedLabels[seat.Label] = seat.ID
		}
	}

	seen := make(map[uuid.UUID]bool, len(req.Seats))
	for _, p := range req.Seats {
		if p.ID != nil {
			if current, ok := existing[*p.ID]; ok {
				seen[*p.ID] = true
				if prot.SeatIDs[*p.ID] {
					// Live tickets pin the seat's identity; only the zone
					// association and metadata follow the payload
					updated := *current
					updated.ZoneID = p.ZoneID
					updated.TableID = p.TableID
					updated.Metadata = p.Metadata
					plan.SeatsToUpdate = append(plan.SeatsToUpdate, updated)
					plan.Report.Seats.Protected++
					continue
				}
				if ownerID, taken := protectedLabels[p.Label]; taken && ownerID != *p.ID {
					plan.Report.Seats.Protected++
					continue
				}
				updated := *current
				updated.ZoneID = p.ZoneID
				updated.TableID = p.TableID
				updated.Label = p.Label
				updated.RowLabel = p.RowLabel
				updated.ColumnNumber = p.ColumnNumber
				updated.Metadata = p.Metadata
				plan.SeatsToUpdate = append(plan.SeatsToUpdate, updated)
				plan.Report.Seats.Updated++
				continue
			}
		}
		if _, taken := protectedLabels[p.Label]; taken {
			plan.Report.Seats.Protected++
			continue
		}
		seat := Seat{
			ID:           uuid.New(),
			LayoutID:     layout.ID,
			ZoneID:       p.ZoneID,
			TableID:      p.TableID,
			Label:        p.Label,
			RowLabel:     p.RowLabel,
			ColumnNumber: p.ColumnNumber,
			Status:       SeatStatusAvailable,
			Metadata:     p.Metadata,
		}
		if p.ID != nil {
			seat.ID = *p.ID
		}
		plan.SeatsToCreate = append(plan.SeatsToCreate, seat)
		plan.Report.Seats.Created++
	}

	for id := range existing {
		if seen[id] {
			continue
		}
		if prot.SeatIDs[id] {
			plan.Report.Seats.Protected++
			continue
		}
		plan.SeatIDsToDelete = append(plan.SeatIDsToDelete, id)
		plan.Report.Seats.Deleted++
	}
}
