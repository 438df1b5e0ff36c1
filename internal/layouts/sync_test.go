package layouts

import (
	"testing"

	"github.com/google/uuid"
)

func seatIDs(seats []Seat) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(seats))
	for i := range seats {
		out[seats[i].ID] = true
	}
	return out
}

func TestBuildSyncPlanProtectedSeatSurvivesDeletion(t *testing.T) {
	held := Seat{ID: uuid.New(), Label: "A1"}
	free := Seat{ID: uuid.New(), Label: "A2"}
	layout := &VenueLayout{
		ID:    uuid.New(),
		Seats: []Seat{held, free},
	}

	// Empty desired state tries to wipe everything
	req := &SyncRequest{ExpectedVersion: 1}
	prot := Protection{SeatIDs: map[uuid.UUID]bool{held.ID: true}}

	plan := BuildSyncPlan(layout, req, prot)

	for _, id := range plan.SeatIDsToDelete {
		if id == held.ID {
			t.Fatalf("seat with live ticket scheduled for deletion")
		}
	}
	if len(plan.SeatIDsToDelete) != 1 || plan.SeatIDsToDelete[0] != free.ID {
		t.Errorf("expected only the free seat deleted, got %v", plan.SeatIDsToDelete)
	}
	if plan.Report.Seats.Protected != 1 {
		t.Errorf("expected 1 protected seat in report, got %d", plan.Report.Seats.Protected)
	}
	if plan.Report.Seats.Deleted != 1 {
		t.Errorf("expected 1 deleted seat in report, got %d", plan.Report.Seats.Deleted)
	}
}

func TestBuildSyncPlanProtectedSeatNeverRelabeled(t *testing.T) {
	newZone := uuid.New()
	held := Seat{ID: uuid.New(), Label: "A1", RowLabel: "A", ColumnNumber: 1}
	layout := &VenueLayout{ID: uuid.New(), Seats: []Seat{held}}

	req := &SyncRequest{
		ExpectedVersion: 1,
		Seats: []SeatPayload{
			{ID: &held.ID, Label: "B7", RowLabel: "B", ColumnNumber: 7, ZoneID: &newZone},
		},
	}
	prot := Protection{SeatIDs: map[uuid.UUID]bool{held.ID: true}}

	plan := BuildSyncPlan(layout, req, prot)

	// Zone association follows the payload, identity does not
	if len(plan.SeatsToUpdate) != 1 {
		t.Fatalf("expected a zone-only update, got %d updates", len(plan.SeatsToUpdate))
	}
	got := plan.SeatsToUpdate[0]
	if got.Label != "A1" || got.RowLabel != "A" || got.ColumnNumber != 1 {
		t.Errorf("protected seat identity changed: %+v", got)
	}
	if got.ZoneID == nil || *got.ZoneID != newZone {
		t.Errorf("protected seat zone not refreshed: %+v", got.ZoneID)
	}
	if len(plan.SeatIDsToDelete) != 0 {
		t.Errorf("protected seat must not be deleted")
	}
	if plan.Report.Seats.Protected != 1 {
		t.Errorf("expected protected count 1, got %d", plan.Report.Seats.Protected)
	}
}

func TestBuildSyncPlanLabelCollisionWithProtectedSeat(t *testing.T) {
	held := Seat{ID: uuid.New(), Label: "A1"}
	layout := &VenueLayout{ID: uuid.New(), Seats: []Seat{held}}

	// New payload seat reuses the protected seat's label. Creating it
	// would leave two A1 seats, one of them holding a live ticket.
	req := &SyncRequest{
		ExpectedVersion: 1,
		Seats: []SeatPayload{
			{Label: "A1"},
			{Label: "A2"},
		},
	}
	prot := Protection{SeatIDs: map[uuid.UUID]bool{held.ID: true}}

	plan := BuildSyncPlan(layout, req, prot)

	if len(plan.SeatsToCreate) != 1 {
		t.Fatalf("expected 1 created seat, got %d", len(plan.SeatsToCreate))
	}
	if plan.SeatsToCreate[0].Label != "A2" {
		t.Errorf("expected only A2 created, got %s", plan.SeatsToCreate[0].Label)
	}
	if created := seatIDs(plan.SeatsToCreate); created[held.ID] {
		t.Errorf("collision seat replaced the protected seat")
	}
}

func TestBuildSyncPlanTierReferencedSectionsSurvive(t *testing.T) {
	pricedZone := LayoutZone{ID: uuid.New(), Name: "VIP"}
	freeZone := LayoutZone{ID: uuid.New(), Name: "General"}
	pricedSection := LayoutSection{ID: uuid.New(), Name: "Front"}
	layout := &VenueLayout{
		ID:       uuid.New(),
		Zones:    []LayoutZone{pricedZone, freeZone},
		Sections: []LayoutSection{pricedSection},
	}

	req := &SyncRequest{ExpectedVersion: 1}
	prot := Protection{
		ZoneIDs:    map[uuid.UUID]bool{pricedZone.ID: true},
		SectionIDs: map[uuid.UUID]bool{pricedSection.ID: true},
	}

	plan := BuildSyncPlan(layout, req, prot)

	if len(plan.ZoneIDsToDelete) != 1 || plan.ZoneIDsToDelete[0] != freeZone.ID {
		t.Errorf("expected only unpriced zone deleted, got %v", plan.ZoneIDsToDelete)
	}
	if len(plan.SectionIDsToDelete) != 0 {
		t.Errorf("tier-referenced section scheduled for deletion")
	}
	if plan.Report.Zones.Protected != 1 || plan.Report.Sections.Protected != 1 {
		t.Errorf("protection not reported: zones=%d sections=%d",
			plan.Report.Zones.Protected, plan.Report.Sections.Protected)
	}
}

func TestBuildSyncPlanCreateUpdateDelete(t *testing.T) {
	existingZone := LayoutZone{ID: uuid.New(), Name: "Old name", Capacity: 10}
	staleZone := LayoutZone{ID: uuid.New(), Name: "Doomed"}
	existingSeat := Seat{ID: uuid.New(), Label: "A1", Status: SeatStatusSold}
	layout := &VenueLayout{
		ID:    uuid.New(),
		Zones: []LayoutZone{existingZone, staleZone},
		Seats: []Seat{existingSeat},
	}

	req := &SyncRequest{
		ExpectedVersion: 1,
		Zones: []ZonePayload{
			{ID: &existingZone.ID, Name: "New name", Capacity: 25},
			{Name: "Brand new"},
		},
		Seats: []SeatPayload{
			{ID: &existingSeat.ID, Label: "A1", RowLabel: "A", ColumnNumber: 1},
			{Label: "A2", RowLabel: "A", ColumnNumber: 2},
		},
	}

	plan := BuildSyncPlan(layout, req, Protection{})

	if len(plan.ZonesToUpdate) != 1 || plan.ZonesToUpdate[0].Name != "New name" {
		t.Errorf("zone update missing or wrong: %+v", plan.ZonesToUpdate)
	}
	if len(plan.ZonesToCreate) != 1 || plan.ZonesToCreate[0].Name != "Brand new" {
		t.Errorf("zone create missing: %+v", plan.ZonesToCreate)
	}
	if len(plan.ZoneIDsToDelete) != 1 || plan.ZoneIDsToDelete[0] != staleZone.ID {
		t.Errorf("stale zone not deleted: %v", plan.ZoneIDsToDelete)
	}

	// Updated seats keep their row identity; created seats start AVAILABLE
	if len(plan.SeatsToUpdate) != 1 || plan.SeatsToUpdate[0].ID != existingSeat.ID {
		t.Fatalf("seat update missing: %+v", plan.SeatsToUpdate)
	}
	if plan.SeatsToUpdate[0].Status != SeatStatusSold {
		t.Errorf("seat update must not reset display status")
	}
	if len(plan.SeatsToCreate) != 1 || plan.SeatsToCreate[0].Status != SeatStatusAvailable {
		t.Errorf("created seat must start AVAILABLE: %+v", plan.SeatsToCreate)
	}

	// Created entities get ids assigned up front so the plan is replayable
	if plan.ZonesToCreate[0].ID == uuid.Nil {
		t.Errorf("created zone has no id")
	}
	if plan.SeatsToCreate[0].LayoutID != layout.ID {
		t.Errorf("created seat not bound to layout")
	}
}
