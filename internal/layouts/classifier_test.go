package layouts

import (
	"testing"

	"github.com/google/uuid"
)

func TestClassifySeat(t *testing.T) {
	zoneA := uuid.New()
	zoneB := uuid.New()

	front := LayoutSection{
		ID:       uuid.New(),
		ZoneID:   &zoneA,
		Name:     "Front",
		IsActive: true,
		PolygonPoints: PointList{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50},
		},
		DisplayOrder: 1,
	}
	back := LayoutSection{
		ID:       uuid.New(),
		Name:     "Back",
		IsActive: true,
		PolygonPoints: PointList{
			{X: 0, Y: 50}, {X: 100, Y: 50}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
		DisplayOrder: 2,
	}
	inactive := LayoutSection{
		ID:       uuid.New(),
		Name:     "Closed",
		IsActive: false,
		PolygonPoints: PointList{
			{X: 0, Y: 50}, {X: 100, Y: 50}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
		DisplayOrder: 0,
	}
	sections := []LayoutSection{front, back, inactive}

	tests := []struct {
		name string
		seat Seat
		want *uuid.UUID
	}{
		{
			name: "explicit metadata assignment wins over geometry",
			seat: Seat{Metadata: JSONMap{
				"sectionId": back.ID.String(),
				"x":         float64(10),
				"y":         float64(10),
			}},
			want: &back.ID,
		},
		{
			name: "zone binding wins over polygon",
			seat: Seat{ZoneID: &zoneA, Metadata: JSONMap{
				"x": float64(50),
				"y": float64(75),
			}},
			want: &front.ID,
		},
		{
			name: "polygon containment",
			seat: Seat{Metadata: JSONMap{"x": float64(50), "y": float64(25)}},
			want: &front.ID,
		},
		{
			name: "inactive sections never match even with lower display order",
			seat: Seat{Metadata: JSONMap{"x": float64(50), "y": float64(75)}},
			want: &back.ID,
		},
		{
			name: "seat without position is unclassified",
			seat: Seat{},
			want: nil,
		},
		{
			name: "position outside every polygon is unclassified",
			seat: Seat{Metadata: JSONMap{"x": float64(500), "y": float64(500)}},
			want: nil,
		},
		{
			name: "unknown zone falls through to geometry",
			seat: Seat{ZoneID: &zoneB, Metadata: JSONMap{
				"x": float64(50),
				"y": float64(25),
			}},
			want: &front.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySeat(&tt.seat, sections)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected no section, got %s", got.Name)
			case tt.want != nil && got == nil:
				t.Errorf("expected section %s, got none", tt.want)
			case tt.want != nil && got.ID != *tt.want:
				t.Errorf("expected section %s, got %s (%s)", tt.want, got.ID, got.Name)
			}
		})
	}
}

func TestClassifySeatsOmitsUnclassified(t *testing.T) {
	section := LayoutSection{
		ID:       uuid.New(),
		IsActive: true,
		PolygonPoints: PointList{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
	inside := Seat{ID: uuid.New(), Metadata: JSONMap{"x": float64(5), "y": float64(5)}}
	outside := Seat{ID: uuid.New(), Metadata: JSONMap{"x": float64(50), "y": float64(50)}}

	got := ClassifySeats([]Seat{inside, outside}, []LayoutSection{section})
	if len(got) != 1 {
		t.Fatalf("expected 1 classified seat, got %d", len(got))
	}
	if got[inside.ID] != section.ID {
		t.Errorf("inside seat not assigned to section")
	}
}
