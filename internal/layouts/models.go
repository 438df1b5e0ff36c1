package layouts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seat display statuses. These are a cache for seat-map rendering; the
// tickets table is the source of truth for whether a seat is taken.
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusReserved  = "RESERVED"
	SeatStatusSold      = "SOLD"
	SeatStatusBlocked   = "BLOCKED"
)

// JSONMap is a jsonb column holding free-form metadata
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
	return json.Unmarshal(data, m)
}

// VenueLayout is the seating chart of a venue. Version is the optimistic
// concurrency token bumped on every successful sync.
type VenueLayout struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"venue_id"`
	EventID      *uuid.UUID `gorm:"type:uuid;index" json:"event_id,omitempty"`
	Name         string     `gorm:"not null" json:"name"`
	Version      int        `gorm:"not null;default:1" json:"version"`
	IsDefault    bool       `gorm:"default:false" json:"is_default"`
	LastEditedBy string     `json:"last_edited_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Zones    []LayoutZone    `json:"zones,omitempty" gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE;"`
	Sections []LayoutSection `json:"sections,omitempty" gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE;"`
	Seats    []Seat          `json:"seats,omitempty" gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE;"`
	Tables   []VenueTable    `json:"tables,omitempty" gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE;"`
}

// LayoutZone is a pricing/visual grouping of seats (e.g. VIP, General)
type LayoutZone struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LayoutID  uuid.UUID `gorm:"type:uuid;not null;index" json:"layout_id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `json:"color"`
	BasePrice float64   `gorm:"default:0" json:"base_price"`
	Capacity  int       `gorm:"default:0" json:"capacity"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LayoutSection is a named polygon on the canvas. Seats whose position
// falls inside the polygon belong to the section.
type LayoutSection struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LayoutID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"layout_id"`
	ZoneID        *uuid.UUID `gorm:"type:uuid;index" json:"zone_id,omitempty"`
	Name          string     `gorm:"not null" json:"name"`
	Color         string     `json:"color"`
	PolygonPoints PointList  `gorm:"type:jsonb" json:"polygon_points"`
	LabelX        float64    `json:"label_x"`
	LabelY        float64    `json:"label_y"`
	Capacity      int        `gorm:"default:0" json:"capacity"`
	DisplayOrder  int        `gorm:"default:0" json:"display_order"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	Metadata      JSONMap    `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Seat is a single sellable position in a layout
type Seat struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LayoutID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"layout_id"`
	ZoneID       *uuid.UUID `gorm:"type:uuid;index" json:"zone_id,omitempty"`
	TableID      *uuid.UUID `gorm:"type:uuid;index" json:"table_id,omitempty"`
	Label        string     `gorm:"not null" json:"label"`
	RowLabel     string     `json:"row_label"`
	ColumnNumber int        `json:"column_number"`
	Status       string     `gorm:"type:varchar(20);default:'AVAILABLE'" json:"status"`
	Metadata     JSONMap    `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// VenueTable is a table element (round/rect) whose seats sync together
type VenueTable struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LayoutID  uuid.UUID `gorm:"type:uuid;not null;index" json:"layout_id"`
	Shape     string    `gorm:"type:varchar(20);default:'round'" json:"shape"`
	CenterX   float64   `json:"center_x"`
	CenterY   float64   `json:"center_y"`
	Rotation  float64   `json:"rotation"`
	SeatCount int       `json:"seat_count"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VenueLayout) TableName() string   { return "venue_layouts" }
func (LayoutZone) TableName() string    { return "layout_zones" }
func (LayoutSection) TableName() string { return "layout_sections" }
func (Seat) TableName() string          { return "seats" }
func (VenueTable) TableName() string    { return "venue_tables" }

// Position reads the seat's canvas coordinates out of its metadata.
// Seats placed without coordinates report ok=false and never match a
// section polygon.
func (s *Seat) Position() (Point, bool) {
	if s.Metadata == nil {
		return Point{}, false
	}
	x, xok := toFloat(s.Metadata["x"])
	y, yok := toFloat(s.Metadata["y"])
	if !xok || !yok {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// ExplicitSectionID reads a section assignment embedded in seat metadata,
// which wins over any geometric classification.
func (s *Seat) ExplicitSectionID() (uuid.UUID, bool) {
	if s.Metadata == nil {
		return uuid.Nil, false
	}
	raw, ok := s.Metadata["sectionId"].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SeatType reads the seat type from metadata ("regular" when unset)
func (s *Seat) SeatType() string {
	if s.Metadata != nil {
		if t, ok := s.Metadata["seatType"].(string); ok && t != "" {
			return t
		}
	}
	return "regular"
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
