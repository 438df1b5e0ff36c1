package layouts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Point is a 2-D canvas coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointList is a jsonb column holding an ordered polygon outline
type PointList []Point

func (p PointList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PointList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for PointList: %T", value)
	}
	return json.Unmarshal(data, p)
}

// PointInPolygon reports whether pt lies inside the polygon using the
// ray-casting rule. A polygon with fewer than 3 points contains nothing.
func PointInPolygon(pt Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		intersects := (yi > pt.Y) != (yj > pt.Y) &&
			pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi)+xi
		if intersects {
			inside = !inside
		}
		j = i
	}
	return inside
}
