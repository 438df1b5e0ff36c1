package layouts

import "testing"

func TestPointInPolygon(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	triangle := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}
	// Concave "L" shape
	lShape := []Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4},
		{X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10},
	}

	tests := []struct {
		name    string
		pt      Point
		polygon []Point
		want    bool
	}{
		{"center of square", Point{X: 5, Y: 5}, square, true},
		{"outside square right", Point{X: 15, Y: 5}, square, false},
		{"outside square above", Point{X: 5, Y: -1}, square, false},
		{"inside triangle", Point{X: 5, Y: 3}, triangle, true},
		{"outside triangle corner", Point{X: 9, Y: 9}, triangle, false},
		{"inside L foot", Point{X: 8, Y: 2}, lShape, true},
		{"inside L leg", Point{X: 2, Y: 8}, lShape, true},
		{"in L notch", Point{X: 8, Y: 8}, lShape, false},
		{"two points contain nothing", Point{X: 5, Y: 5}, square[:2], false},
		{"empty polygon", Point{X: 0, Y: 0}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.pt, tt.polygon); got != tt.want {
				t.Errorf("PointInPolygon(%+v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}
