package data

import "fmt"

// A SquareRegion is an axis-aligned rectangle on the map, given by two
// opposite corners in block coordinates. The corners may be given in any
// order; Min and Max normalize them.
type SquareRegion struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func NewSquareRegion(x1, y1, x2, y2 int) SquareRegion {
	return SquareRegion{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Min returns the corner with the smallest coordinates.
func (r SquareRegion) Min() (x, y int) {
	return min(r.X1, r.X2), min(r.Y1, r.Y2)
}

// Max returns the corner with the largest coordinates.
func (r SquareRegion) Max() (x, y int) {
	return max(r.X1, r.X2), max(r.Y1, r.Y2)
}

// Contains reports whether the point is inside the region. Edges count as
// inside.
func (r SquareRegion) Contains(x, y int) bool {
	minX, minY := r.Min()
	maxX, maxY := r.Max()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

func (r SquareRegion) Width() int {
	minX, _ := r.Min()
	maxX, _ := r.Max()
	return maxX - minX + 1
}

func (r SquareRegion) Height() int {
	_, minY := r.Min()
	_, maxY := r.Max()
	return maxY - minY + 1
}

func (r SquareRegion) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
