package battleship

// PlacementValidator answers the two questions asked before any ship is put
// on a board: does it fit, and does it collide with something already there.
type PlacementValidator struct {
	gridSize int
}

func NewPlacementValidator(gridSize int) PlacementValidator {
	return PlacementValidator{gridSize: gridSize}
}

func (v PlacementValidator) GridSize() int {
	return v.gridSize
}

func (v PlacementValidator) FitsOnBoard(length int, origin Coordinates, orientation Orientation) bool {
	if length < 1 || (orientation != OrientationHorizontal && orientation != OrientationVertical) {
		return false
	}
	if origin.Row < 0 || origin.Col < 0 || origin.Row >= v.gridSize || origin.Col >= v.gridSize {
		return false
	}

	end := step(origin, orientation, length-1)
	return end.Row < v.gridSize && end.Col < v.gridSize
}

// Overlaps reports whether any cell of the span is already occupied.
// A span leaving the grid counts as overlapping.
func (v PlacementValidator) Overlaps(grid Grid, origin Coordinates, orientation Orientation, length int) bool {
	for _, c := range Span(origin, orientation, length) {
		if !grid.InBounds(c) {
			return true
		}
		if grid.At(c) == CellOccupied {
			return true
		}
	}
	return false
}

// CanPlace is FitsOnBoard followed by Overlaps, the check every placement
// path funnels through.
func (v PlacementValidator) CanPlace(grid Grid, length int, origin Coordinates, orientation Orientation) bool {
	return v.FitsOnBoard(length, origin, orientation) && !v.Overlaps(grid, origin, orientation, length)
}
