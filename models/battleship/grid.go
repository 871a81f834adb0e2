package battleship

import "strconv"

// A ship grid only ever holds CellEmpty and CellOccupied. A shot grid only
// ever holds CellEmpty, CellHit and CellMiss.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellOccupied
	CellHit
	CellMiss
)

func (c Cell) String() string {
	switch c {
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "empty"
	}
}

// MarshalJSON keeps grids as arrays of numbers rather than base64 strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// Attacked reports whether the cell records a shot, whatever its result.
func (c Cell) Attacked() bool {
	return c == CellHit || c == CellMiss
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) Up() Coordinates    { return Coordinates{Row: c.Row - 1, Col: c.Col} }
func (c Coordinates) Down() Coordinates  { return Coordinates{Row: c.Row + 1, Col: c.Col} }
func (c Coordinates) Left() Coordinates  { return Coordinates{Row: c.Row, Col: c.Col - 1} }
func (c Coordinates) Right() Coordinates { return Coordinates{Row: c.Row, Col: c.Col + 1} }

type Grid [][]Cell

// Creates a new grid of gridSize x gridSize
// All cells are CellEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]Cell, gridSize)
	}
	return grid
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) InBounds(c Coordinates) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g)
}

// At returns the cell at c. Out of range coordinates read as CellEmpty.
func (g Grid) At(c Coordinates) Cell {
	if !g.InBounds(c) {
		return CellEmpty
	}
	return g[c.Row][c.Col]
}

func (g Grid) Set(c Coordinates, cell Cell) {
	g[c.Row][c.Col] = cell
}

// IsFresh reports whether c is on the grid and has not been attacked yet.
func (g Grid) IsFresh(c Coordinates) bool {
	return g.InBounds(c) && !g[c.Row][c.Col].Attacked()
}

func (g Grid) CountAttacked() int {
	var n int
	for _, row := range g {
		for _, cell := range row {
			if cell.Attacked() {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a deep copy safe to hand to a presentation layer.
func (g Grid) Snapshot() Grid {
	cp := make(Grid, len(g))
	for i, row := range g {
		cp[i] = append([]Cell(nil), row...)
	}
	return cp
}
