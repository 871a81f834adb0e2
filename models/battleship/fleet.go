package battleship

// FleetLayout is a player's own board: the ship grid plus, for every ship
// still afloat, the coordinates that have not been struck yet.
type FleetLayout struct {
	grid      Grid
	remaining map[string]map[Coordinates]struct{}
	owner     map[Coordinates]string
	placed    map[string][]Coordinates
	order     []string
}

func NewFleetLayout(gridSize int) *FleetLayout {
	return &FleetLayout{
		grid:      NewGrid(gridSize),
		remaining: make(map[string]map[Coordinates]struct{}),
		owner:     make(map[Coordinates]string),
		placed:    make(map[string][]Coordinates),
	}
}

func (f *FleetLayout) Grid() Grid {
	return f.grid
}

// Deploy writes the ship onto the grid and records its coordinates.
// It does no validation; callers go through PlacementValidator first.
func (f *FleetLayout) Deploy(ship string, length int, origin Coordinates, orientation Orientation) {
	span := Span(origin, orientation, length)

	cells := make(map[Coordinates]struct{}, length)
	for _, c := range span {
		f.grid.Set(c, CellOccupied)
		f.owner[c] = ship
		cells[c] = struct{}{}
	}

	f.remaining[ship] = cells
	f.placed[ship] = span
	f.order = append(f.order, ship)
}

// RegisterHit strikes c. It returns the ship that owns c, if any, and
// whether this strike sank it. A sunk ship leaves the layout.
func (f *FleetLayout) RegisterHit(c Coordinates) (string, bool) {
	ship, prs := f.owner[c]
	if !prs {
		return "", false
	}
	delete(f.owner, c)

	cells := f.remaining[ship]
	delete(cells, c)
	if len(cells) > 0 {
		return ship, false
	}

	delete(f.remaining, ship)
	return ship, true
}

func (f *FleetLayout) IsFleetDestroyed() bool {
	for _, cells := range f.remaining {
		if len(cells) > 0 {
			return false
		}
	}
	return true
}

func (f *FleetLayout) IsPlaced(ship string) bool {
	_, prs := f.placed[ship]
	return prs
}

func (f *FleetLayout) IsAfloat(ship string) bool {
	_, prs := f.remaining[ship]
	return prs
}

// PlacedShips returns ship names in deployment order.
func (f *FleetLayout) PlacedShips() []string {
	return append([]string(nil), f.order...)
}

// ShipCoordinates returns every cell the ship was deployed on.
func (f *FleetLayout) ShipCoordinates(ship string) []Coordinates {
	return append([]Coordinates(nil), f.placed[ship]...)
}

// SunkShips returns the ships no longer afloat, in deployment order.
func (f *FleetLayout) SunkShips() []string {
	sunk := make([]string, 0, len(f.order))
	for _, ship := range f.order {
		if !f.IsAfloat(ship) {
			sunk = append(sunk, ship)
		}
	}
	return sunk
}
