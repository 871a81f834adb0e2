package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	DefaultGridSize = 8
	MaxGridSize     = 26
)

// Rules are fixed for the lifetime of a game.
type Rules struct {
	GridSize int        `json:"grid_size"`
	Fleet    []ShipSpec `json:"fleet"`
}

func DefaultRules() Rules {
	return Rules{
		GridSize: DefaultGridSize,
		Fleet: []ShipSpec{
			{Name: "Carrier", Length: 5},
			{Name: "Battleship", Length: 4},
			{Name: "Cruiser", Length: 3},
			{Name: "Submarine", Length: 3},
			{Name: "Destroyer", Length: 2},
		},
	}
}

func (r Rules) Validate() error {
	if r.GridSize < 1 || r.GridSize > MaxGridSize {
		return cerr.ErrConfig(fmt.Sprintf("grid size must be between 1 and %d, got %d", MaxGridSize, r.GridSize))
	}
	if len(r.Fleet) == 0 {
		return cerr.ErrConfig("fleet has no ships")
	}

	var cells int
	seen := make(map[string]struct{}, len(r.Fleet))
	for _, ship := range r.Fleet {
		if ship.Name == "" {
			return cerr.ErrConfig("ship with empty name")
		}
		if _, prs := seen[ship.Name]; prs {
			return cerr.ErrConfig("duplicate ship " + ship.Name)
		}
		seen[ship.Name] = struct{}{}

		if ship.Length < 1 || ship.Length > r.GridSize {
			return cerr.ErrConfig(fmt.Sprintf("ship %s has length %d, must be between 1 and %d", ship.Name, ship.Length, r.GridSize))
		}
		cells += ship.Length
	}

	if cells > r.GridSize*r.GridSize {
		return cerr.ErrConfig("fleet does not fit on the grid")
	}
	return nil
}

func (r Rules) Ship(name string) (ShipSpec, bool) {
	for _, ship := range r.Fleet {
		if ship.Name == name {
			return ship, true
		}
	}
	return ShipSpec{}, false
}
