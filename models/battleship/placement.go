package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const maxRandomPlacementAttempts = 1000

// FleetPlacer picks where a ship goes. Whatever it returns still goes
// through the player's placement checks.
type FleetPlacer interface {
	Position(ship ShipSpec, grid Grid, validator PlacementValidator) (Coordinates, Orientation, error)
}

type RandomPlacer struct {
	rng *rand.Rand
}

func NewRandomPlacer(rng *rand.Rand) RandomPlacer {
	return RandomPlacer{rng: rng}
}

var _ FleetPlacer = RandomPlacer{}

// Position draws orientation, row and column uniformly until the placement
// is valid. A crowded grid falls back to the first valid position in
// row-major order.
func (rp RandomPlacer) Position(ship ShipSpec, grid Grid, validator PlacementValidator) (Coordinates, Orientation, error) {
	size := validator.GridSize()

	for attempt := 0; attempt < maxRandomPlacementAttempts; attempt++ {
		orientation := orientations[rp.rng.Intn(len(orientations))]
		origin := Coordinates{Row: rp.rng.Intn(size), Col: rp.rng.Intn(size)}
		if validator.CanPlace(grid, ship.Length, origin, orientation) {
			return origin, orientation, nil
		}
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for _, orientation := range orientations {
				origin := Coordinates{Row: row, Col: col}
				if validator.CanPlace(grid, ship.Length, origin, orientation) {
					return origin, orientation, nil
				}
			}
		}
	}
	return Coordinates{}, OrientationNone, cerr.ErrShipOverlaps(ship.Name, -1, -1)
}

// FixedPlacer places ships at predetermined positions.
type FixedPlacer map[string]Placement

type Placement struct {
	Origin      Coordinates `json:"origin"`
	Orientation Orientation `json:"orientation"`
}

var _ FleetPlacer = FixedPlacer{}

func (fp FixedPlacer) Position(ship ShipSpec, grid Grid, validator PlacementValidator) (Coordinates, Orientation, error) {
	p, prs := fp[ship.Name]
	if !prs {
		return Coordinates{}, OrientationNone, cerr.ErrUnknownShip(ship.Name)
	}
	return p.Origin, p.Orientation, nil
}
