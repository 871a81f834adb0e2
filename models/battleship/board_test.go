package battleship

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

func TestGrid(t *testing.T) {
	g := NewGrid(8)
	if g.Size() != 8 {
		t.Fatalf("expected size: %d\tgot: %d", 8, g.Size())
	}

	tests := []struct {
		name     string
		c        Coordinates
		inBounds bool
	}{
		{name: "origin", c: NewCoordinates(0, 0), inBounds: true},
		{name: "far corner", c: NewCoordinates(7, 7), inBounds: true},
		{name: "negative row", c: NewCoordinates(-1, 0), inBounds: false},
		{name: "column past the edge", c: NewCoordinates(0, 8), inBounds: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if g.InBounds(test.c) != test.inBounds {
				t.Fatalf("expected in bounds: %v\tgot: %v", test.inBounds, g.InBounds(test.c))
			}
			if g.At(test.c) != CellEmpty {
				t.Fatalf("expected %s\tgot: %s", CellEmpty, g.At(test.c))
			}
			if g.IsFresh(test.c) != test.inBounds {
				t.Fatalf("expected fresh: %v\tgot: %v", test.inBounds, g.IsFresh(test.c))
			}
		})
	}
}

func TestGridSnapshotIsACopy(t *testing.T) {
	g := NewGrid(3)
	g.Set(NewCoordinates(1, 1), CellHit)

	snapshot := g.Snapshot()
	g.Set(NewCoordinates(1, 1), CellMiss)

	if snapshot.At(NewCoordinates(1, 1)) != CellHit {
		t.Fatalf("expected %s\tgot: %s", CellHit, snapshot.At(NewCoordinates(1, 1)))
	}
	if g.CountAttacked() != 1 {
		t.Fatalf("expected attacked: %d\tgot: %d", 1, g.CountAttacked())
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if string(encoded) != "[[0,0,0],[0,2,0],[0,0,0]]" {
		t.Fatalf("expected numeric rows\tgot: %s", encoded)
	}
}

func TestFleetLayout(t *testing.T) {
	f := NewFleetLayout(8)
	f.Deploy("Cruiser", 3, NewCoordinates(2, 1), OrientationVertical)
	f.Deploy("Destroyer", 2, NewCoordinates(0, 5), OrientationHorizontal)

	for _, c := range Span(NewCoordinates(2, 1), OrientationVertical, 3) {
		if f.Grid().At(c) != CellOccupied {
			t.Fatalf("expected %v occupied", c)
		}
	}

	tests := []struct {
		name         string
		c            Coordinates
		expectedShip string
		expectedSunk bool
	}{
		{name: "water", c: NewCoordinates(7, 7)},
		{name: "first destroyer cell", c: NewCoordinates(0, 5), expectedShip: "Destroyer"},
		{name: "same cell again counts nothing", c: NewCoordinates(0, 5)},
		{name: "destroyer sinks", c: NewCoordinates(0, 6), expectedShip: "Destroyer", expectedSunk: true},
		{name: "cruiser hit", c: NewCoordinates(3, 1), expectedShip: "Cruiser"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ship, sunk := f.RegisterHit(test.c)
			if ship != test.expectedShip || sunk != test.expectedSunk {
				t.Fatalf("expected %q sunk=%v\tgot: %q sunk=%v", test.expectedShip, test.expectedSunk, ship, sunk)
			}
		})
	}

	if f.IsFleetDestroyed() {
		t.Fatal("expected the cruiser to be afloat")
	}
	if sunk := f.SunkShips(); len(sunk) != 1 || sunk[0] != "Destroyer" {
		t.Fatalf("expected sunk ships: [Destroyer]\tgot: %v", sunk)
	}

	f.RegisterHit(NewCoordinates(2, 1))
	if _, sunk := f.RegisterHit(NewCoordinates(4, 1)); !sunk {
		t.Fatal("expected the cruiser to sink")
	}
	if !f.IsFleetDestroyed() {
		t.Fatal("expected the fleet to be destroyed")
	}
	if placed := f.PlacedShips(); len(placed) != 2 || placed[0] != "Cruiser" {
		t.Fatalf("expected deployment order kept\tgot: %v", placed)
	}
}

func TestPlacementValidator(t *testing.T) {
	v := NewPlacementValidator(8)

	occupied := NewGrid(8)
	for _, c := range Span(NewCoordinates(0, 0), OrientationHorizontal, 3) {
		occupied.Set(c, CellOccupied)
	}

	tests := []struct {
		name        string
		grid        Grid
		length      int
		origin      Coordinates
		orientation Orientation
		fits        bool
		overlaps    bool
	}{
		{
			name: "fits flush against the right edge", grid: NewGrid(8),
			length: 3, origin: NewCoordinates(0, 5), orientation: OrientationHorizontal,
			fits: true,
		},
		{
			name: "runs off the right edge", grid: NewGrid(8),
			length: 3, origin: NewCoordinates(0, 6), orientation: OrientationHorizontal,
			fits: false, overlaps: true,
		},
		{
			name: "runs off the bottom edge", grid: NewGrid(8),
			length: 4, origin: NewCoordinates(5, 0), orientation: OrientationVertical,
			fits: false, overlaps: true,
		},
		{
			name: "overlaps a placed ship", grid: occupied,
			length: 2, origin: NewCoordinates(0, 1), orientation: OrientationHorizontal,
			fits: true, overlaps: true,
		},
		{
			name: "touching is allowed", grid: occupied,
			length: 2, origin: NewCoordinates(1, 0), orientation: OrientationHorizontal,
			fits: true,
		},
		{
			name: "no orientation", grid: NewGrid(8),
			length: 2, origin: NewCoordinates(0, 0), orientation: OrientationNone,
			fits: false,
		},
		{
			name: "negative origin", grid: NewGrid(8),
			length: 2, origin: NewCoordinates(-1, 0), orientation: OrientationVertical,
			fits: false, overlaps: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if fits := v.FitsOnBoard(test.length, test.origin, test.orientation); fits != test.fits {
				t.Fatalf("expected fits: %v\tgot: %v", test.fits, fits)
			}
			if test.orientation != OrientationNone {
				if overlaps := v.Overlaps(test.grid, test.origin, test.orientation, test.length); overlaps != test.overlaps {
					t.Fatalf("expected overlaps: %v\tgot: %v", test.overlaps, overlaps)
				}
			}
			expectedCanPlace := test.fits && !test.overlaps
			if canPlace := v.CanPlace(test.grid, test.length, test.origin, test.orientation); canPlace != expectedCanPlace {
				t.Fatalf("expected can place: %v\tgot: %v", expectedCanPlace, canPlace)
			}
		})
	}
}

func TestPlaceShip(t *testing.T) {
	tests := []struct {
		name        string
		ship        string
		origin      Coordinates
		orientation Orientation
		expectedErr error
	}{
		{name: "valid carrier", ship: "Carrier", origin: NewCoordinates(0, 0), orientation: OrientationHorizontal},
		{name: "carrier twice", ship: "Carrier", origin: NewCoordinates(4, 0), orientation: OrientationHorizontal, expectedErr: cerr.ErrShipAlreadyPlaced},
		{name: "unknown ship", ship: "Rowboat", origin: NewCoordinates(4, 0), orientation: OrientationHorizontal, expectedErr: cerr.ErrShipNotInFleet},
		{name: "off the board", ship: "Cruiser", origin: NewCoordinates(0, 6), orientation: OrientationHorizontal, expectedErr: cerr.ErrOutOfBounds},
		{name: "overlaps the carrier", ship: "Destroyer", origin: NewCoordinates(0, 3), orientation: OrientationVertical, expectedErr: cerr.ErrOverlap},
		{name: "valid destroyer", ship: "Destroyer", origin: NewCoordinates(1, 3), orientation: OrientationVertical},
	}

	p := NewInteractivePlayer(DefaultRules())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := p.PlaceShip(test.ship, test.origin, test.orientation)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
			}
		})
	}

	if p.IsFleetDeployed() {
		t.Fatal("expected fleet to be incomplete")
	}
}

func TestRandomPlacerDeploysValidFleets(t *testing.T) {
	rules := DefaultRules()
	for seed := int64(0); seed < 20; seed++ {
		p := NewAutomatedPlayer(rules)
		if err := p.DeployFleet(NewRandomPlacer(rand.New(rand.NewSource(seed)))); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !p.IsFleetDeployed() {
			t.Fatalf("seed %d: expected fleet deployed", seed)
		}

		occupied := 0
		for _, row := range p.Fleet().Grid() {
			for _, cell := range row {
				if cell == CellOccupied {
					occupied++
				}
			}
		}
		if occupied != 17 {
			t.Fatalf("seed %d: expected %d occupied cells\tgot: %d", seed, 17, occupied)
		}
	}
}

func TestRandomPlacerFillsACrowdedBoard(t *testing.T) {
	rules := Rules{
		GridSize: 2,
		Fleet:    []ShipSpec{{Name: "Top", Length: 2}, {Name: "Bottom", Length: 2}},
	}
	p := NewAutomatedPlayer(rules)
	if err := p.DeployFleet(NewRandomPlacer(rand.New(rand.NewSource(7)))); err != nil {
		t.Fatal(err)
	}
	if !p.IsFleetDeployed() {
		t.Fatal("expected both ships placed")
	}
	for _, row := range p.Fleet().Grid() {
		for _, cell := range row {
			if cell != CellOccupied {
				t.Fatalf("expected a full board\tgot: %v", p.Fleet().Grid())
			}
		}
	}
}

func TestOrientationText(t *testing.T) {
	tests := []struct {
		input       string
		expected    Orientation
		expectedErr error
	}{
		{input: "H", expected: OrientationHorizontal},
		{input: "v", expected: OrientationVertical},
		{input: "horizontal", expected: OrientationHorizontal},
		{input: "X", expectedErr: cerr.ErrInvalidOrientation},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			var o Orientation
			err := json.Unmarshal([]byte(`"`+test.input+`"`), &o)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
			}
			if o != test.expected {
				t.Fatalf("expected orientation: %s\tgot: %s", test.expected, o)
			}
		})
	}
}
