package battleship

import (
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	PlayerNameHuman    = "Player"
	PlayerNameComputer = "Computer"
)

type Player interface {
	Uuid() string
	Name() string
	IsAutomated() bool
	Fleet() *FleetLayout
	ShotGrid() Grid

	PlaceShip(name string, origin Coordinates, orientation Orientation) error
	DeployFleet(placer FleetPlacer) error
	IsFleetDeployed() bool

	ChooseTarget() (Coordinates, error)
	RecordResult(c Coordinates, result ShotResult, sunkShip string) error
}

// basePlayer holds what both kinds of players share: their own board and
// the placement contract.
type basePlayer struct {
	uuid      string
	name      string
	rules     Rules
	fleet     *FleetLayout
	validator PlacementValidator
}

func newBasePlayer(name string, rules Rules) basePlayer {
	return basePlayer{
		uuid:      uuid.NewString()[:10],
		name:      name,
		rules:     rules,
		fleet:     NewFleetLayout(rules.GridSize),
		validator: NewPlacementValidator(rules.GridSize),
	}
}

func (bp *basePlayer) Uuid() string {
	return bp.uuid
}

func (bp *basePlayer) Name() string {
	return bp.name
}

func (bp *basePlayer) Fleet() *FleetLayout {
	return bp.fleet
}

func (bp *basePlayer) PlaceShip(name string, origin Coordinates, orientation Orientation) error {
	ship, ok := bp.rules.Ship(name)
	if !ok {
		return cerr.ErrUnknownShip(name)
	}
	if bp.fleet.IsPlaced(name) {
		return cerr.ErrShipPlacedTwice(name)
	}
	if !bp.validator.FitsOnBoard(ship.Length, origin, orientation) {
		return cerr.ErrShipDoesNotFit(name, ship.Length, origin.Row, origin.Col)
	}
	if bp.validator.Overlaps(bp.fleet.Grid(), origin, orientation, ship.Length) {
		return cerr.ErrShipOverlaps(name, origin.Row, origin.Col)
	}

	bp.fleet.Deploy(name, ship.Length, origin, orientation)
	return nil
}

// DeployFleet places every ship not placed yet, in fleet order.
func (bp *basePlayer) DeployFleet(placer FleetPlacer) error {
	for _, ship := range bp.rules.Fleet {
		if bp.fleet.IsPlaced(ship.Name) {
			continue
		}

		origin, orientation, err := placer.Position(ship, bp.fleet.Grid(), bp.validator)
		if err != nil {
			return err
		}
		if err := bp.PlaceShip(ship.Name, origin, orientation); err != nil {
			return err
		}
	}
	return nil
}

func (bp *basePlayer) IsFleetDeployed() bool {
	for _, ship := range bp.rules.Fleet {
		if !bp.fleet.IsPlaced(ship.Name) {
			return false
		}
	}
	return true
}

// InteractivePlayer fires wherever the presentation layer tells it to.
type InteractivePlayer struct {
	basePlayer
	shotGrid Grid
	next     *Coordinates
}

var _ Player = (*InteractivePlayer)(nil)

func NewInteractivePlayer(rules Rules) *InteractivePlayer {
	return &InteractivePlayer{
		basePlayer: newBasePlayer(PlayerNameHuman, rules),
		shotGrid:   NewGrid(rules.GridSize),
	}
}

func (ip *InteractivePlayer) IsAutomated() bool {
	return false
}

func (ip *InteractivePlayer) ShotGrid() Grid {
	return ip.shotGrid
}

// SetNextTarget validates an attack position entered by the human. Both
// errors are recoverable: the caller asks again.
func (ip *InteractivePlayer) SetNextTarget(c Coordinates) error {
	if !ip.shotGrid.InBounds(c) {
		return cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}
	if ip.shotGrid.At(c).Attacked() {
		return cerr.ErrAttackPositionAlreadyFilled(c.Row, c.Col)
	}
	ip.next = &c
	return nil
}

func (ip *InteractivePlayer) ChooseTarget() (Coordinates, error) {
	if ip.next == nil {
		return Coordinates{}, cerr.ErrNoPendingTarget
	}
	return *ip.next, nil
}

func (ip *InteractivePlayer) RecordResult(c Coordinates, result ShotResult, sunkShip string) error {
	if ip.next == nil {
		return cerr.ErrResultWithoutTarget(c.Row, c.Col)
	}
	if *ip.next != c {
		return cerr.ErrUnexpectedResult(ip.next.Row, ip.next.Col, c.Row, c.Col)
	}
	ip.next = nil

	if result == ShotHit {
		ip.shotGrid.Set(c, CellHit)
	} else {
		ip.shotGrid.Set(c, CellMiss)
	}
	return nil
}

// AutomatedPlayer is the computer opponent.
type AutomatedPlayer struct {
	basePlayer
	engine *TargetingEngine
}

var _ Player = (*AutomatedPlayer)(nil)

func NewAutomatedPlayer(rules Rules) *AutomatedPlayer {
	return &AutomatedPlayer{
		basePlayer: newBasePlayer(PlayerNameComputer, rules),
		engine:     NewTargetingEngine(rules.GridSize, rules.Fleet),
	}
}

func (ap *AutomatedPlayer) IsAutomated() bool {
	return true
}

func (ap *AutomatedPlayer) ShotGrid() Grid {
	return ap.engine.ShotGrid()
}

func (ap *AutomatedPlayer) Engine() *TargetingEngine {
	return ap.engine
}

func (ap *AutomatedPlayer) ChooseTarget() (Coordinates, error) {
	return ap.engine.ChooseTarget()
}

func (ap *AutomatedPlayer) RecordResult(c Coordinates, result ShotResult, sunkShip string) error {
	return ap.engine.RecordResult(c, result, sunkShip)
}
