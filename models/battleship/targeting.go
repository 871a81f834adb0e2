package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type ShotResult uint8

const (
	ShotMiss ShotResult = iota
	ShotHit
)

func (r ShotResult) String() string {
	if r == ShotHit {
		return "hit"
	}
	return "miss"
}

type TargetingState uint8

const (
	StateHunting TargetingState = iota
	StatePursuingUndirected
	StatePursuingDirected
)

func (s TargetingState) String() string {
	switch s {
	case StatePursuingUndirected:
		return "pursuing-undirected"
	case StatePursuingDirected:
		return "pursuing-directed"
	default:
		return "hunting"
	}
}

// TargetingEngine picks the computer's shots. With nothing to follow up it
// hunts using ProbabilityMap; after a hit it works through a FIFO queue of
// cells likely to extend the struck ship. The only knowledge it has of the
// opponent is what came back through RecordResult.
type TargetingEngine struct {
	shotGrid    Grid
	shipLengths []int

	lastHit        *Coordinates
	pendingTargets []Coordinates
	orientation    Orientation

	// the coordinate returned by ChooseTarget that still awaits its result
	awaiting *Coordinates
}

func NewTargetingEngine(gridSize int, fleet []ShipSpec) *TargetingEngine {
	lengths := make([]int, 0, len(fleet))
	for _, ship := range fleet {
		lengths = append(lengths, ship.Length)
	}

	return &TargetingEngine{
		shotGrid:    NewGrid(gridSize),
		shipLengths: lengths,
	}
}

func (e *TargetingEngine) ShotGrid() Grid {
	return e.shotGrid
}

func (e *TargetingEngine) State() TargetingState {
	switch {
	case e.lastHit == nil:
		return StateHunting
	case e.orientation == OrientationNone:
		return StatePursuingUndirected
	default:
		return StatePursuingDirected
	}
}

func (e *TargetingEngine) LastHit() (Coordinates, bool) {
	if e.lastHit == nil {
		return Coordinates{}, false
	}
	return *e.lastHit, true
}

func (e *TargetingEngine) Orientation() Orientation {
	return e.orientation
}

func (e *TargetingEngine) PendingTargets() []Coordinates {
	return append([]Coordinates(nil), e.pendingTargets...)
}

// ChooseTarget returns the next cell to fire at. It never returns a cell
// already in the shot grid. Calling it again before RecordResult returns the
// same cell.
func (e *TargetingEngine) ChooseTarget() (Coordinates, error) {
	if e.awaiting != nil {
		return *e.awaiting, nil
	}

	for {
		if target, ok := e.dequeue(); ok {
			e.awaiting = &target
			return target, nil
		}

		switch e.State() {
		case StatePursuingDirected:
			// Both ends of the line are closed and the ship still floats.
			// Try across the line before giving up on it.
			axis := e.orientation
			e.orientation = OrientationNone
			e.enqueueFresh(perpendicularNeighbours(*e.lastHit, axis)...)

		case StatePursuingUndirected:
			e.reset()

		default:
			target, err := ChooseHeatTarget(e.shotGrid, ProbabilityMap(e.shotGrid, e.shipLengths))
			if err != nil {
				return target, err
			}
			e.awaiting = &target
			return target, nil
		}
	}
}

// RecordResult feeds back the outcome of the shot last returned by
// ChooseTarget. sunkShip is non-empty when the shot sank a ship.
func (e *TargetingEngine) RecordResult(c Coordinates, result ShotResult, sunkShip string) error {
	if e.awaiting == nil {
		return cerr.ErrResultWithoutTarget(c.Row, c.Col)
	}
	if *e.awaiting != c {
		return cerr.ErrUnexpectedResult(e.awaiting.Row, e.awaiting.Col, c.Row, c.Col)
	}
	e.awaiting = nil

	if result == ShotMiss {
		e.shotGrid.Set(c, CellMiss)
		return nil
	}
	e.shotGrid.Set(c, CellHit)

	if sunkShip != "" {
		e.reset()
		return nil
	}

	if e.lastHit == nil {
		e.startPursuit(c)
		return nil
	}

	previous := *e.lastHit
	switch {
	case c.Row == previous.Row:
		e.direct(previous, c, OrientationHorizontal)
	case c.Col == previous.Col:
		e.direct(previous, c, OrientationVertical)
	default:
		// Not on a line with the previous hit, treat it as a new lead.
		e.startPursuit(c)
	}
	return nil
}

func (e *TargetingEngine) startPursuit(c Coordinates) {
	e.lastHit = &c
	e.orientation = OrientationNone
	e.pendingTargets = e.pendingTargets[:0]
	e.enqueueFresh(c.Left(), c.Right(), c.Up(), c.Down())
}

// direct sets the axis from two hits and queues the cells just beyond both
// ends of the known span, lower end first. Queued cells still on the same
// line follow them; cells off the line are dropped.
func (e *TargetingEngine) direct(previous, c Coordinates, axis Orientation) {
	e.lastHit = &c
	e.orientation = axis

	var kept []Coordinates
	for _, t := range e.pendingTargets {
		if onLine(t, c, axis) {
			kept = append(kept, t)
		}
	}

	lo, hi := previous, c
	if axisIndex(hi, axis) < axisIndex(lo, axis) {
		lo, hi = hi, lo
	}

	e.pendingTargets = make([]Coordinates, 0, len(kept)+2)
	e.enqueueFresh(e.beyond(lo, axis, -1), e.beyond(hi, axis, 1))
	e.enqueueFresh(kept...)
}

// beyond walks from end in direction dir past consecutive hits and returns
// the first cell that is not a hit.
func (e *TargetingEngine) beyond(end Coordinates, axis Orientation, dir int) Coordinates {
	next := step(end, axis, dir)
	for e.shotGrid.InBounds(next) && e.shotGrid.At(next) == CellHit {
		next = step(next, axis, dir)
	}
	return next
}

func (e *TargetingEngine) enqueueFresh(candidates ...Coordinates) {
	for _, c := range candidates {
		if !e.shotGrid.IsFresh(c) || e.isQueued(c) {
			continue
		}
		e.pendingTargets = append(e.pendingTargets, c)
	}
}

func (e *TargetingEngine) isQueued(c Coordinates) bool {
	for _, t := range e.pendingTargets {
		if t == c {
			return true
		}
	}
	return false
}

// dequeue pops the front of the queue, dropping cells fired at since they
// were queued.
func (e *TargetingEngine) dequeue() (Coordinates, bool) {
	for len(e.pendingTargets) > 0 {
		var next Coordinates
		next, e.pendingTargets = e.pendingTargets[0], e.pendingTargets[1:]
		if e.shotGrid.IsFresh(next) {
			return next, true
		}
	}
	return Coordinates{}, false
}

func (e *TargetingEngine) reset() {
	e.lastHit = nil
	e.orientation = OrientationNone
	e.pendingTargets = nil
}

func perpendicularNeighbours(c Coordinates, axis Orientation) []Coordinates {
	if axis == OrientationHorizontal {
		return []Coordinates{c.Up(), c.Down()}
	}
	return []Coordinates{c.Left(), c.Right()}
}

func onLine(t, c Coordinates, axis Orientation) bool {
	if axis == OrientationHorizontal {
		return t.Row == c.Row
	}
	return t.Col == c.Col
}

func axisIndex(c Coordinates, axis Orientation) int {
	if axis == OrientationHorizontal {
		return c.Col
	}
	return c.Row
}
