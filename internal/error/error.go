package error

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("position is out of grid bound")
	ErrOverlap            = errors.New("ship overlaps another ship")
	ErrAlreadyAttacked    = errors.New("position already attacked")
	ErrNoTargetsLeft      = errors.New("no unattacked position left")
	ErrResultMismatch     = errors.New("result does not match the last chosen target")
	ErrGameNotExists      = errors.New("game does not exist")
	ErrShipNotInFleet     = errors.New("ship is not part of the fleet")
	ErrShipAlreadyPlaced  = errors.New("ship is already placed")
	ErrFleetNotDeployed   = errors.New("fleet is not fully deployed")
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotPlayersTurn     = errors.New("not this player's turn")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidPosition    = errors.New("invalid position")
	ErrNoPendingTarget    = errors.New("no target set for interactive player")
	ErrInvalidConfig      = errors.New("invalid game configuration")
	ErrSessionNotExists   = errors.New("session does not exist")
	ErrNoActiveGame       = errors.New("session has no active game")
)

func ErrGameNotExistsUuid(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotExists, sessionId)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrAttackPositionAlreadyFilled(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAlreadyAttacked, row, col)
}

func ErrShipDoesNotFit(ship string, length, row, col int) error {
	return fmt.Errorf("%w\tship: %s\tlength: %d\trow: %d\tcol: %d", ErrOutOfBounds, ship, length, row, col)
}

func ErrShipOverlaps(ship string, row, col int) error {
	return fmt.Errorf("%w\tship: %s\trow: %d\tcol: %d", ErrOverlap, ship, row, col)
}

func ErrUnknownShip(ship string) error {
	return fmt.Errorf("%w: %s", ErrShipNotInFleet, ship)
}

func ErrShipPlacedTwice(ship string) error {
	return fmt.Errorf("%w: %s", ErrShipAlreadyPlaced, ship)
}

func ErrUnexpectedResult(expectedRow, expectedCol, row, col int) error {
	return fmt.Errorf("%w\texpected: (%d, %d)\tgot: (%d, %d)", ErrResultMismatch, expectedRow, expectedCol, row, col)
}

func ErrResultWithoutTarget(row, col int) error {
	return fmt.Errorf("%w\tno target pending\tgot: (%d, %d)", ErrResultMismatch, row, col)
}

func ErrTurnOf(player string) error {
	return fmt.Errorf("%w: %s", ErrNotPlayersTurn, player)
}

func ErrOrientationValue(value string) error {
	return fmt.Errorf("%w: %q, must be H or V", ErrInvalidOrientation, value)
}

func ErrPositionValue(value string) error {
	return fmt.Errorf("%w: %q, expected a letter followed by a row number (e.g. A2)", ErrInvalidPosition, value)
}

func ErrConfig(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, reason)
}
