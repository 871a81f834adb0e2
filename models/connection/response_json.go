package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid      string        `json:"game_uuid"`
	BoardSize     int           `json:"board_size"`
	Fleet         []mb.ShipSpec `json:"fleet"`
	ColumnLetters []string      `json:"column_letters"`
}

type RespPlaceShip struct {
	Ship           string           `json:"ship"`
	Coordinates    []mb.Coordinates `json:"coordinates"`
	ShipGrid       mb.Grid          `json:"ship_grid"`
	RemainingShips []string         `json:"remaining_ships"`
}

type RespStartGame struct {
	IsTurn bool `json:"is_turn"`
}

type RespAttack struct {
	Outcome  mb.AttackOutcome `json:"outcome"`
	Position string           `json:"position"`

	// Attacker's view of the defender's board after this shot
	ShotGrid mb.Grid `json:"shot_grid"`
	IsTurn   bool    `json:"is_turn"`
}

// Sunk lists are in the order the ships were deployed.
type RespEndGame struct {
	Winner            string   `json:"winner"`
	HumanShots        int      `json:"human_shots"`
	ComputerShots     int      `json:"computer_shots"`
	HumanShipsSunk    []string `json:"human_ships_sunk"`
	ComputerShipsSunk []string `json:"computer_ships_sunk"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
