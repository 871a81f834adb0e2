package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// Positions can be sent either as row/col or as a board position like "A2".
// Position wins when both are present.

type ReqPlaceShip struct {
	Ship        string         `json:"ship"`
	Row         int            `json:"row"`
	Col         int            `json:"col"`
	Position    string         `json:"position,omitempty"`
	Orientation mb.Orientation `json:"orientation"`
}

type ReqAttack struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Position string `json:"position,omitempty"`
}
