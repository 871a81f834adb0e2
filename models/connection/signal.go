package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame
	CodePlaceShip
	CodeAutoPlaceFleet
	CodeStartGame
	CodeAttack

	// Sent right after the human's attack response when the computer
	// has fired back
	CodeComputerAttack
	CodeEndGame

	// Throw away the current game and start a fresh one
	CodeRematch
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
