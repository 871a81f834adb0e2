package api

import (
	"encoding/json"

	"github.com/saeidalz13/battleship-ai/internal/config"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/saeidalz13/battleship-ai/internal/logger"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

// Every incoming valid request will have this structure.
// Handlers never fail the session; problems go back in Message.Error.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func (r Request) HandleCreateGame(gm mb.GameManager, cfg config.GameConfig) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	game, err := gm.CreateGame(cfg.Rules())
	if err != nil {
		resp.Fail(err, "failed to create game")
		return nil, resp
	}

	l := logger.ForGame(game.Uuid())
	l.Info().Int("board_size", cfg.BoardSize).Int("ships", len(cfg.Fleet)).Msg("game created")

	resp.AddPayload(mc.RespCreateGame{
		GameUuid:      game.Uuid(),
		BoardSize:     cfg.BoardSize,
		Fleet:         cfg.Fleet,
		ColumnLetters: cfg.ColumnLetters(),
	})
	return game, resp
}

// Placement rejections are recoverable, the client simply tries again.
func (r Request) HandlePlaceShip(game *mb.Game, cfg config.GameConfig) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	if game == nil {
		resp.Fail(cerr.ErrNoActiveGame, "create a game first")
		return resp
	}

	var req mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.Fail(err, "invalid place ship payload")
		return resp
	}

	origin, err := resolvePosition(cfg, req.Payload.Position, req.Payload.Row, req.Payload.Col)
	if err != nil {
		resp.Fail(err, "invalid position")
		return resp
	}
	if req.Payload.Orientation == mb.OrientationNone {
		resp.Fail(cerr.ErrOrientationValue(""), "invalid orientation")
		return resp
	}

	if err := game.PlaceHumanShip(req.Payload.Ship, origin, req.Payload.Orientation); err != nil {
		resp.Fail(err, "ship could not be placed")
		return resp
	}

	human := game.Human()
	resp.AddPayload(mc.RespPlaceShip{
		Ship:           req.Payload.Ship,
		Coordinates:    human.Fleet().ShipCoordinates(req.Payload.Ship),
		ShipGrid:       human.Fleet().Grid().Snapshot(),
		RemainingShips: unplacedShips(game),
	})
	return resp
}

// Auto placement only fills ships the human has not placed yet.
func (r Request) HandleAutoPlaceFleet(game *mb.Game, gm mb.GameManager, cfg config.GameConfig) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodeAutoPlaceFleet)
	if game == nil {
		resp.Fail(cerr.ErrNoActiveGame, "create a game first")
		return resp
	}

	if err := game.DeployHumanFleet(cfg.HumanPlacer(gm.NewRand())); err != nil {
		resp.Fail(err, "fleet could not be placed")
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipGrid:       game.Human().Fleet().Grid().Snapshot(),
		RemainingShips: unplacedShips(game),
	})
	return resp
}

func (r Request) HandleStartGame(game *mb.Game) mc.Message[mc.RespStartGame] {
	resp := mc.NewMessage[mc.RespStartGame](mc.CodeStartGame)
	if game == nil {
		resp.Fail(cerr.ErrNoActiveGame, "create a game first")
		return resp
	}
	if !game.IsReadyToStart() {
		resp.Fail(cerr.ErrFleetNotDeployed, "place all ships before starting")
		return resp
	}

	resp.AddPayload(mc.RespStartGame{IsTurn: !game.CurrentPlayer().IsAutomated()})
	return resp
}

// HandleAttack plays the human's shot and, if the game goes on, the
// computer's reply. computerMsg and endMsg are nil when there is nothing
// to send for them.
func (r Request) HandleAttack(game *mb.Game, cfg config.GameConfig) (
	humanMsg mc.Message[mc.RespAttack],
	computerMsg *mc.Message[mc.RespAttack],
	endMsg *mc.Message[mc.RespEndGame],
) {
	humanMsg = mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	if game == nil {
		humanMsg.Fail(cerr.ErrNoActiveGame, "create a game first")
		return humanMsg, nil, nil
	}

	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		humanMsg.Fail(err, "invalid attack payload")
		return humanMsg, nil, nil
	}

	target, err := resolvePosition(cfg, req.Payload.Position, req.Payload.Row, req.Payload.Col)
	if err != nil {
		humanMsg.Fail(err, "invalid position")
		return humanMsg, nil, nil
	}

	outcome, err := game.HumanAttack(target)
	if err != nil {
		humanMsg.Fail(err, "failed to handle attack request")
		return humanMsg, nil, nil
	}

	humanMsg.AddPayload(mc.RespAttack{
		Outcome:  outcome,
		Position: cfg.FormatPosition(outcome.Coordinates),
		ShotGrid: game.Human().ShotGrid().Snapshot(),
		IsTurn:   false,
	})
	if outcome.GameOver {
		return humanMsg, nil, newEndGameMsg(game)
	}

	l := logger.ForGame(game.Uuid())

	reply := mc.NewMessage[mc.RespAttack](mc.CodeComputerAttack)
	computerOutcome, err := game.PlayComputerTurn()
	if err != nil {
		// the engine ran out of cells before the game ended
		l.Error().Err(err).Msg("computer could not play its turn")
		reply.Fail(err, "computer failed to attack")
		return humanMsg, &reply, nil
	}

	l.Debug().
		Str("position", cfg.FormatPosition(computerOutcome.Coordinates)).
		Str("kind", computerOutcome.Kind.String()).
		Str("state", game.Computer().Engine().State().String()).
		Msg("computer attacked")

	reply.AddPayload(mc.RespAttack{
		Outcome:  computerOutcome,
		Position: cfg.FormatPosition(computerOutcome.Coordinates),
		ShotGrid: game.Computer().ShotGrid().Snapshot(),
		IsTurn:   !computerOutcome.GameOver,
	})
	if computerOutcome.GameOver {
		return humanMsg, &reply, newEndGameMsg(game)
	}
	return humanMsg, &reply, nil
}

func newEndGameMsg(game *mb.Game) *mc.Message[mc.RespEndGame] {
	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)

	var winnerName string
	if winner, ok := game.Winner(); ok {
		winnerName = winner.Name()
	}
	msg.AddPayload(mc.RespEndGame{
		Winner:        winnerName,
		HumanShots:    game.Shots(mb.PlayerIndexHuman),
		ComputerShots: game.Shots(mb.PlayerIndexComputer),

		HumanShipsSunk:    game.Human().Fleet().SunkShips(),
		ComputerShipsSunk: game.Computer().Fleet().SunkShips(),
	})
	return &msg
}

func resolvePosition(cfg config.GameConfig, position string, row, col int) (mb.Coordinates, error) {
	if position != "" {
		return cfg.ParsePosition(position)
	}
	return mb.NewCoordinates(row, col), nil
}

func unplacedShips(game *mb.Game) []string {
	remaining := make([]string, 0, len(game.Rules().Fleet))
	for _, ship := range game.Rules().Fleet {
		if !game.Human().Fleet().IsPlaced(ship.Name) {
			remaining = append(remaining, ship.Name)
		}
	}
	return remaining
}
