package battleship

import (
	"math/rand"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"

	"github.com/google/uuid"
)

const (
	PlayerIndexHuman    = 0
	PlayerIndexComputer = 1
)

type OutcomeKind uint8

const (
	OutcomeMiss OutcomeKind = iota
	OutcomeHit
	OutcomeSunk
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return "miss"
	}
}

// AttackOutcome describes one shot. Presentation layers render it; nothing
// in this package prints.
type AttackOutcome struct {
	Attacker            string        `json:"attacker"`
	Coordinates         Coordinates   `json:"coordinates"`
	Kind                OutcomeKind   `json:"kind"`
	SunkShip            string        `json:"sunk_ship,omitempty"`
	SunkShipCoordinates []Coordinates `json:"sunk_ship_coordinates,omitempty"`
	GameOver            bool          `json:"game_over"`
	ShotNumber          int           `json:"shot_number"`
}

type Game struct {
	uuid       string
	rules      Rules
	players    [2]Player
	turn       int
	isFinished bool
	winner     int
	shots      [2]int
	createdAt  time.Time
	mu         sync.Mutex
}

// NewGame sets up a human against the computer. The computer's fleet is
// deployed right away with rng; the human places theirs before starting.
func NewGame(rules Rules, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	computer := NewAutomatedPlayer(rules)
	if err := computer.DeployFleet(NewRandomPlacer(rng)); err != nil {
		return nil, err
	}

	return &Game{
		uuid:      uuid.NewString()[:6],
		rules:     rules,
		players:   [2]Player{NewInteractivePlayer(rules), computer},
		turn:      PlayerIndexHuman,
		winner:    -1,
		createdAt: time.Now(),
	}, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) Human() *InteractivePlayer {
	return g.players[PlayerIndexHuman].(*InteractivePlayer)
}

func (g *Game) Computer() *AutomatedPlayer {
	return g.players[PlayerIndexComputer].(*AutomatedPlayer)
}

// returns the players in the order of human then computer.
func (g *Game) GetPlayers() []Player {
	return []Player{g.players[PlayerIndexHuman], g.players[PlayerIndexComputer]}
}

func (g *Game) CurrentPlayer() Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[g.turn]
}

func (g *Game) IsReadyToStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[PlayerIndexHuman].IsFleetDeployed() && g.players[PlayerIndexComputer].IsFleetDeployed()
}

func (g *Game) IsFinished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isFinished
}

func (g *Game) Winner() (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.winner < 0 {
		return nil, false
	}
	return g.players[g.winner], true
}

func (g *Game) Shots(playerIndex int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shots[playerIndex]
}

func (g *Game) PlaceHumanShip(name string, origin Coordinates, orientation Orientation) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[PlayerIndexHuman].PlaceShip(name, origin, orientation)
}

// DeployHumanFleet places every ship the human has not placed yet.
func (g *Game) DeployHumanFleet(placer FleetPlacer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players[PlayerIndexHuman].DeployFleet(placer)
}

// HumanAttack fires the human's shot at c. Out of range and repeated
// positions come back as recoverable errors.
func (g *Game) HumanAttack(c Coordinates) (AttackOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkTurn(PlayerIndexHuman); err != nil {
		return AttackOutcome{}, err
	}
	if err := g.Human().SetNextTarget(c); err != nil {
		return AttackOutcome{}, err
	}
	return g.playTurn()
}

func (g *Game) PlayComputerTurn() (AttackOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkTurn(PlayerIndexComputer); err != nil {
		return AttackOutcome{}, err
	}
	return g.playTurn()
}

func (g *Game) checkTurn(playerIndex int) error {
	if g.isFinished {
		return cerr.ErrGameFinished
	}
	for _, p := range g.players {
		if !p.IsFleetDeployed() {
			return cerr.ErrFleetNotDeployed
		}
	}
	if g.turn != playerIndex {
		return cerr.ErrTurnOf(g.players[g.turn].Name())
	}
	return nil
}

// playTurn fires the current player's shot and passes the turn unless it
// ended the game. Callers hold g.mu.
func (g *Game) playTurn() (AttackOutcome, error) {
	defender := g.players[1-g.turn]

	outcome, err := FireShot(g.players[g.turn], defender)
	if err != nil {
		return AttackOutcome{}, err
	}

	g.shots[g.turn]++
	outcome.ShotNumber = g.shots[g.turn]

	if outcome.GameOver {
		g.isFinished = true
		g.winner = g.turn
		return outcome, nil
	}

	g.turn = 1 - g.turn
	return outcome, nil
}

// FireShot runs choose, apply and record as one step: the attacker picks a
// cell, the defender's fleet takes the shot and the attacker learns the
// result. ShotNumber is left to the caller.
func FireShot(attacker, defender Player) (AttackOutcome, error) {
	c, err := attacker.ChooseTarget()
	if err != nil {
		return AttackOutcome{}, err
	}

	outcome := AttackOutcome{Attacker: attacker.Name(), Coordinates: c, Kind: OutcomeMiss}
	result := ShotMiss
	var sunkShip string

	if defender.Fleet().Grid().At(c) == CellOccupied {
		result = ShotHit
		outcome.Kind = OutcomeHit

		ship, sunk := defender.Fleet().RegisterHit(c)
		if sunk {
			sunkShip = ship
			outcome.Kind = OutcomeSunk
			outcome.SunkShip = ship
			outcome.SunkShipCoordinates = defender.Fleet().ShipCoordinates(ship)
		}
	}

	if err := attacker.RecordResult(c, result, sunkShip); err != nil {
		return AttackOutcome{}, err
	}

	outcome.GameOver = defender.Fleet().IsFleetDestroyed()
	return outcome, nil
}
