package battleship

import (
	"math/rand"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type GameManager interface {
	CreateGame(rules Rules) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int
	NewRand() *rand.Rand
}

type BattleshipGameManager struct {
	games map[string]*Game
	rng   *rand.Rand
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return NewSeededGameManager(time.Now().UnixNano())
}

// NewSeededGameManager makes computer fleet placement reproducible.
func NewSeededGameManager(seed int64) *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (bgm *BattleshipGameManager) CreateGame(rules Rules) (*Game, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	// each game gets its own source so games never share rng state
	game, err := NewGame(rules, rand.New(rand.NewSource(bgm.rng.Int63())))
	if err != nil {
		return nil, err
	}

	bgm.games[game.Uuid()] = game
	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExistsUuid(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

// NewRand hands out a source derived from the manager's own, for callers
// that randomize on behalf of a game (e.g. auto placing the human's fleet).
func (bgm *BattleshipGameManager) NewRand() *rand.Rand {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()
	return rand.New(rand.NewSource(bgm.rng.Int63()))
}
