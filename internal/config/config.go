// Package config loads the server settings from the environment and the
// game settings (board size, fleet, column letters) from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	Stage          string
	Port           int
	DatabaseURL    string
	GameConfigPath string
}

// Load reads .env outside prod and then the environment.
func Load() (*Config, error) {
	if os.Getenv("STAGE") != StageProd {
		// a missing .env is fine in dev, the environment may already be set
		_ = godotenv.Load(".env")
	}

	stage := envOrDefault("STAGE", StageDev)
	if stage != StageDev && stage != StageProd {
		return nil, fmt.Errorf("stage must be either dev or prod, got: %s", stage)
	}

	port, err := strconv.Atoi(envOrDefault("PORT", "9191"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return &Config{
		Stage:          stage,
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		GameConfigPath: os.Getenv("GAME_CONFIG"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GameConfig is read once and never changed afterwards. PresetFleet is
// either empty or places every ship of Fleet.
type GameConfig struct {
	BoardSize   int
	Fleet       []mb.ShipSpec
	GridLetters map[string]int
	PresetFleet mb.FixedPlacer
}

type rawGameConfig struct {
	BoardSize   int                       `json:"board_size"`
	Ships       json.RawMessage           `json:"ships"`
	GridLetters map[string]int            `json:"grid_letters"`
	PresetFleet map[string]rawPresetPlace `json:"preset_fleet"`
}

type rawPresetPlace struct {
	Position    string         `json:"position"`
	Orientation mb.Orientation `json:"orientation"`
}

func DefaultGameConfig() GameConfig {
	rules := mb.DefaultRules()
	return GameConfig{
		BoardSize:   rules.GridSize,
		Fleet:       rules.Fleet,
		GridLetters: DefaultGridLetters(rules.GridSize),
	}
}

// DefaultGridLetters maps A, B, C... to 0, 1, 2...
func DefaultGridLetters(size int) map[string]int {
	letters := make(map[string]int, size)
	for i := 0; i < size; i++ {
		letters[string(rune('A'+i))] = i
	}
	return letters
}

// LoadGameConfig returns the default configuration for an empty path.
func LoadGameConfig(path string) (GameConfig, error) {
	if path == "" {
		return DefaultGameConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig decodes
//
//	{
//	  "board_size": 8,
//	  "ships": {"Carrier": 5, ...},
//	  "grid_letters": {"A": 0, ...},
//	  "preset_fleet": {"Carrier": {"position": "A1", "orientation": "H"}, ...}
//	}
//
// keeping the ships in the order they are written. grid_letters and
// preset_fleet are optional.
func ParseGameConfig(data []byte) (GameConfig, error) {
	var raw rawGameConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return GameConfig{}, fmt.Errorf("decode game config: %w", err)
	}
	if len(raw.Ships) == 0 {
		return GameConfig{}, cerr.ErrConfig("ships missing")
	}

	ships := orderedmap.New()
	if err := json.Unmarshal(raw.Ships, ships); err != nil {
		return GameConfig{}, fmt.Errorf("decode ships: %w", err)
	}

	fleet := make([]mb.ShipSpec, 0, len(ships.Keys()))
	for _, name := range ships.Keys() {
		value, _ := ships.Get(name)
		length, ok := value.(float64)
		if !ok || length != float64(int(length)) {
			return GameConfig{}, cerr.ErrConfig(fmt.Sprintf("length of %s must be an integer", name))
		}
		fleet = append(fleet, mb.ShipSpec{Name: name, Length: int(length)})
	}

	cfg := GameConfig{
		BoardSize:   raw.BoardSize,
		Fleet:       fleet,
		GridLetters: raw.GridLetters,
	}
	if cfg.GridLetters == nil {
		cfg.GridLetters = DefaultGridLetters(cfg.BoardSize)
	}

	if len(raw.PresetFleet) > 0 {
		cfg.PresetFleet = make(mb.FixedPlacer, len(raw.PresetFleet))
		for ship, place := range raw.PresetFleet {
			origin, err := cfg.ParsePosition(place.Position)
			if err != nil {
				return GameConfig{}, cerr.ErrConfig(fmt.Sprintf("preset position of %s: %v", ship, err))
			}
			cfg.PresetFleet[ship] = mb.Placement{Origin: origin, Orientation: place.Orientation}
		}
	}

	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

func (c GameConfig) Rules() mb.Rules {
	return mb.Rules{
		GridSize: c.BoardSize,
		Fleet:    append([]mb.ShipSpec(nil), c.Fleet...),
	}
}

func (c GameConfig) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}

	if len(c.GridLetters) != c.BoardSize {
		return cerr.ErrConfig(fmt.Sprintf("expected %d grid letters, got %d", c.BoardSize, len(c.GridLetters)))
	}
	used := make(map[int]string, len(c.GridLetters))
	for letter, col := range c.GridLetters {
		if len(letter) != 1 || letter != strings.ToUpper(letter) {
			return cerr.ErrConfig("grid letters must be single upper case characters, got " + letter)
		}
		if col < 0 || col >= c.BoardSize {
			return cerr.ErrConfig(fmt.Sprintf("grid letter %s maps outside the board: %d", letter, col))
		}
		if other, prs := used[col]; prs {
			return cerr.ErrConfig(fmt.Sprintf("grid letters %s and %s share column %d", other, letter, col))
		}
		used[col] = letter
	}

	return c.validatePresetFleet()
}

// validatePresetFleet deploys the preset on a scratch board so a bad preset
// fails at load time rather than on the first auto placement.
func (c GameConfig) validatePresetFleet() error {
	if len(c.PresetFleet) == 0 {
		return nil
	}
	if len(c.PresetFleet) != len(c.Fleet) {
		return cerr.ErrConfig(fmt.Sprintf("preset fleet places %d ships, fleet has %d", len(c.PresetFleet), len(c.Fleet)))
	}
	if err := mb.NewInteractivePlayer(c.Rules()).DeployFleet(c.PresetFleet); err != nil {
		return cerr.ErrConfig("preset fleet: " + err.Error())
	}
	return nil
}

// HumanPlacer is what auto placement uses for the human: the preset fleet
// when one is configured, otherwise a random placement drawn from rng.
func (c GameConfig) HumanPlacer(rng *rand.Rand) mb.FleetPlacer {
	if len(c.PresetFleet) > 0 {
		return c.PresetFleet
	}
	return mb.NewRandomPlacer(rng)
}

// ParsePosition turns "A2" into row 1, column 0. Rows are one-based on input.
func (c GameConfig) ParsePosition(position string) (mb.Coordinates, error) {
	position = strings.ToUpper(strings.TrimSpace(position))
	if len(position) < 2 {
		return mb.Coordinates{}, cerr.ErrPositionValue(position)
	}

	col, ok := c.GridLetters[position[:1]]
	if !ok {
		return mb.Coordinates{}, cerr.ErrPositionValue(position)
	}
	row, err := strconv.Atoi(position[1:])
	if err != nil {
		return mb.Coordinates{}, cerr.ErrPositionValue(position)
	}

	coords := mb.NewCoordinates(row-1, col)
	if coords.Row < 0 || coords.Row >= c.BoardSize {
		return mb.Coordinates{}, cerr.ErrXorYOutOfGridBound(coords.Row, coords.Col)
	}
	return coords, nil
}

// FormatPosition is the inverse of ParsePosition.
func (c GameConfig) FormatPosition(coords mb.Coordinates) string {
	for letter, col := range c.GridLetters {
		if col == coords.Col {
			return letter + strconv.Itoa(coords.Row+1)
		}
	}
	return fmt.Sprintf("?%d", coords.Row+1)
}

// ColumnLetters returns the letters in column order, for board headers.
func (c GameConfig) ColumnLetters() []string {
	letters := make([]string, 0, len(c.GridLetters))
	for letter := range c.GridLetters {
		letters = append(letters, letter)
	}
	sort.Slice(letters, func(i, j int) bool {
		return c.GridLetters[letters[i]] < c.GridLetters[letters[j]]
	})
	return letters
}
