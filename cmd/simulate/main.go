// Command simulate lets the targeting engine sink randomly placed fleets and
// reports how many shots it needed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/internal/logger"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type summary struct {
	Games   int     `json:"games"`
	Errors  int     `json:"errors"`
	MinShot int     `json:"min_shots"`
	MaxShot int     `json:"max_shots"`
	Mean    float64 `json:"mean_shots"`
	Median  int     `json:"median_shots"`
}

func main() {
	logger.Init()

	var (
		numGames   int
		workers    int
		seed       int64
		configPath string
		jsonOut    bool
	)

	flag.IntVar(&numGames, "n", 100, "Number of games to run")
	flag.IntVar(&workers, "workers", 4, "Concurrency (parallel games)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.StringVar(&configPath, "config", "", "Game config JSON (default 8x8 classic fleet)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.Parse()

	gameConfig, err := config.LoadGameConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game config")
	}
	if seed == 0 {
		seed = rand.Int63()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shots, errCount := runGames(ctx, gameConfig.Rules(), numGames, workers, seed)
	s := summarize(shots, errCount)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			log.Fatal().Err(err).Msg("failed to encode summary")
		}
		return
	}

	log.Info().
		Int64("seed", seed).
		Int("games", s.Games).
		Int("errors", s.Errors).
		Int("min", s.MinShot).
		Int("max", s.MaxShot).
		Int("median", s.Median).
		Str("mean", fmt.Sprintf("%.2f", s.Mean)).
		Msg("simulation finished")
}

// runGames plays numGames with seeds seed, seed+1, ... and returns the shot
// counts of the games that completed.
func runGames(ctx context.Context, rules mb.Rules, numGames, workers int, seed int64) ([]int, int) {
	if workers < 1 {
		workers = 1
	}

	results := make([]int, 0, numGames)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < numGames; i++ {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			shots, err := playOut(rules, rand.New(rand.NewSource(seed+int64(idx))))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errCount++
				log.Error().Err(err).Int("game", idx).Msg("game failed")
				return
			}
			results = append(results, shots)
			log.Debug().Int("game", idx).Int("shots", shots).Msg("game done")
		}(i)
	}

	wg.Wait()
	return results, errCount
}

// playOut deploys a random fleet and lets the computer fire at it through
// the same shot step the game uses until every ship is sunk.
func playOut(rules mb.Rules, rng *rand.Rand) (int, error) {
	defender := mb.NewInteractivePlayer(rules)
	if err := defender.DeployFleet(mb.NewRandomPlacer(rng)); err != nil {
		return 0, err
	}
	computer := mb.NewAutomatedPlayer(rules)

	limit := rules.GridSize * rules.GridSize
	for shots := 1; shots <= limit; shots++ {
		outcome, err := mb.FireShot(computer, defender)
		if err != nil {
			return 0, err
		}
		if outcome.GameOver {
			return shots, nil
		}
	}
	return 0, fmt.Errorf("fleet still afloat after %d shots", limit)
}

func summarize(shots []int, errCount int) summary {
	s := summary{Games: len(shots), Errors: errCount}
	if len(shots) == 0 {
		return s
	}

	sorted := append([]int(nil), shots...)
	sort.Ints(sorted)

	total := 0
	for _, n := range sorted {
		total += n
	}
	s.MinShot = sorted[0]
	s.MaxShot = sorted[len(sorted)-1]
	s.Median = sorted[len(sorted)/2]
	s.Mean = float64(total) / float64(len(sorted))
	return s
}
