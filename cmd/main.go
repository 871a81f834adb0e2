package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/internal/logger"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gameConfig, err := config.LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game config")
	}

	// without DATABASE_URL the server runs and analytics are skipped
	var querier sqlc.Querier
	if cfg.DatabaseURL != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseURL, db.DefaultMigrationDir)
		defer psqlDb.Close()
		querier = sqlc.New(psqlDb)
	} else {
		log.Warn().Msg("DATABASE_URL not set, analytics disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionManager := mc.NewBattleshipSessionManager()
	go sessionManager.CleanupPeriodically(ctx)

	gameManager := mb.NewBattleshipGameManager()
	rp := api.NewRequestProcessor(sessionManager, gameManager, querier, gameConfig)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	mux.HandleFunc("GET /analytics", rp.HandleAnalytics)

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("stage", cfg.Stage).
		Int("port", cfg.Port).
		Int("board_size", gameConfig.BoardSize).
		Msg("listening")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
