package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-ai/db/sqlc"
)

type RespAnalytics struct {
	ServerIp      string `json:"server_ip"`
	GamesCreated  int64  `json:"games_created"`
	GamesFinished int64  `json:"games_finished"`
	ComputerWins  int64  `json:"computer_wins"`
	TotalShots    int64  `json:"total_shots"`
	ActiveGames   int    `json:"active_games"`
	Sessions      int    `json:"sessions"`
	Persisted     bool   `json:"persisted"`
}

// HandleAnalytics reports the counters of this server. A server that has
// not recorded anything yet reports zeros.
func (rp RequestProcessor) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	summary, err := rp.analytics.GetSummary(ctx, rp.serverInet())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Msg("failed to fetch analytics")
		http.Error(w, "failed to fetch analytics", http.StatusInternalServerError)
		return
	}

	resp := RespAnalytics{
		ServerIp:      rp.ipnet.IP.String(),
		GamesCreated:  summary.GamesCreated,
		GamesFinished: summary.GamesFinished,
		ComputerWins:  summary.ComputerWins,
		TotalShots:    summary.TotalShots,
		ActiveGames:   rp.gameManager.CountGames(),
		Sessions:      rp.sessionManager.CountSessions(),
		Persisted:     rp.analytics.Enabled(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to write analytics response")
	}
}
