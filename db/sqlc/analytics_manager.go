package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

// Every analytics query runs under this timeout.
const QuerierCtxTimeout = time.Second * 10

type DbManager struct {
	Analytics *AnalyticsManager
}

// NewDbManager accepts a nil Querier when no database is configured.
func NewDbManager(queries Querier) DbManager {
	return DbManager{Analytics: NewAnalyticsManager(queries)}
}

// AnalyticsManager keeps aggregate counters per server. With a nil Querier
// every call is a no-op, which is how the server runs without a database.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a.queries != nil
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) RecordGameFinished(ctx context.Context, serverIpNet pqtype.Inet, computerWon bool, shots int) error {
	if !a.Enabled() {
		return nil
	}

	var computerWins int64
	if computerWon {
		computerWins = 1
	}
	return a.queries.RecordGameFinished(ctx, RecordGameFinishedParams{
		ServerIp:     serverIpNet,
		ComputerWins: computerWins,
		TotalShots:   int64(shots),
	})
}

func (a *AnalyticsManager) GetSummary(ctx context.Context, serverIpNet pqtype.Inet) (GetGameServerAnalyticsRow, error) {
	if !a.Enabled() {
		return GetGameServerAnalyticsRow{ServerIp: serverIpNet}, nil
	}
	return a.queries.GetGameServerAnalytics(ctx, serverIpNet)
}
