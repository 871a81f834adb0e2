package sqlc

import (
	"context"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

var testInet = pqtype.Inet{
	IPNet: net.IPNet{IP: net.IPv4(10, 0, 0, 7).To4(), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newMockManager(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDbManager(New(db)).Analytics, mock
}

func TestAnalyticsManager(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		run    func(a *AnalyticsManager) error
	}{
		{
			name: "increment games created",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_created)")).
					WithArgs(testInet).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			run: func(a *AnalyticsManager) error {
				return a.IncrementGamesCreatedCount(ctx, testInet)
			},
		},
		{
			name: "record a computer win",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_finished, computer_wins, total_shots)")).
					WithArgs(testInet, int64(1), int64(61)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			run: func(a *AnalyticsManager) error {
				return a.RecordGameFinished(ctx, testInet, true, 61)
			},
		},
		{
			name: "record a human win",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_finished, computer_wins, total_shots)")).
					WithArgs(testInet, int64(0), int64(40)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			run: func(a *AnalyticsManager) error {
				return a.RecordGameFinished(ctx, testInet, false, 40)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, mock := newMockManager(t)
			test.expect(mock)

			if err := test.run(a); err != nil {
				t.Fatal(err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestAnalyticsReads(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	a, mock := newMockManager(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT server_ip, games_created, games_finished, computer_wins, total_shots")).
		WithArgs(testInet).
		WillReturnRows(sqlmock.NewRows([]string{"server_ip", "games_created", "games_finished", "computer_wins", "total_shots"}).
			AddRow("10.0.0.7/32", 3, 2, 1, 101))

	summary, err := a.GetSummary(ctx, testInet)
	if err != nil {
		t.Fatalf("failed to fetch summary: %v", err)
	}
	if summary.GamesCreated != 3 || summary.GamesFinished != 2 || summary.ComputerWins != 1 || summary.TotalShots != 101 {
		t.Fatalf("expected 3 created, 2 finished, 1 computer win, 101 shots\tgot: %+v", summary)
	}
	if summary.ServerIp.IPNet.IP.String() != "10.0.0.7" {
		t.Fatalf("expected server ip: 10.0.0.7\tgot: %s", summary.ServerIp.IPNet.IP)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestAnalyticsWithoutDatabase(t *testing.T) {
	a := NewDbManager(nil).Analytics
	if a.Enabled() {
		t.Fatal("expected analytics to be disabled")
	}

	ctx := context.Background()
	if err := a.IncrementGamesCreatedCount(ctx, testInet); err != nil {
		t.Fatal(err)
	}
	if err := a.RecordGameFinished(ctx, testInet, true, 30); err != nil {
		t.Fatal(err)
	}
	summary, err := a.GetSummary(ctx, testInet)
	if err != nil || summary.GamesCreated != 0 || !summary.ServerIp.IPNet.IP.Equal(testInet.IPNet.IP) {
		t.Fatalf("expected an empty summary\tgot: %+v %v", summary, err)
	}
}
