package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-ai/db/sqlc"
	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/internal/logger"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// a full board snapshot is well below this
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	gameConfig     config.GameConfig
	ipnet          net.IPNet
}

// NewRequestProcessor accepts a nil Querier, in which case analytics are
// not recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
	gameConfig config.GameConfig,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      sqlc.NewDbManager(q).Analytics,
		gameConfig:     gameConfig,
		ipnet:          getServerIpNet(),
	}
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("could not upgrade connection")
		return
	}

	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("a new connection established")
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		session.Conn().Close()
		rp.sessionManager.TerminateSession(session.Id())
		log.Info().Str("session", session.Id()).Msg("session closed")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		// the cleanup may have dropped this session while we were reading
		if _, err := rp.sessionManager.FindSession(session.Id()); err != nil {
			log.Info().Err(err).Str("session", session.Id()).Msg("session expired")
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)

		switch signal.Code {

		// A rematch is a create game that throws away the current one
		case mc.CodeCreateGame, mc.CodeRematch:
			if previous := session.Game(); previous != nil {
				rp.gameManager.TerminateGame(previous.Uuid())
				session.SetGame(nil)
			}

			game, respMsg := req.HandleCreateGame(rp.gameManager, rp.gameConfig)
			respMsg.Code = signal.Code
			if game != nil {
				session.SetGame(game)
				rp.recordGameCreated()
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			respMsg := req.HandlePlaceShip(session.Game(), rp.gameConfig)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAutoPlaceFleet:
			respMsg := req.HandleAutoPlaceFleet(session.Game(), rp.gameManager, rp.gameConfig)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeStartGame:
			respMsg := req.HandleStartGame(session.Game())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The human fires, and unless that ended the game the computer
		// fires back straight away. Each shot is its own message.
		case mc.CodeAttack:
			humanMsg, computerMsg, endMsg := req.HandleAttack(session.Game(), rp.gameConfig)

			if err := rp.sessionManager.WriteToSessionConn(session, humanMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if humanMsg.Failed() {
				continue sessionLoop
			}

			if computerMsg != nil {
				if err := rp.sessionManager.WriteToSessionConn(session, *computerMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

			if endMsg != nil {
				rp.recordGameFinished(session.Game())
				if err := rp.sessionManager.WriteToSessionConn(session, *endMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// Analytics failures are logged and never end the game.
func (rp RequestProcessor) recordGameCreated() {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := rp.analytics.IncrementGamesCreatedCount(ctx, rp.serverInet()); err != nil {
		log.Error().Err(err).Msg("failed to increment games created")
	}
}

func (rp RequestProcessor) recordGameFinished(game *mb.Game) {
	winner, ok := game.Winner()
	if !ok {
		return
	}
	computerWon := winner.IsAutomated()
	shots := game.Shots(mb.PlayerIndexHuman) + game.Shots(mb.PlayerIndexComputer)

	l := logger.ForGame(game.Uuid())
	l.Info().Str("winner", winner.Name()).Int("shots", shots).Msg("game finished")

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := rp.analytics.RecordGameFinished(ctx, rp.serverInet(), computerWon, shots); err != nil {
		l.Error().Err(err).Msg("failed to record finished game")
	}
}
