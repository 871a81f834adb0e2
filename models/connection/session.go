package connection

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	maxReadWsRetries  uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

// A session is one websocket connection playing one game at a time.
type Session struct {
	id        string
	conn      *websocket.Conn
	game      *mb.Game
	createdAt time.Time
	backOff   time.Duration
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		backOff:   time.Second,
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.game = game
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Warn().Err(err).Str("session", s.id).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn().Err(err).Str("session", s.id).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Info().Err(err).Str("session", s.id).Msg("close error")
		return ConnLoopBreak
	}

	/*
		CloseUnsupportedData (1003) and CloseInvalidFramePayloadData (1007)
		mean the client is probably not ours. Break instead of reading more
		invalid payloads.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation) {
		log.Warn().Err(err).Str("session", s.id).Msg("non-critical error")
		return ConnLoopBreak
	}

	log.Error().Err(err).Str("session", s.id).Msg("unexpected error")
	return ConnLoopBreak
}

// Writes to the connection of that session. Timeouts and try-again-later
// closes are retried with a growing back off, anything else breaks.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

writeJsonLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Warn().Str("session", s.id).Uint8("retry", retries).Msg("writing to ws failed; retrying")
				time.Sleep(time.Duration(retries*backOffFactor) * s.backOff)
				continue writeJsonLoop
			}
			return NewConnErr(ConnLoopBreak).AddDesc("max write retries reached").Wrap(err)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop").Wrap(err)
		}
	}
}

func (s *Session) readFromConnWithRetry() (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := s.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		if s.onConnErr(err) == ConnLoopRetry && retries < maxReadWsRetries {
			retries++
			continue
		}
		return -1, nil, NewConnErr(ConnLoopBreak).AddDesc("breaking read loop").Wrap(err)
	}
}
