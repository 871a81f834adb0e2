package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	CountSessions() int
	CleanupPeriodically(ctx context.Context)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 30,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// Sessions older than the cleanup interval are considered dangling and
// removed. Runs until ctx is done.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanup()
		}
	}
}

func (bsm *BattleshipSessionManager) cleanup() {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if time.Since(session.createdAt) > bsm.cleanupInterval {
			delete(bsm.sessions, id)
			log.Info().Str("session", id).Msg("removed stale session")
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	return session.readFromConnWithRetry()
}
