package connection

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

func TestSessionManager(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	first := bsm.GenerateNewSession(nil)
	second := bsm.GenerateNewSession(nil)
	if first.Id() == second.Id() {
		t.Fatal("expected unique session ids")
	}
	if bsm.CountSessions() != 2 {
		t.Fatalf("expected sessions: %d\tgot: %d", 2, bsm.CountSessions())
	}

	found, err := bsm.FindSession(first.Id())
	if err != nil {
		t.Fatal(err)
	}
	if found != first {
		t.Fatal("expected the same session back")
	}

	bsm.TerminateSession(first.Id())
	if _, err := bsm.FindSession(first.Id()); !errors.Is(err, cerr.ErrSessionNotExists) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrSessionNotExists, err)
	}
}

func TestSessionCleanup(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	stale := bsm.GenerateNewSession(nil)
	stale.createdAt = time.Now().Add(-time.Hour)
	fresh := bsm.GenerateNewSession(nil)

	bsm.cleanup()

	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("expected the stale session to be removed")
	}
	if _, err := bsm.FindSession(fresh.Id()); err != nil {
		t.Fatalf("expected the fresh session to stay: %v", err)
	}
}

func TestWriteRejectsBadMessageType(t *testing.T) {
	s := NewSession("abc", nil)

	tests := []struct {
		name    string
		msg     interface{}
		msgType uint8
	}{
		{name: "bytes expected", msg: "not bytes", msgType: MessageTypeBytes},
		{name: "unknown type", msg: []byte("{}"), msgType: 9},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := s.writeToConnWithRetry(test.msg, test.msgType)
			var connErr ConnErr
			if !errors.As(err, &connErr) || connErr.Code() != ConnInvalidMsgType {
				t.Fatalf("expected code: %d\tgot: %v", ConnInvalidMsgType, err)
			}
		})
	}
}

func TestMessageEncoding(t *testing.T) {
	tests := []struct {
		name     string
		msg      interface{}
		expected string
	}{
		{
			name: "payload only",
			msg: func() Message[RespStartGame] {
				m := NewMessage[RespStartGame](CodeStartGame)
				m.AddPayload(RespStartGame{IsTurn: true})
				return m
			}(),
			expected: `{"code":4,"payload":{"is_turn":true}}`,
		},
		{
			name: "error without payload",
			msg: func() Message[NoPayload] {
				m := NewMessage[NoPayload](CodeInvalidSignal)
				m.AddError("", "invalid code in the incoming payload")
				return m
			}(),
			expected: `{"code":9,"error":{"message":"invalid code in the incoming payload"}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded, err := json.Marshal(test.msg)
			if err != nil {
				t.Fatal(err)
			}
			if string(encoded) != test.expected {
				t.Fatalf("expected: %s\tgot: %s", test.expected, encoded)
			}
		})
	}
}

func TestConnErrKeepsCause(t *testing.T) {
	err := error(NewConnErr(ConnLoopBreak).AddDesc("breaking read loop").Wrap(io.EOF))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected the cause to be io.EOF\tgot: %v", err)
	}

	msg := NewMessage[NoPayload](CodeAttack)
	if msg.Failed() {
		t.Fatal("expected a fresh message to carry no error")
	}
	msg.Fail(err, "connection lost")
	if !msg.Failed() || msg.Error.ErrorDetails != err.Error() {
		t.Fatalf("expected error details: %s\tgot: %+v", err, msg.Error)
	}
}
