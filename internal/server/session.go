package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/protocol"
)

// session serves one connection. Requests are handled strictly in order on
// the reading goroutine, so the environment needs no locking.
type session struct {
	srv       *Server
	conn      *websocket.Conn
	env       *env.Env
	logger    *log.Logger
	closeOnce sync.Once
}

func newSession(srv *Server, conn *websocket.Conn) *session {
	e := env.New()
	return &session{
		srv:    srv,
		conn:   conn,
		env:    e,
		logger: srv.logger.With("remote", conn.RemoteAddr().String()),
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
	})
}

func (s *session) run() {
	defer s.close()
	s.logger.Debug("Session opened", "seed", s.env.SeedUsed())

	for {
		if err := s.conn.SetReadDeadline(s.srv.clock.Now().Add(s.srv.idleTimeout)); err != nil {
			return
		}
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Read failed", "error", err)
			}
			s.logger.Debug("Session closed")
			return
		}

		resp := s.handle(data)
		if err := s.conn.WriteJSON(resp); err != nil {
			s.logger.Warn("Write failed", "error", err)
			return
		}
	}
}

func (s *session) handle(data []byte) protocol.Response {
	var req protocol.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return protocol.ErrorResponse(fmt.Errorf("malformed request: %w", err))
	}

	switch req.Type {
	case protocol.TypeSeed:
		var seed int64
		if req.Seed != nil {
			seed = *req.Seed
		}
		used := s.env.Seed(seed)
		s.logger.Debug("Seeded", "seed", used)
		return protocol.SeededResponse(used)

	case protocol.TypeReset:
		st := s.env.Reset()
		s.srv.episodes.Add(1)
		return protocol.StateResponse(st, 0, false, game.Undetermined)

	case protocol.TypeStep:
		if req.Action == nil {
			return protocol.ErrorResponse(errors.New("step requires an action"))
		}
		st, reward, done, _, err := s.env.Step(*req.Action)
		if err != nil {
			return protocol.ErrorResponse(err)
		}
		s.srv.steps.Add(1)
		return protocol.StateResponse(st, reward, done, s.env.Round().Winner)

	default:
		return protocol.ErrorResponse(fmt.Errorf("unknown message type %q", req.Type))
	}
}
