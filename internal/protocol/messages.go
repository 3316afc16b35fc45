// Package protocol defines the JSON messages exchanged with remote training
// harnesses over a websocket.
package protocol

import (
	"errors"

	"github.com/lox/easy21/internal/game"
)

const (
	// Client -> Server
	TypeSeed  = "seed"
	TypeReset = "reset"
	TypeStep  = "step"

	// Server -> Client
	TypeSeeded = "seeded"
	TypeState  = "state"
	TypeError  = "error"
)

// Error codes carried in Response.Code.
const (
	CodeInvalidAction = "invalid_action"
	CodeRoundOver     = "round_over"
	CodeBadRequest    = "bad_request"
)

// Request is sent by the client.
type Request struct {
	Type   string `json:"type"`
	Action *int   `json:"action,omitempty"` // step: 1 = hit, 0 = stick
	Seed   *int64 `json:"seed,omitempty"`   // seed: omitted or 0 picks a random seed
}

// Response is sent by the server in reply to every request.
type Response struct {
	Type     string         `json:"type"`
	State    *game.State    `json:"state,omitempty"`
	Reward   int            `json:"reward"`
	Terminal bool           `json:"terminal"`
	Info     map[string]any `json:"info,omitempty"`
	Winner   game.Winner    `json:"winner,omitempty"`
	Seed     int64          `json:"seed,omitempty"`
	Code     string         `json:"code,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Step builds a step request.
func Step(action int) Request {
	return Request{Type: TypeStep, Action: &action}
}

// Reset builds a reset request.
func Reset() Request {
	return Request{Type: TypeReset}
}

// Seed builds a seed request.
func Seed(seed int64) Request {
	return Request{Type: TypeSeed, Seed: &seed}
}

// StateResponse reports an observation. The winner is only sent once the
// round is terminal.
func StateResponse(s game.State, reward int, terminal bool, winner game.Winner) Response {
	resp := Response{Type: TypeState, State: &s, Reward: reward, Terminal: terminal}
	if terminal {
		resp.Winner = winner
	}
	return resp
}

// SeededResponse acknowledges a seed request with the seed actually used.
func SeededResponse(seed int64) Response {
	return Response{Type: TypeSeeded, Seed: seed}
}

// ErrorResponse maps an engine error onto a wire error.
func ErrorResponse(err error) Response {
	code := CodeBadRequest
	switch {
	case errors.Is(err, game.ErrInvalidAction):
		code = CodeInvalidAction
	case errors.Is(err, game.ErrRoundOver):
		code = CodeRoundOver
	}
	return Response{Type: TypeError, Code: code, Error: err.Error()}
}
