// Package history records Easy21 episode trajectories as JSON lines and
// replays them to check reproducibility.
package history

import (
	"github.com/google/uuid"
	"github.com/lox/easy21/internal/game"
)

// Step is one agent decision and its result.
type Step struct {
	State    game.State  `json:"state"`
	Action   game.Action `json:"action"`
	Next     game.State  `json:"next"`
	Reward   int         `json:"reward"`
	Terminal bool        `json:"terminal"`
}

// Episode is a complete recorded round.
type Episode struct {
	ID          string      `json:"id"`
	Index       int         `json:"index"`
	Seed        int64       `json:"seed"`
	Bot         string      `json:"bot,omitempty"`
	Steps       []Step      `json:"steps"`
	Reward      int         `json:"reward"`
	Winner      game.Winner `json:"winner"`
	PlayerCards []game.Card `json:"player_cards"`
	DealerCards []game.Card `json:"dealer_cards"`
}

// NewID returns a time-ordered episode identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
