package bot

import "github.com/lox/easy21/internal/game"

// RandBot hits or sticks with equal probability.
type RandBot struct {
	src game.Source
}

// NewRandBot creates a new RandBot drawing from src
func NewRandBot(src game.Source) *RandBot {
	return &RandBot{src: src}
}

func (r *RandBot) Act(game.State) game.Action {
	return game.Action(r.src.IntN(game.NumActions))
}
