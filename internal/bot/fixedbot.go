package bot

import "github.com/lox/easy21/internal/game"

// Always returns a bot that takes the same action regardless of state.
func Always(a game.Action) Bot {
	return Func(func(game.State) game.Action { return a })
}
