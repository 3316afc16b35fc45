package bot

import "github.com/lox/easy21/internal/game"

// DealerStickSum mirrors the dealer's fixed policy.
const DealerStickSum = 17

// ThresholdBot hits below StickAt and sticks on or above it.
type ThresholdBot struct {
	StickAt int
}

// NewThresholdBot creates a bot that sticks on stickAt or more
func NewThresholdBot(stickAt int) *ThresholdBot {
	return &ThresholdBot{StickAt: stickAt}
}

func (b *ThresholdBot) Act(s game.State) game.Action {
	if s.PlayerSum >= b.StickAt {
		return game.Stick
	}
	return game.Hit
}
