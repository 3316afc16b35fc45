package game

import "fmt"

// Action is the player's decision. The numeric values are part of the
// environment contract: 0 sticks, 1 hits.
type Action int

const (
	Stick Action = 0
	Hit   Action = 1
)

// NumActions is the size of the action space.
const NumActions = 2

// Valid reports whether a is Stick or Hit.
func (a Action) Valid() bool {
	return a == Stick || a == Hit
}

func (a Action) String() string {
	switch a {
	case Stick:
		return "stick"
	case Hit:
		return "hit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts "hit"/"h" and "stick"/"s" into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "hit", "h":
		return Hit, nil
	case "stick", "s":
		return Stick, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// Winner is the outcome of a round. The zero value is Undetermined.
type Winner int

const (
	Undetermined Winner = iota
	PlayerWins
	DealerWins
	Draw
)

func (w Winner) String() string {
	switch w {
	case Undetermined:
		return "undetermined"
	case PlayerWins:
		return "player"
	case DealerWins:
		return "dealer"
	case Draw:
		return "draw"
	default:
		return "?"
	}
}

// ParseWinner is the inverse of Winner.String.
func ParseWinner(s string) (Winner, error) {
	switch s {
	case "undetermined", "":
		return Undetermined, nil
	case "player":
		return PlayerWins, nil
	case "dealer":
		return DealerWins, nil
	case "draw", "none":
		return Draw, nil
	default:
		return Undetermined, fmt.Errorf("unknown winner %q", s)
	}
}

// Reward maps the outcome to the player's reward.
func (w Winner) Reward() int {
	switch w {
	case PlayerWins:
		return 1
	case DealerWins:
		return -1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Winner) UnmarshalText(b []byte) error {
	v, err := ParseWinner(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// compare decides the winner once the dealer has finished drawing.
func compare(player, dealer int) Winner {
	switch {
	case IsBust(dealer):
		return PlayerWins
	case dealer < player:
		return PlayerWins
	case dealer == player:
		return Draw
	default:
		return DealerWins
	}
}
