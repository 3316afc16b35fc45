// Package game implements the Easy21 card game used as a reinforcement
// learning environment.
//
// The main type is Engine, which owns a single round: the player's hand, the
// dealer's hand, the winner and the terminal flag.
//
// # Basic Usage
//
//	e := game.NewEngine(randutil.New(42))
//	s := e.Reset()
//	s, reward, done, err := e.Step(game.Hit)
//
// # Rules
//
// Cards are drawn with replacement from an infinite deck. Each draw has a
// magnitude between 1 and 10 and is black (added) with probability 2/3 or red
// (subtracted) with probability 1/3. Both hands open with one black card. A
// hand whose sum leaves [1, 21] is bust. When the player sticks the dealer hits
// on any sum below 17 and sticks otherwise.
//
// # Deterministic Testing
//
// All randomness flows through the Source passed to NewEngine. Tests inject a
// scripted Source to force exact card sequences.
//
// An Engine is not safe for concurrent use. Run one Engine per goroutine.
package game
