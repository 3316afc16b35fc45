package game

import (
	"testing"
)

// scriptedSource replays a fixed sequence of IntN results.
type scriptedSource struct {
	t      *testing.T
	values []int
	pos    int
}

func newScript(t *testing.T, values ...[]int) *scriptedSource {
	t.Helper()
	s := &scriptedSource{t: t}
	for _, v := range values {
		s.values = append(s.values, v...)
	}
	return s
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	if s.pos >= len(s.values) {
		s.t.Fatalf("scripted source exhausted after %d draws", s.pos)
	}
	v := s.values[s.pos]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d at %d out of range [0, %d)", v, s.pos, n)
	}
	s.pos++
	return v
}

func (s *scriptedSource) remaining() int {
	return len(s.values) - s.pos
}

// open scripts an opening black card of the given magnitude.
func open(m int) []int {
	return []int{m - 1}
}

// draw scripts a regular draw producing card value v.
func draw(v int) []int {
	if v < 0 {
		return []int{-v - 1, 1}
	}
	return []int{v - 1, 0}
}
