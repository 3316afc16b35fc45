package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestNewSeedNonZero(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		s := NewSeed()
		assert.Positive(t, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, int64(17), Resolve(17))
	assert.NotZero(t, Resolve(0))
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(5, 3), Derive(5, 3))
	assert.NotEqual(t, Derive(5, 3), Derive(5, 4))
	assert.NotEqual(t, Derive(5, 3), Derive(6, 3))

	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		d := Derive(99, i)
		assert.NotZero(t, d)
		seen[d] = true
	}
	assert.Len(t, seen, 1000)
}
