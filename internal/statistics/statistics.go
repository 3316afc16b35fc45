// Package statistics aggregates Easy21 episode outcomes.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/easy21/internal/game"
	"gonum.org/v1/gonum/stat"
)

// EpisodeResult represents the outcome of a single episode
type EpisodeResult struct {
	Reward     int         // Final reward: +1, 0 or -1
	Seed       int64       // RNG seed for this episode (for replay)
	Steps      int         // Actions taken by the agent
	Winner     game.Winner // Final outcome
	PlayerSum  int         // Player's final sum
	DealerSum  int         // Dealer's final sum (opening card if the player went bust)
	PlayerBust bool        // Player left [1, 21]
	DealerBust bool        // Dealer left [1, 21]
}

// Statistics tracks results across a simulation run
type Statistics struct {
	Episodes int
	Sum      float64
	Values   []float64 // Every reward, for median/percentile calculation

	Wins   int
	Losses int
	Draws  int

	PlayerBusts int
	DealerBusts int
	TotalSteps  int
}

// Add incorporates a new episode result
func (s *Statistics) Add(r EpisodeResult) {
	v := float64(r.Reward)
	s.Episodes++
	s.Sum += v
	s.Values = append(s.Values, v)
	s.TotalSteps += r.Steps

	switch r.Winner {
	case game.PlayerWins:
		s.Wins++
	case game.DealerWins:
		s.Losses++
	default:
		s.Draws++
	}

	if r.PlayerBust {
		s.PlayerBusts++
	}
	if r.DealerBust {
		s.DealerBusts++
	}
}

// Mean returns the average reward per episode
func (s *Statistics) Mean() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of the rewards
func (s *Statistics) Variance() float64 {
	if s.Episodes < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Episodes))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of episodes the player won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of episodes the dealer won
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// DrawRate returns the fraction of drawn episodes
func (s *Statistics) DrawRate() float64 {
	return s.rate(s.Draws)
}

// MeanSteps returns the average number of actions per episode
func (s *Statistics) MeanSteps() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.Episodes)
}

func (s *Statistics) rate(n int) float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(n) / float64(s.Episodes)
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median reward
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the empirical quantile at p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, s.sorted(), nil)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Episodes += other.Episodes
	s.Sum += other.Sum
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Draws += other.Draws
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.TotalSteps += other.TotalSteps
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Episodes <= 0 {
		return fmt.Errorf("invalid episode count: %d", s.Episodes)
	}
	if len(s.Values) != s.Episodes {
		return fmt.Errorf("values array length (%d) does not match episode count (%d)",
			len(s.Values), s.Episodes)
	}
	if total := s.Wins + s.Losses + s.Draws; total != s.Episodes {
		return fmt.Errorf("outcomes total (%d) does not match episode count (%d)", total, s.Episodes)
	}
	if want := float64(s.Wins - s.Losses); math.Abs(s.Sum-want) > 1e-9 {
		return fmt.Errorf("reward ledger mismatch: sum=%.0f, wins-losses=%.0f", s.Sum, want)
	}
	if s.PlayerBusts+s.DealerBusts > s.Episodes {
		return fmt.Errorf("busts (%d) exceed episode count (%d)", s.PlayerBusts+s.DealerBusts, s.Episodes)
	}
	return nil
}
