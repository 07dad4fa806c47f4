package game

// Score is the session's non-negative point counter.
type Score struct {
	value int
	best  int
}

// Add increases the score. Negative amounts are ignored so the counter never
// decreases during play.
func (s *Score) Add(points int) {
	if points <= 0 {
		return
	}
	s.value += points
	if s.value > s.best {
		s.best = s.value
	}
}

// Value returns the current score.
func (s *Score) Value() int { return s.value }

// Best returns the highest score seen by this process. It survives Reset.
func (s *Score) Best() int { return s.best }

// Reset zeroes the current score.
func (s *Score) Reset() { s.value = 0 }

// MergePoints is the award for fusing into newTier.
func MergePoints(newTier, pointsPerTierUnit int) int {
	return (newTier + 1) * pointsPerTierUnit
}
