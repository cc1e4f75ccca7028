// internal/game/stats.go
//
// Running attempts-to-win statistics for a session.
package game

// Stats accumulates attempts-to-win across the rounds of a session.
// It is never reset.
type Stats struct {
	Attempts int // sum of attempts over completed rounds
	Rounds   int // completed rounds
}

// Record adds one completed round.
func (s *Stats) Record(attempts int) {
	s.Attempts += attempts
	s.Rounds++
}

// Average is the mean attempts per completed round, 0 before the first win.
func (s Stats) Average() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Attempts) / float64(s.Rounds)
}
