package game

type GameState int

const (
	StateIdle         GameState = iota
	StateDragging               // reference shape follows the pointer
	StateFactShown              // constellation matched, waiting for continue
	StateGameComplete           // max level reached, terminal until reset
)

func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFactShown:
		return "fact-shown"
	case StateGameComplete:
		return "game-complete"
	}
	return "unknown"
}

// Session holds the counters that survive between levels and are restored
// by a reset.
type Session struct {
	Completed           int
	HintsRemaining      int
	ConstellationPoints int
	RandomPoints        int
}

// Level is the 1-based number of the level being played.
func (s Session) Level() int { return s.Completed + 1 }

// advance applies the progression after a completed level: every second
// completion adds constellation points, every level adds random points.
func (s *Session) advance(constInc, randInc int) {
	if s.Completed%2 == 0 {
		s.ConstellationPoints += constInc
	}
	s.RandomPoints += randInc
}
