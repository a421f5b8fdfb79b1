package searcher

// Search values. Evaluations stay within ±game.WinValue, a position decided
// by stone count at ply d scores ±(Won-d), and anything beyond Decided is a
// forced win or loss.
const (
	Infinity = 15000
	Won      = 14999
	Decided  = 14900

	// Aspiration window around the value of the previous iteration.
	Window = 200
)

// Level is the number of iterative deepening steps of a search.
type Level int

const (
	Weak Level = iota + 1
	Medium
	Strong
	Challenge
)

const DefaultLevel = Medium

func (l Level) String() string {
	switch l {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case Challenge:
		return "challenge"
	}
	return "custom"
}
