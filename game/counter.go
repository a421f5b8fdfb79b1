package game

// MoveTypeCounter counts possible moves per type.
type MoveTypeCounter [TypeCount]int

func (c *MoveTypeCounter) Incr(t MoveType) { c[t]++ }
func (c *MoveTypeCounter) Get(t MoveType) int { return c[t] }

func (c *MoveTypeCounter) Sum() int {
	sum := 0
	for _, n := range c {
		sum += n
	}
	return sum
}

// Connectivity degrees counted by InARowCounter.
const (
	InARow2 = iota
	InARow3
	InARow4
	InARow5
	InARowCount
)

// InARowCounter counts runs of 2, 3, 4 and 5 stones of one side, once per
// starting stone and direction.
type InARowCounter [InARowCount]int

func (c *InARowCounter) Incr(degree int) { c[degree]++ }
func (c *InARowCounter) Get(degree int) int { return c[degree] }
