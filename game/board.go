package game

import "fmt"

// HistorySize is the capacity of the undo ring. One slot stays unused, so
// at most HistorySize-1 moves can be taken back.
const HistorySize = 100

// Validity is the result of a full board scan.
type Validity int

const (
	Empty Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	return [...]string{"empty", "valid", "invalid"}[v]
}

// Board is the mutable game position. Search plays and takes back moves on
// a single Board, so a Board must not be shared between goroutines.
type Board struct {
	field       [AllFields]Cell
	color       Cell
	color1Count int
	color2Count int
	moveNo      int

	history     [HistorySize]Move
	storedFirst int
	storedLast  int

	scheme     *EvalScheme
	fieldValue [RealFields]int
	rotation   int // ChangeEvaluation calls so far

	// CheckConsistency makes Play and TakeBack verify the stone counters
	// against the grid and panic on mismatch.
	CheckConsistency bool
}

// NewBoard returns a board in the start position with Player1 to move and
// the default evaluation scheme attached.
func NewBoard() *Board {
	b := &Board{}
	b.SetScheme(nil)
	b.Begin(Player1)
	return b
}

// Begin sets up the start position.
func (b *Board) Begin(startColor Cell) {
	b.field = startBoard
	b.storedFirst, b.storedLast = 0, 0
	b.color = startColor
	b.color1Count, b.color2Count = StartStones, StartStones
	b.moveNo = 0
}

// Clear removes all stones.
func (b *Board) Clear() {
	for i, c := range startBoard {
		if c == Out {
			b.field[i] = Out
		} else {
			b.field[i] = Free
		}
	}
	b.storedFirst, b.storedLast = 0, 0
	b.color1Count, b.color2Count = 0, 0
	b.moveNo = 0
}

func (b *Board) At(f int) Cell { return b.field[f] }
func (b *Board) ToMove() Cell  { return b.color }
func (b *Board) MoveNo() int   { return b.moveNo }

// Fields returns a copy of the grid.
func (b *Board) Fields() [AllFields]Cell {
	return b.field
}

func (b *Board) Count(c Cell) int {
	if c == Player1 {
		return b.color1Count
	}
	return b.color2Count
}

// Set places c on the real field f and recounts the stones. It is meant for
// setting up positions, not for playing.
func (b *Board) Set(f int, c Cell) {
	if !IsReal(f) || c == Out {
		panic(fmt.Sprintf("cannot set field %d to %v", f, c))
	}
	b.field[f] = c
	b.recount()
}

// SetToMove changes the side to move without playing a move.
func (b *Board) SetToMove(c Cell) {
	b.color = c
}

// Clone returns an independent copy sharing the (read only) scheme.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Play executes m for the side to move. m must be a move generated for
// this position.
func (b *Board) Play(m Move) {
	if b.CheckConsistency && !b.IsConsistent() {
		panic("inconsistent board before playing " + m.Name())
	}

	if b.storedLast++; b.storedLast == HistorySize {
		b.storedLast = 0
	}
	// full: drop the oldest entry
	if b.storedLast == b.storedFirst {
		if b.storedFirst++; b.storedFirst == HistorySize {
			b.storedFirst = 0
		}
	}
	b.history[b.storedLast] = m

	color, opponent := b.color, b.color.Opponent()
	f := m.Field
	dir := direction[m.Direction]
	b.field[f] = Free

	switch m.Type {
	case Out2, Out1With3, Move3:
		b.field[f+3*dir] = color
	case Out1With2, Move2:
		b.field[f+2*dir] = color
	case Push2:
		b.field[f+3*dir] = color
		b.field[f+5*dir] = opponent
	case Push1With3:
		b.field[f+3*dir] = color
		b.field[f+4*dir] = opponent
	case Push1With2:
		b.field[f+2*dir] = color
		b.field[f+3*dir] = opponent
	case Left3, Right3, Left2, Right2:
		side := b.sideOffset(m)
		for i := 0; i < sideStepLength(m.Type); i++ {
			b.field[f+i*dir] = Free
			b.field[f+i*dir+side] = color
		}
	case Move1:
		b.field[f+dir] = color
	default:
		panic(fmt.Sprintf("cannot play move of type %v", m.Type))
	}

	if m.IsOutMove() {
		if color == Player1 {
			b.color2Count--
		} else {
			b.color1Count--
		}
	}
	b.color = opponent
	b.moveNo++

	if b.CheckConsistency && !b.IsConsistent() {
		panic("inconsistent board after playing " + m.Name())
	}
}

// TakeBack undoes the last played move. It reports false if there is no
// move left in the history.
func (b *Board) TakeBack() bool {
	if b.storedFirst == b.storedLast {
		return false
	}
	if b.CheckConsistency && !b.IsConsistent() {
		panic("inconsistent board before take back")
	}
	m := b.history[b.storedLast]

	opponent := b.color
	color := opponent.Opponent()
	b.color = color
	b.moveNo--

	if m.IsOutMove() {
		if color == Player1 {
			b.color2Count++
		} else {
			b.color1Count++
		}
	}

	f := m.Field
	dir := direction[m.Direction]
	b.field[f] = color

	switch m.Type {
	case Out2, Out1With3:
		b.field[f+3*dir] = opponent
	case Move3:
		b.field[f+3*dir] = Free
	case Out1With2:
		b.field[f+2*dir] = opponent
	case Move2:
		b.field[f+2*dir] = Free
	case Push2:
		b.field[f+3*dir] = opponent
		b.field[f+5*dir] = Free
	case Push1With3:
		b.field[f+3*dir] = opponent
		b.field[f+4*dir] = Free
	case Push1With2:
		b.field[f+2*dir] = opponent
		b.field[f+3*dir] = Free
	case Left3, Right3, Left2, Right2:
		side := b.sideOffset(m)
		for i := 0; i < sideStepLength(m.Type); i++ {
			b.field[f+i*dir] = color
			b.field[f+i*dir+side] = Free
		}
	case Move1:
		b.field[f+dir] = Free
	default:
		panic(fmt.Sprintf("cannot take back move of type %v", m.Type))
	}

	if b.storedLast--; b.storedLast < 0 {
		b.storedLast = HistorySize - 1
	}

	if b.CheckConsistency && !b.IsConsistent() {
		panic("inconsistent board after taking back " + m.Name())
	}
	return true
}

func (b *Board) sideOffset(m Move) int {
	if m.Type == Left3 || m.Type == Left2 {
		return direction[m.Direction-1]
	}
	return direction[m.Direction+1]
}

func sideStepLength(t MoveType) int {
	if t == Left3 || t == Right3 {
		return 3
	}
	return 2
}

// MovesStored is the number of moves that can currently be taken back.
func (b *Board) MovesStored() int {
	c := b.storedLast - b.storedFirst
	if c < 0 {
		c += HistorySize
	}
	return c
}

// LastMove returns the most recently played move, or NoMove.
func (b *Board) LastMove() Move {
	if b.storedFirst == b.storedLast {
		return NoMove
	}
	return b.history[b.storedLast]
}

// IsValid reports whether both sides still have enough stones to play on.
func (b *Board) IsValid() bool {
	return b.color1Count >= MinStones && b.color2Count >= MinStones
}

// Winner returns the side that pushed off enough stones, or Free while the
// game is running.
func (b *Board) Winner() Cell {
	switch {
	case b.color1Count < MinStones && b.color2Count >= MinStones:
		return Player2
	case b.color2Count < MinStones && b.color1Count >= MinStones:
		return Player1
	}
	return Free
}

// ValidState recounts the stones from the grid and checks whether the side
// to move can play on from this position.
func (b *Board) ValidState() Validity {
	var tc MoveTypeCounter
	var cc InARowCounter

	b.recount()
	for i, c := range b.field {
		if c == b.color {
			b.countFrom(i, b.color, &tc, &cc)
		}
	}

	c1, c2 := b.color1Count, b.color2Count
	switch {
	case c1 == 0 && c2 == 0:
		return Empty
	case c1 >= MinStones && c1 <= StartStones &&
		c2 >= MinStones && c2 <= StartStones && tc.Sum() > 0:
		return Valid
	}
	return Invalid
}

// IsConsistent compares the stone counters with the grid.
func (b *Board) IsConsistent() bool {
	c1, c2 := b.scan()
	return c1 == b.color1Count && c2 == b.color2Count
}

func (b *Board) recount() {
	b.color1Count, b.color2Count = b.scan()
}

func (b *Board) scan() (c1, c2 int) {
	for _, f := range order {
		switch b.field[f] {
		case Player1:
			c1++
		case Player2:
			c2++
		}
	}
	return c1, c2
}
