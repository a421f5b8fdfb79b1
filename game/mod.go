package game

// Cell is the content of one entry of the board grid.
type Cell uint8

const (
	Free    Cell = 0
	Player1 Cell = 1 // shown as O
	Player2 Cell = 2 // shown as X
	Out     Cell = 10
)

// Opponent returns the other side. Only meaningful for Player1 and Player2.
func (c Cell) Opponent() Cell {
	if c == Player1 {
		return Player2
	}
	return Player1
}

func (c Cell) String() string {
	switch c {
	case Free:
		return "."
	case Player1:
		return "O"
	case Player2:
		return "X"
	case Out:
		return "#"
	}
	return "?"
}

const (
	RowLength  = 11
	AllFields  = RowLength * RowLength
	RealFields = 61

	StartStones = 14
	// A side with fewer stones than this has lost.
	MinStones = 9
)

// Directions
const (
	Right = iota + 1
	RightDown
	LeftDown
	Left
	LeftUp
	RightUp
)

// direction[0] aliases RightUp and direction[7] aliases Right, so that the
// neighbouring directions d-1 and d+1 of any direction need no modulo.
var direction = [8]int{-11, 1, 12, 11, -1, -12, -11, 1}

var directionNames = []string{"RightUp", "Right", "RightDown", "LeftDown", "Left", "LeftUp"}

// FieldDiffOfDir returns the grid offset of direction d (0..7).
func FieldDiffOfDir(d int) int {
	return direction[d]
}

// DirectionOfFieldDiff returns the direction 1..6 with grid offset diff, or 0.
func DirectionOfFieldDiff(diff int) int {
	for d := Right; d <= RightUp; d++ {
		if direction[d] == diff {
			return d
		}
	}
	return 0
}

// DirectionName names direction d, wrapping 0 and 7 like the offset table.
func DirectionName(d int) string {
	return directionNames[((d%6)+6)%6]
}

// Neighbor returns the field next to f in direction d. The wall of Out cells
// around the board keeps the result inside the grid for every real field.
func Neighbor(f, d int) int {
	return f + direction[d]
}

// order lists the real fields ring by ring from the center outwards.
// Ring r occupies ringStart[r]..ringStart[r+1]-1.
var order = [RealFields]int{
	60,
	61, 72, 71, 59, 48, 49,
	62, 73, 84, 83, 82, 70, 58, 47, 36, 37, 38, 50,
	63, 74, 85, 96, 95, 94, 93, 81, 69, 57, 46, 35, 24, 25, 26, 27, 39, 51,
	64, 75, 86, 97, 108, 107, 106, 105, 104, 92, 80, 68, 56, 45, 34, 23, 12, 13, 14, 15, 16, 28, 40, 52,
}

const Rings = 5

var ringStart = [Rings + 1]int{0, 1, 7, 19, 37, 61}

// RingOrder returns the real fields from the center outwards.
func RingOrder() [RealFields]int {
	return order
}

var startBoard = [AllFields]Cell{
	10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	10, 1, 1, 1, 1, 1, 10, 10, 10, 10, 10,
	10, 1, 1, 1, 1, 1, 1, 10, 10, 10, 10,
	10, 0, 0, 1, 1, 1, 0, 0, 10, 10, 10,
	10, 0, 0, 0, 0, 0, 0, 0, 0, 10, 10,
	10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10,
	10, 10, 0, 0, 0, 0, 0, 0, 0, 0, 10,
	10, 10, 10, 0, 0, 2, 2, 2, 0, 0, 10,
	10, 10, 10, 10, 2, 2, 2, 2, 2, 2, 10,
	10, 10, 10, 10, 10, 2, 2, 2, 2, 2, 10,
	10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
}

// IsReal reports whether f is one of the 61 playing fields.
func IsReal(f int) bool {
	return f >= 0 && f < AllFields && startBoard[f] != Out
}

// FieldName returns the row letter and column digit of field f, e.g. "A1".
func FieldName(f int) string {
	return string([]byte{byte('A' + (f-12)/RowLength), byte('1' + (f-12)%RowLength)})
}

// FieldOfName is the inverse of FieldName. It returns -1 for anything that
// is not a real field.
func FieldOfName(name string) int {
	if len(name) != 2 {
		return -1
	}
	row, col := name[0], name[1]
	if row >= 'a' && row <= 'z' {
		row -= 'a' - 'A'
	}
	f := 12 + int(row-'A')*RowLength + int(col-'1')
	if row < 'A' || col < '1' || !IsReal(f) {
		return -1
	}
	return f
}
