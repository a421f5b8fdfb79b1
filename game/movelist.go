package game

const MaxMoves = 150

// StartType restricts partial lookups in MoveList.IsElement to moves that
// start with a group of a certain size.
type StartType int

const (
	StartAll StartType = iota
	Start1
	Start2
	Start3
)

// MoveList keeps one chain of moves per move type so that moves can be
// handed out in type order regardless of generation order.
//
// Typical use: Clear, Insert*, IsElement*, Next*.
type MoveList struct {
	moves      [MaxMoves]Move
	next       [MaxMoves]int
	first      [TypeCount]int
	last       [TypeCount]int
	actual     [TypeCount]int
	nextUnused int
	actualType int
}

func NewMoveList() *MoveList {
	l := &MoveList{}
	l.Clear()
	return l
}

func (l *MoveList) Clear() {
	for i := range l.first {
		l.first[i] = -1
		l.actual[i] = -1
	}
	l.nextUnused = 0
	l.actualType = -1
}

// Len is the number of inserted moves, consumed ones included.
func (l *MoveList) Len() int {
	return l.nextUnused
}

// Insert appends m to the chain of its type. Moves with an invalid type and
// moves beyond the capacity are dropped.
func (l *MoveList) Insert(m Move) {
	t := int(m.Type)
	if t < 0 || t >= TypeCount || l.nextUnused == MaxMoves {
		return
	}
	if l.first[t] == -1 {
		l.first[t] = l.nextUnused
	} else {
		l.next[l.last[t]] = l.nextUnused
	}
	l.last[t] = l.nextUnused
	l.next[l.nextUnused] = -1
	l.moves[l.nextUnused] = m
	l.nextUnused++
}

func (l *MoveList) insert(f, d int, t MoveType) {
	l.Insert(Move{Field: f, Direction: d, Type: t})
}

// ContainsField reports whether any move starts at field f.
func (l *MoveList) ContainsField(f int) bool {
	for i := 0; i < l.nextUnused; i++ {
		if l.moves[i].Field == f {
			return true
		}
	}
	return false
}

// IsElement looks up m by its field. A direction > 0 and a type other than
// None must match when given. An exact type match fills in the direction;
// otherwise the first move of the requested start size fills in type and
// direction. With del set the matched entry is consumed and will not be
// returned by Next anymore.
func (l *MoveList) IsElement(m *Move, start StartType, del bool) bool {
	for i := 0; i < l.nextUnused; i++ {
		mm := &l.moves[i]
		if mm.Type == None || mm.Field != m.Field {
			continue
		}
		if m.Direction > 0 && mm.Direction != m.Direction {
			continue
		}
		if m.Type != None && m.Type != mm.Type {
			continue
		}

		matches := m.Type == mm.Type
		if !matches {
			switch mm.Type {
			case Left3, Right3:
				matches = start == Start3 || start == StartAll
			case Left2, Right2:
				matches = start == Start2 || start == StartAll
			default:
				matches = start == Start1 || start == StartAll
			}
		}
		if !matches {
			continue
		}
		m.Type = mm.Type
		m.Direction = mm.Direction
		if del {
			mm.Type = None
		}
		return true
	}
	return false
}

// Next returns the next unconsumed move in type order. It reports false
// when the list is exhausted or the next move would be of a type above
// maxType; in the latter case a later call with a larger maxType resumes
// where this one stopped.
func (l *MoveList) Next(maxType MoveType) (Move, bool) {
	if l.actualType == TypeCount {
		return NoMove, false
	}
	for {
		for l.actualType < 0 || l.actual[l.actualType] == -1 {
			l.actualType++
			if l.actualType == TypeCount {
				return NoMove, false
			}
			l.actual[l.actualType] = l.first[l.actualType]
			if MoveType(l.actualType) > maxType {
				return NoMove, false
			}
		}
		i := l.actual[l.actualType]
		l.actual[l.actualType] = l.next[i]
		if l.moves[i].Type != None {
			return l.moves[i], true
		}
	}
}

// Moves returns all unconsumed moves in type order without touching the
// iteration state of Next.
func (l *MoveList) Moves() []Move {
	moves := make([]Move, 0, l.nextUnused)
	for t := 0; t < TypeCount; t++ {
		for i := l.first[t]; i != -1; i = l.next[i] {
			if l.moves[i].Type != None {
				moves = append(moves, l.moves[i])
			}
		}
	}
	return moves
}
