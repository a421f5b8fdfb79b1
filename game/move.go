package game

// MoveType classifies a move. Types are ordered by aggressiveness, which is
// also the order moves are generated and searched in.
type MoveType int8

const (
	Out2      MoveType = iota // (c c c o o |)
	Out1With3                 // (c c c o |)
	Out1With2                 // (c c o |)
	Push2                     // (c c c o o .)
	Push1With3                // (c c c o .)
	Push1With2                // (c c o .)
	Move3                     // (c c c .)
	Left3
	Right3
	Left2
	Right2
	Move2 // (c c .)
	Move1 // (c .)
	None

	TypeCount = int(None)

	MaxOutType  = Out1With2
	MaxPushType = Push1With2
	MaxMoveType = Move1
)

var moveTypeNames = [...]string{
	"out2", "out1with3", "out1with2", "push2", "push1with3", "push1with2",
	"move3", "left3", "right3", "left2", "right2", "move2", "move1", "none",
}

func (t MoveType) String() string {
	if t < 0 || t > None {
		return "invalid"
	}
	return moveTypeNames[t]
}

func (t MoveType) IsOut() bool  { return t <= MaxOutType }
func (t MoveType) IsPush() bool { return t <= MaxPushType }

// IsSideStep reports whether the group moves sideways instead of along its line.
func (t MoveType) IsSideStep() bool {
	return t >= Left3 && t <= Right2
}

// Move is a move of the group starting at Field along Direction. For side
// steps Direction is the line of the group and the step goes to the
// neighbouring direction (Direction-1 for left, Direction+1 for right).
type Move struct {
	Field     int
	Direction int
	Type      MoveType
}

var NoMove = Move{Type: None}

func (m Move) IsOutMove() bool  { return m.Type.IsOut() }
func (m Move) IsPushMove() bool { return m.Type.IsPush() }

// Name renders the move the way it is shown to players: "C3/Right",
// "A1/RightDown/Push", or "B2-B4/LeftDown" for side steps.
func (m Move) Name() string {
	switch m.Type {
	case Left3, Right3, Left2, Right2:
		length := 2
		if m.Type == Left2 || m.Type == Right2 {
			length = 1
		}
		f1, f2 := m.Field, m.Field
		if df := length * FieldDiffOfDir(m.Direction); df > 0 {
			f2 += df
		} else {
			f1 += df
		}
		step := m.Direction + 1
		if m.Type == Left3 || m.Type == Left2 {
			step = m.Direction - 1
		}
		return FieldName(f1) + "-" + FieldName(f2) + "/" + DirectionName(step)
	case None:
		return "??"
	}
	s := FieldName(m.Field) + "/" + DirectionName(m.Direction)
	if m.Type.IsOut() {
		s += "/Out"
	} else if m.Type.IsPush() {
		s += "/Push"
	}
	return s
}

func (m Move) String() string {
	return m.Name()
}
