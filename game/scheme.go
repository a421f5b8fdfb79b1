package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SchemeFields is the number of values in a serialized scheme: stone
// deficit values 1..5, one value per move type, one per in-a-row degree,
// then the ring values and ring spreads.
const SchemeFields = 5 + TypeCount + InARowCount + Rings + Rings

// DefaultSchemeName names the scheme with the built-in weights.
const DefaultSchemeName = "Default"

var ErrBadScheme = errors.New("malformed evaluation scheme")

var (
	defaultRingValue  = [Rings]int{45, 35, 25, 10, 0}
	defaultRingDiff   = [Rings]int{0, 10, 10, 8, 5}
	defaultStoneValue = [6]int{0, -800, -1800, -3000, -4400, -6000}
	defaultMoveValue  = [TypeCount]int{40, 30, 30, 15, 14, 13, 5, 5, 5, 2, 2, 2, 1}
	defaultInARow     = [InARowCount]int{2, 5, 4, 3}
)

// EvalScheme holds the weights of the static evaluation.
type EvalScheme struct {
	name       string
	ringValue  [Rings]int
	ringDiff   [Rings]int
	stoneValue [6]int
	moveValue  [TypeCount]int
	inARow     [InARowCount]int
}

func NewEvalScheme(name string) *EvalScheme {
	s := &EvalScheme{name: name}
	s.SetDefaults()
	return s
}

func (s *EvalScheme) SetDefaults() {
	s.ringValue = defaultRingValue
	s.ringDiff = defaultRingDiff
	s.stoneValue = defaultStoneValue
	s.moveValue = defaultMoveValue
	s.inARow = defaultInARow
}

func (s *EvalScheme) Clone() *EvalScheme {
	c := *s
	return &c
}

func (s *EvalScheme) Name() string        { return s.name }
func (s *EvalScheme) SetName(name string) { s.name = name }

// Getters return 0 for indices outside their table. The spread of the
// center ring is always 0.

func (s *EvalScheme) RingValue(r int) int {
	if r >= 0 && r < Rings {
		return s.ringValue[r]
	}
	return 0
}

func (s *EvalScheme) RingDiff(r int) int {
	if r > 0 && r < Rings {
		return s.ringDiff[r]
	}
	return 0
}

// StoneValue is the value of having lost deficit stones.
func (s *EvalScheme) StoneValue(deficit int) int {
	if deficit > 0 && deficit < 6 {
		return s.stoneValue[deficit]
	}
	return 0
}

func (s *EvalScheme) MoveValue(t MoveType) int {
	if t >= 0 && int(t) < TypeCount {
		return s.moveValue[t]
	}
	return 0
}

func (s *EvalScheme) InARowValue(degree int) int {
	if degree >= 0 && degree < InARowCount {
		return s.inARow[degree]
	}
	return 0
}

// Setters ignore indices outside their table.

func (s *EvalScheme) SetRingValue(r, v int) {
	if r >= 0 && r < Rings {
		s.ringValue[r] = v
	}
}

func (s *EvalScheme) SetRingDiff(r, v int) {
	if r > 0 && r < Rings {
		s.ringDiff[r] = v
	}
}

func (s *EvalScheme) SetStoneValue(deficit, v int) {
	if deficit > 0 && deficit < 6 {
		s.stoneValue[deficit] = v
	}
}

func (s *EvalScheme) SetMoveValue(t MoveType, v int) {
	if t >= 0 && int(t) < TypeCount {
		s.moveValue[t] = v
	}
}

func (s *EvalScheme) SetInARowValue(degree, v int) {
	if degree >= 0 && degree < InARowCount {
		s.inARow[degree] = v
	}
}

// values returns pointers to the serialized fields in their fixed order.
func (s *EvalScheme) values() []*int {
	v := make([]*int, 0, SchemeFields)
	for i := 1; i < 6; i++ {
		v = append(v, &s.stoneValue[i])
	}
	for i := range s.moveValue {
		v = append(v, &s.moveValue[i])
	}
	for i := range s.inARow {
		v = append(v, &s.inARow[i])
	}
	for i := range s.ringValue {
		v = append(v, &s.ringValue[i])
	}
	for i := range s.ringDiff {
		v = append(v, &s.ringDiff[i])
	}
	return v
}

// String serializes the scheme as "name=v1,v2,...".
func (s *EvalScheme) String() string {
	var sb strings.Builder
	sb.WriteString(s.name)
	sb.WriteByte('=')
	for i, v := range s.values() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(*v))
	}
	return sb.String()
}

// ParseScheme reads a scheme written by String. Missing trailing values keep
// their defaults, surplus values are ignored.
func ParseScheme(text string) (*EvalScheme, error) {
	name, list, found := strings.Cut(strings.TrimSpace(text), "=")
	if !found {
		return nil, errors.Wrapf(ErrBadScheme, "no '=' in %q", text)
	}
	s := NewEvalScheme(strings.TrimSpace(name))
	if strings.TrimSpace(list) == "" {
		return s, nil
	}

	fields := s.values()
	for i, item := range strings.Split(list, ",") {
		if i >= len(fields) {
			break
		}
		v, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, errors.Wrap(ErrBadScheme, fmt.Sprintf("value %d: %v", i+1, err))
		}
		*fields[i] = v
	}
	return s, nil
}
