package game

// WinValue is the evaluation of a position that is lost for the side to
// move (or won, with the sign flipped). It is above any sum of the
// positional terms.
const WinValue = 16000

// Evaluation is the static evaluation split into its terms. All terms are
// seen from the side that made the last move.
type Evaluation struct {
	Field  int
	Move   int
	InARow int
	Stone  int
	Total  int
}

// SetScheme attaches s (or a default scheme if s is nil) and derives the
// per field values from its ring values. Rotations done by ChangeEvaluation
// are kept.
func (b *Board) SetScheme(s *EvalScheme) {
	if s == nil {
		s = NewEvalScheme(DefaultSchemeName)
	}
	b.scheme = s
	b.setFieldValues()
	b.rotateRings(b.rotation)
}

func (b *Board) Scheme() *EvalScheme {
	return b.scheme
}

// FieldValue returns the positional weight of the i-th field in ring order.
func (b *Board) FieldValue(i int) int {
	return b.fieldValue[i]
}

// setFieldValues spreads the values inside each ring with a running offset
// so that fields of one ring differ slightly.
func (b *Board) setFieldValues() {
	j, k := 0, 59
	for r := 0; r < Rings; r++ {
		value, diff := b.scheme.RingValue(r), b.scheme.RingDiff(r)
		if diff < 1 {
			diff = 1
		}
		if r == 0 {
			b.fieldValue[0] = value
			continue
		}
		for i := ringStart[r]; i < ringStart[r+1]; i++ {
			j += k
			b.fieldValue[i] = value + j%diff
		}
	}
}

// ChangeEvaluation rotates the field values of every ring by one field.
func (b *Board) ChangeEvaluation() {
	b.rotation++
	b.rotateRings(1)
}

func (b *Board) rotateRings(n int) {
	for r := 1; r < Rings; r++ {
		ring := b.fieldValue[ringStart[r]:ringStart[r+1]]
		k := n % len(ring)
		if k == 0 {
			continue
		}
		rotated := append(append([]int{}, ring[k:]...), ring[:k]...)
		copy(ring, rotated)
	}
}

// Evaluate rates the position. Higher values are better for the side that
// made the last move.
func (b *Board) Evaluate() int {
	return b.EvaluateDetail().Total
}

func (b *Board) EvaluateDetail() Evaluation {
	var e Evaluation
	if b.scheme == nil {
		b.SetScheme(nil)
	}

	switch {
	case b.color1Count < MinStones:
		e.Total = -WinValue
		if b.color == Player1 {
			e.Total = WinValue
		}
		return e
	case b.color2Count < MinStones:
		e.Total = -WinValue
		if b.color == Player2 {
			e.Total = WinValue
		}
		return e
	}

	var tcColor, tcOpponent MoveTypeCounter
	var ccColor, ccOpponent InARowCounter
	for i, f := range order {
		c := b.field[f]
		switch c {
		case Free:
			continue
		case b.color:
			b.countFrom(f, c, &tcColor, &ccColor)
			e.Field -= b.fieldValue[i]
		default:
			b.countFrom(f, c, &tcOpponent, &ccOpponent)
			e.Field += b.fieldValue[i]
		}
	}

	// no move left: the side to move has lost
	if tcColor.Sum() == 0 {
		e.Total = WinValue
		return e
	}

	for t := Out2; t < None; t++ {
		e.Move += b.scheme.MoveValue(t) * (tcOpponent.Get(t) - tcColor.Get(t))
	}
	for i := 0; i < InARowCount; i++ {
		e.InARow += b.scheme.InARowValue(i) * (ccOpponent.Get(i) - ccColor.Get(i))
	}
	own, opp := b.Count(b.color), b.Count(b.color.Opponent())
	e.Stone = b.scheme.StoneValue(StartStones-opp) - b.scheme.StoneValue(StartStones-own)

	e.Total = e.Field + e.Move + e.InARow + e.Stone
	return e
}
