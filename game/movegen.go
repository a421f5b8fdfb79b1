package game

// GenerateMoves fills list with all moves of the side to move, visiting the
// fields in ring order.
func (b *Board) GenerateMoves(list *MoveList) {
	list.Clear()
	for _, f := range order {
		if b.field[f] == b.color {
			b.generateFieldMoves(f, list)
		}
	}
}

// LegalMoves returns the moves of the side to move in type order.
func (b *Board) LegalMoves() []Move {
	var list MoveList
	b.GenerateMoves(&list)
	return list.Moves()
}

// IsLegal reports whether m is a move of the side to move.
func (b *Board) IsLegal(m Move) bool {
	if m.Type == None || m.Direction <= 0 {
		return false
	}
	var list MoveList
	b.GenerateMoves(&list)
	found := m
	return list.IsElement(&found, StartAll, false) && found == m
}

// generateFieldMoves adds the moves of the group starting at start to list.
func (b *Board) generateFieldMoves(start int, list *MoveList) {
	color := b.color
	opponent := color.Opponent()

	for d := 1; d < 7; d++ {
		dir := direction[d]
		leftDir, rightDir := direction[d-1], direction[d+1]

		// 2nd field
		f := start + dir
		c := b.field[f]
		if c == Free {
			list.insert(start, d, Move1)
			continue
		}
		if c != color {
			continue
		}

		left := b.field[start+leftDir] == Free && b.field[f+leftDir] == Free
		if left {
			list.insert(start, d, Left2)
		}
		right := b.field[start+rightDir] == Free && b.field[f+rightDir] == Free
		if right {
			list.insert(start, d, Right2)
		}

		// 3rd field
		f += dir
		c = b.field[f]
		if c == Free {
			list.insert(start, d, Move2)
			continue
		}
		if c == opponent {
			switch b.field[f+dir] {
			case Free:
				list.insert(start, d, Push1With2)
			case Out:
				list.insert(start, d, Out1With2)
			}
			continue
		}
		if c != color {
			continue
		}

		if left && b.field[f+leftDir] == Free {
			list.insert(start, d, Left3)
		}
		if right && b.field[f+rightDir] == Free {
			list.insert(start, d, Right3)
		}

		// 4th field
		f += dir
		c = b.field[f]
		if c == Free {
			list.insert(start, d, Move3)
			continue
		}
		if c != opponent {
			continue
		}

		// 5th field
		f += dir
		c = b.field[f]
		if c == Free {
			list.insert(start, d, Push1With3)
			continue
		}
		if c == Out {
			list.insert(start, d, Out1With3)
			continue
		}
		if c != opponent {
			continue
		}

		// 6th field
		switch b.field[f+dir] {
		case Free:
			list.insert(start, d, Push2)
		case Out:
			list.insert(start, d, Out2)
		}
	}
}

// countFrom mirrors generateFieldMoves for the stone of color at start, but
// only counts the possible move types. It also counts the runs of 2 to 5
// stones leaving start in each direction.
func (b *Board) countFrom(start int, color Cell, tc *MoveTypeCounter, cc *InARowCounter) {
	for d := 1; d < 7; d++ {
		dir := direction[d]
		leftDir, rightDir := direction[d-1], direction[d+1]

		f := start + dir
		c := b.field[f]
		if c == Free {
			tc.Incr(Move1)
			continue
		}
		if c != color {
			continue
		}

		cc.Incr(InARow2)

		left := b.field[start+leftDir] == Free && b.field[f+leftDir] == Free
		if left {
			tc.Incr(Left2)
		}
		right := b.field[start+rightDir] == Free && b.field[f+rightDir] == Free
		if right {
			tc.Incr(Right2)
		}

		f += dir
		c = b.field[f]
		switch {
		case c == Free:
			tc.Incr(Move2)
			continue
		case c == Out:
			continue
		case c != color:
			switch b.field[f+dir] {
			case Free:
				tc.Incr(Push1With2)
			case Out:
				tc.Incr(Out1With2)
			}
			continue
		}

		cc.Incr(InARow3)

		if left && b.field[f+leftDir] == Free {
			tc.Incr(Left3)
		}
		if right && b.field[f+rightDir] == Free {
			tc.Incr(Right3)
		}

		f += dir
		c = b.field[f]
		switch {
		case c == Free:
			tc.Incr(Move3)
			continue
		case c == Out:
			continue
		case c != color:
			f += dir
			switch c2 := b.field[f]; {
			case c2 == Free:
				tc.Incr(Push1With3)
			case c2 == Out:
				tc.Incr(Out1With3)
			case c2 == c:
				switch b.field[f+dir] {
				case Free:
					tc.Incr(Push2)
				case Out:
					tc.Incr(Out2)
				}
			}
			continue
		}

		cc.Incr(InARow4)

		if b.field[f+dir] == color {
			cc.Incr(InARow5)
		}
	}
}
