package searcher

import "qenolaba/game"

const maxPVDepth = 10

// PV is the triangular table of best lines. Row d holds the best line found
// from ply d on, row 0 is the principal variation.
type PV struct {
	moves    [maxPVDepth][maxPVDepth]game.Move
	maxDepth int
}

// Clear empties the table and limits it to depth plies.
func (pv *PV) Clear(depth int) {
	for i := range pv.moves {
		for j := range pv.moves[i] {
			pv.moves[i][j] = game.NoMove
		}
	}
	pv.maxDepth = min(depth, maxPVDepth-1)
}

// Update makes m followed by the line of ply d+1 the best line of ply d.
// Row d+1 is emptied, so a sibling rated without a subtree gets no moves of
// an earlier sibling's line. Plies beyond the table are ignored.
func (pv *PV) Update(d int, m game.Move) {
	if d < 0 || d >= maxPVDepth {
		return
	}
	for i := d + 1; i < maxPVDepth; i++ {
		pv.moves[d][i] = pv.moves[d+1][i]
		pv.moves[d+1][i] = game.NoMove
	}
	pv.moves[d][d] = m
}

// ClearRow empties the line of ply d.
func (pv *PV) ClearRow(d int) {
	if d < 0 || d >= maxPVDepth {
		return
	}
	for i := d; i < maxPVDepth; i++ {
		pv.moves[d][i] = game.NoMove
	}
}

// At returns the move of the principal variation at ply d.
func (pv *PV) At(d int) game.Move {
	if d < 0 || d >= maxPVDepth {
		return game.NoMove
	}
	return pv.moves[0][d]
}

// Line returns the principal variation up to the first missing move.
func (pv *PV) Line() []game.Move {
	line := []game.Move{}
	for d := 0; d <= pv.maxDepth; d++ {
		m := pv.At(d)
		if m.Type == game.None {
			break
		}
		line = append(line, m)
	}
	return line
}
