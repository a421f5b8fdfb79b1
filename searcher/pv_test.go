package searcher

import (
	"qenolaba/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPV(t *testing.T) {
	a := game.Move{Field: 60, Direction: game.Right, Type: game.Move1}
	b := game.Move{Field: 61, Direction: game.Left, Type: game.Move1}
	c := game.Move{Field: 62, Direction: game.LeftUp, Type: game.Move2}

	t.Run("update builds the line bottom up", func(t *testing.T) {
		var pv PV
		pv.Clear(3)

		pv.Update(2, c)
		pv.Update(1, b)
		pv.Update(0, a)

		require.Equal(t, []game.Move{a, b, c}, pv.Line())
		require.Equal(t, a, pv.At(0))
		require.Equal(t, c, pv.At(2))
	})

	t.Run("update empties the line below", func(t *testing.T) {
		var pv PV
		pv.Clear(3)
		pv.Update(1, b)
		pv.Update(0, a)
		require.Equal(t, []game.Move{a, b}, pv.Line())
		require.Equal(t, game.NoMove, pv.moves[1][1], "Row 1 should be consumed by the update")

		// a later root move rated without a subtree gets no moves of a's line
		pv.Update(0, c)
		require.Equal(t, []game.Move{c}, pv.Line())
	})

	t.Run("clear row", func(t *testing.T) {
		var pv PV
		pv.Clear(3)
		pv.Update(2, c)
		pv.Update(1, b)
		pv.ClearRow(1)
		pv.Update(0, a)
		require.Equal(t, []game.Move{a}, pv.Line())
	})

	t.Run("clear", func(t *testing.T) {
		var pv PV
		pv.Clear(3)
		pv.Update(0, a)
		pv.Clear(3)
		require.Empty(t, pv.Line())
		require.Equal(t, game.NoMove, pv.At(0))
	})

	t.Run("plies outside the table are ignored", func(t *testing.T) {
		var pv PV
		pv.Clear(20)
		pv.Update(maxPVDepth, a)
		pv.Update(-1, a)
		require.Equal(t, game.NoMove, pv.At(maxPVDepth))
		require.Equal(t, game.NoMove, pv.At(-1))

		pv.Update(maxPVDepth-1, a)
		require.Equal(t, game.NoMove, pv.At(maxPVDepth-1), "Deep update should stay in its own row")
		require.Empty(t, pv.Line())
	})
}
