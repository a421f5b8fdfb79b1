package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveList(t *testing.T) {
	t.Run("next returns moves in type order", func(t *testing.T) {
		l := NewMoveList()
		l.Insert(Move{Field: 60, Direction: Right, Type: Move1})
		l.Insert(Move{Field: 61, Direction: Left, Type: Push1With2})
		l.Insert(Move{Field: 62, Direction: Left, Type: Move1})
		l.Insert(Move{Field: 63, Direction: Left, Type: Out2})

		got := []Move{}
		for m, ok := l.Next(None); ok; m, ok = l.Next(None) {
			got = append(got, m)
		}
		require.Equal(t, []Move{
			{Field: 63, Direction: Left, Type: Out2},
			{Field: 61, Direction: Left, Type: Push1With2},
			{Field: 60, Direction: Right, Type: Move1},
			{Field: 62, Direction: Left, Type: Move1},
		}, got)
		_, ok := l.Next(None)
		require.False(t, ok, "Exhausted list should stay exhausted")
	})

	t.Run("next stops at max type and resumes", func(t *testing.T) {
		l := NewMoveList()
		l.Insert(Move{Field: 60, Direction: Right, Type: Move1})
		l.Insert(Move{Field: 61, Direction: Left, Type: Push1With2})
		l.Insert(Move{Field: 62, Direction: Left, Type: Move2})

		m, ok := l.Next(MaxPushType)
		require.True(t, ok)
		require.Equal(t, Push1With2, m.Type)
		_, ok = l.Next(MaxPushType)
		require.False(t, ok, "Moves above max type should be held back")

		m, ok = l.Next(None)
		require.True(t, ok)
		require.Equal(t, Move2, m.Type, "Iteration should resume after the last returned type")
		m, ok = l.Next(None)
		require.True(t, ok)
		require.Equal(t, Move1, m.Type)
	})

	t.Run("insert drops invalid and surplus moves", func(t *testing.T) {
		l := NewMoveList()
		l.Insert(NoMove)
		require.Equal(t, 0, l.Len())

		for i := 0; i < MaxMoves+10; i++ {
			l.Insert(Move{Field: 60, Direction: 1 + i%6, Type: Move1})
		}
		require.Equal(t, MaxMoves, l.Len())
		require.Len(t, l.Moves(), MaxMoves)
	})

	t.Run("clear", func(t *testing.T) {
		l := NewMoveList()
		l.Insert(Move{Field: 60, Direction: Right, Type: Move1})
		l.Next(None)
		l.Clear()
		require.Equal(t, 0, l.Len())
		_, ok := l.Next(None)
		require.False(t, ok)
	})
}

func TestMoveListIsElement(t *testing.T) {
	newList := func() *MoveList {
		l := NewMoveList()
		l.Insert(Move{Field: 36, Direction: Right, Type: Right2})
		l.Insert(Move{Field: 36, Direction: Right, Type: Right3})
		l.Insert(Move{Field: 36, Direction: Right, Type: Move3})
		l.Insert(Move{Field: 36, Direction: RightDown, Type: Move2})
		l.Insert(Move{Field: 24, Direction: RightDown, Type: Move1})
		return l
	}

	t.Run("field only", func(t *testing.T) {
		l := newList()
		require.True(t, l.ContainsField(36))
		require.True(t, l.ContainsField(24))
		require.False(t, l.ContainsField(60))
	})

	t.Run("exact match fills nothing else", func(t *testing.T) {
		l := newList()
		m := Move{Field: 36, Direction: RightDown, Type: Move2}
		require.True(t, l.IsElement(&m, StartAll, false))
		require.Equal(t, Move{Field: 36, Direction: RightDown, Type: Move2}, m)
	})

	t.Run("exact type fills direction", func(t *testing.T) {
		l := newList()
		m := Move{Field: 36, Type: Move2}
		require.True(t, l.IsElement(&m, Start1, false))
		require.Equal(t, RightDown, m.Direction)
	})

	t.Run("partial match by start size", func(t *testing.T) {
		for _, tc := range []struct {
			start StartType
			dir   int
			want  MoveType
		}{
			{StartAll, Right, Right2},
			{Start2, Right, Right2},
			{Start3, Right, Right3},
			{Start1, Right, Move3},
			{Start1, RightDown, Move2},
		} {
			l := newList()
			m := Move{Field: 36, Direction: tc.dir, Type: None}
			require.True(t, l.IsElement(&m, tc.start, false), "Start %d direction %d should match", tc.start, tc.dir)
			require.Equal(t, tc.want, m.Type)
			require.Equal(t, tc.dir, m.Direction)
		}
	})

	t.Run("no match", func(t *testing.T) {
		l := newList()
		m := Move{Field: 36, Direction: Left, Type: None}
		require.False(t, l.IsElement(&m, StartAll, false))
		m = Move{Field: 24, Direction: RightDown, Type: None}
		require.False(t, l.IsElement(&m, Start2, false), "Single stone move should not match a two stone start")
		m = Move{Field: 36, Direction: Right, Type: Push2}
		require.False(t, l.IsElement(&m, StartAll, false))
	})

	t.Run("delete consumes the entry", func(t *testing.T) {
		l := newList()
		m := Move{Field: 36, Direction: Right, Type: Move3}
		require.True(t, l.IsElement(&m, StartAll, true))
		require.False(t, l.IsElement(&m, StartAll, false), "Deleted move should not be found again")

		got := []Move{}
		for m, ok := l.Next(None); ok; m, ok = l.Next(None) {
			got = append(got, m)
		}
		require.Len(t, got, 4)
		require.NotContains(t, got, Move{Field: 36, Direction: Right, Type: Move3})
	})
}

func TestCounters(t *testing.T) {
	var tc MoveTypeCounter
	tc.Incr(Move1)
	tc.Incr(Move1)
	tc.Incr(Out2)
	require.Equal(t, 2, tc.Get(Move1))
	require.Equal(t, 3, tc.Sum())

	var cc InARowCounter
	cc.Incr(InARow3)
	require.Equal(t, 1, cc.Get(InARow3))
	require.Equal(t, 0, cc.Get(InARow2))
}
