package player

import (
	"bytes"
	"context"
	"qenolaba/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	b := game.NewBoard()

	t.Run("in-line and side step moves", func(t *testing.T) {
		for _, tc := range []struct {
			text string
			want game.Move
		}{
			{"C3/Right", game.Move{Field: 36, Direction: game.Right, Type: game.Move3}},
			{" c3/right ", game.Move{Field: 36, Direction: game.Right, Type: game.Move3}},
			{"A3/LeftDown", game.Move{Field: 14, Direction: game.LeftDown, Type: game.Move3}},
			{"C4/Left", game.Move{Field: 37, Direction: game.Left, Type: game.Move2}},
			{"C5/Right", game.Move{Field: 38, Direction: game.Right, Type: game.Move1}},
			{"C3-C5/RightDown", game.Move{Field: 36, Direction: game.Right, Type: game.Right3}},
			{"C5-C3/RightDown", game.Move{Field: 36, Direction: game.Right, Type: game.Right3}},
			{"C3-C5/LeftDown", game.Move{Field: 38, Direction: game.Left, Type: game.Left3}},
			{"B1-B2/LeftDown", game.Move{Field: 24, Direction: game.Left, Type: game.Left2}},
			{"B5-C5/RightDown", game.Move{Field: 27, Direction: game.LeftDown, Type: game.Left2}},
		} {
			m, err := ParseMove(b, tc.text)
			require.NoError(t, err, "Move %q should parse", tc.text)
			require.Equal(t, tc.want, m, "Move %q", tc.text)
			require.True(t, b.IsLegal(m))
		}
	})

	t.Run("every generated move parses back", func(t *testing.T) {
		for _, m := range b.LegalMoves() {
			parsed, err := ParseMove(b, m.Name())
			require.NoError(t, err, "Move %s should parse", m.Name())
			require.Equal(t, m.Name(), parsed.Name())
		}
	})

	t.Run("suffix", func(t *testing.T) {
		c := game.NewBoard()
		c.Clear()
		for _, f := range []int{12, 14, 15, 23, 24, 25, 26, 27, 28} {
			c.Set(f, game.Player1)
		}
		for _, f := range []int{16, 92, 93, 94, 104, 105, 106, 107, 108} {
			c.Set(f, game.Player2)
		}
		c.SetToMove(game.Player1)
		out := game.Move{Field: 14, Direction: game.Right, Type: game.Out1With2}

		for _, text := range []string{"A3/Right/Out", "A3/Right/out", "A3/Right"} {
			m, err := ParseMove(c, text)
			require.NoError(t, err, "Move %q should parse", text)
			require.Equal(t, out, m)
		}
		_, err := ParseMove(c, "A3/Right/Push")
		require.ErrorIs(t, err, ErrNoSuchMove)
		_, err = ParseMove(b, "C3/Right/Push")
		require.ErrorIs(t, err, ErrNoSuchMove)
	})

	t.Run("errors", func(t *testing.T) {
		for _, text := range []string{
			"", "C3", "Z9/Right", "C3/Up", "A1/Right", "I5/Left",
			"C3/Right/Fast", "C3-C5/Right/Push", "C3-C6/RightDown", "C3-D4/Right",
			"A1/Right/Out/Now",
		} {
			_, err := ParseMove(b, text)
			require.ErrorIs(t, err, ErrNoSuchMove, "Move %q should be rejected", text)
		}
	})
}

func TestConsole(t *testing.T) {
	b := game.NewBoard()

	t.Run("prompts until a legal move", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(strings.NewReader("junk\n\n?\nC3/Right\n"), &out)

		m, metric := c.FindMove(context.Background(), b)
		require.Equal(t, game.Move{Field: 36, Direction: game.Right, Type: game.Move3}, m)
		require.Equal(t, m, metric.BestMove)
		require.Contains(t, out.String(), b.State())
		require.Contains(t, out.String(), "O to move> ")
		require.Contains(t, out.String(), "C3-C5/RightDown", "Help should list the moves")
		require.Contains(t, out.String(), ErrNoSuchMove.Error())
	})

	t.Run("end of input", func(t *testing.T) {
		c := NewConsole(strings.NewReader("junk\n"), &bytes.Buffer{})
		m, _ := c.FindMove(context.Background(), b)
		require.Equal(t, game.NoMove, m)
	})
}
