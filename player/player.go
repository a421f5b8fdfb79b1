package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher/agent"
	"qenolaba/utils"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoSuchMove = errors.New("no such move")

var directionNames = func() []string {
	names := []string{}
	for d := game.Right; d <= game.RightUp; d++ {
		names = append(names, strings.ToLower(game.DirectionName(d)))
	}
	return names
}()

func directionOfName(name string) int {
	return utils.FindIndex(directionNames, strings.ToLower(name)) + 1
}

// ParseMove reads a move of the side to move in the notation of
// game.Move.Name: "C3/Right", "A1/RightDown/Push", "B2/Left/Out", or
// "C3-C5/RightDown" for side steps. The suffix is optional and case is
// ignored.
func ParseMove(b *game.Board, text string) (game.Move, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%q: want FIELD/DIRECTION", text)
	}
	dir := directionOfName(parts[1])
	if dir <= 0 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "unknown direction %q", parts[1])
	}

	var list game.MoveList
	b.GenerateMoves(&list)

	fields := strings.Split(parts[0], "-")
	if len(fields) == 2 {
		if len(parts) == 3 {
			return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%q: side steps never push", text)
		}
		return parseSideStep(&list, fields[0], fields[1], dir)
	}
	if len(fields) != 1 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%q: bad field", text)
	}

	f := game.FieldOfName(fields[0])
	if f < 0 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "unknown field %q", fields[0])
	}
	m := game.Move{Field: f, Direction: dir, Type: game.None}
	if !list.IsElement(&m, game.Start1, false) {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%s cannot move %s", fields[0], parts[1])
	}
	if len(parts) == 3 {
		switch strings.ToLower(parts[2]) {
		case "out":
			if !m.IsOutMove() {
				return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%s does not push out", m.Name())
			}
		case "push":
			if !m.IsPushMove() || m.IsOutMove() {
				return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%s is no push", m.Name())
			}
		default:
			return game.NoMove, errors.Wrapf(ErrNoSuchMove, "unknown suffix %q", parts[2])
		}
	}
	return m, nil
}

// parseSideStep finds the side step moving the group between the fields
// named from and to in direction step.
func parseSideStep(list *game.MoveList, from, to string, step int) (game.Move, error) {
	f1, f2 := game.FieldOfName(from), game.FieldOfName(to)
	if f1 < 0 || f2 < 0 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "unknown field in %s-%s", from, to)
	}
	if f1 > f2 {
		f1, f2 = f2, f1
	}

	start, line := game.Start2, game.DirectionOfFieldDiff(f2-f1)
	types := []game.MoveType{game.Left2, game.Right2}
	if line == 0 && (f2-f1)%2 == 0 {
		start, line = game.Start3, game.DirectionOfFieldDiff((f2-f1)/2)
		types = []game.MoveType{game.Left3, game.Right3}
	}
	if line == 0 {
		return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%s-%s is no group", from, to)
	}

	want := game.FieldName(f1) + "-" + game.FieldName(f2) + "/" + game.DirectionName(step)
	opposite := (line+2)%6 + 1
	for _, c := range []struct{ field, dir int }{{f1, line}, {f2, opposite}} {
		for _, t := range types {
			m := game.Move{Field: c.field, Direction: c.dir, Type: t}
			if list.IsElement(&m, start, false) && m.Name() == want {
				return m, nil
			}
		}
	}
	return game.NoMove, errors.Wrapf(ErrNoSuchMove, "%s", want)
}

// Console is an agent that reads its moves from a terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ agent.Agent = (*Console)(nil)

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// FindMove shows the position and prompts until a legal move is entered.
// "?" lists the legal moves. NoMove is returned when the input ends.
func (c *Console) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	fmt.Fprint(c.out, b.State())
	for ctx.Err() == nil {
		fmt.Fprintf(c.out, "%v to move> ", b.ToMove())
		if !c.in.Scan() {
			break
		}
		line := strings.TrimSpace(c.in.Text())
		switch line {
		case "":
			continue
		case "?", "help":
			names := []string{}
			for _, m := range b.LegalMoves() {
				names = append(names, m.Name())
			}
			fmt.Fprintln(c.out, strings.Join(names, " "))
			continue
		}

		m, err := ParseMove(b, line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return m, metrics.SearchMetric{BestMove: m}
	}
	return game.NoMove, metrics.SearchMetric{BestMove: game.NoMove}
}
