package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoHeader = errors.New("diagram has no '#' header")
	ErrShortRow = errors.New("diagram row has too few fields")
)

var markers = [...]string{". ", "O ", "X ", "o ", "x "}

const indent = "       "

// State renders the board as a text diagram:
//
//	#12  X  -----------   O: 14  X: 13
//	       / O O O O O \
//	      / O O O O O O \
//	...
func (b *Board) State() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n#%-3d %c  -----------   O: %d  X: %d\n",
		b.moveNo, markers[b.color][0], b.color1Count, b.color2Count)
	for row := 0; row < 4; row++ {
		sb.WriteString(indent[row:])
		sb.WriteString("/ ")
		for i := 0; i < 5+row; i++ {
			sb.WriteString(markers[b.field[row*11+12+i]])
		}
		sb.WriteString("\\\n")
	}
	sb.WriteString("   | ")
	for i := 0; i < 9; i++ {
		sb.WriteString(markers[b.field[56+i]])
	}
	sb.WriteString("|\n")
	for row := 0; row < 4; row++ {
		sb.WriteString(indent[3-row:])
		sb.WriteString("\\ ")
		for i := 0; i < 8-row; i++ {
			sb.WriteString(markers[b.field[68+row*12+i]])
		}
		sb.WriteString("/\n")
	}
	sb.WriteString("       -----------\n")
	return sb.String()
}

func (b *Board) String() string {
	return b.State()
}

// SetState reads a diagram written by State. The side to move is taken from
// the O or X marker of the header line, or from the parity of the move
// number if there is none. The stone counters are recounted from the rows
// and the move history is cleared. On error the board is left unchanged.
func (b *Board) SetState(diagram string) error {
	header := strings.IndexByte(diagram, '#')
	if header < 0 {
		return ErrNoHeader
	}

	scratch := b.Clone()
	scratch.Clear()

	i := header + 1
	for i < len(diagram) && diagram[i] == ' ' {
		i++
	}
	moveNo := 0
	for ; i < len(diagram) && diagram[i] >= '0' && diagram[i] <= '9'; i++ {
		moveNo = moveNo*10 + int(diagram[i]-'0')
	}
	scratch.moveNo = moveNo

	color := Free
	for ; i < len(diagram); i++ {
		c := diagram[i]
		if c == '-' || c == '\n' {
			break
		}
		if c == 'O' {
			color = Player1
			break
		}
		if c == 'X' {
			color = Player2
			break
		}
	}
	if color == Free {
		color = Player1
		if moveNo%2 == 1 {
			color = Player2
		}
	}
	scratch.color = color

	i = header
	for row := 0; row < 9; row++ {
		var delim byte
		var f, rowEnd int
		switch {
		case row < 4:
			delim, f, rowEnd = '/', 12+row*11, row*12+17
		case row == 4:
			delim, f, rowEnd = '|', 56, 65
		default:
			delim, f, rowEnd = '\\', 8+row*12, 21+row*11
		}

		start := strings.IndexByte(diagram[i:], delim)
		if start < 0 {
			return errors.Wrapf(ErrShortRow, "row %c missing", 'A'+row)
		}
		for i += start + 1; f < rowEnd; i++ {
			if i >= len(diagram) || diagram[i] == '\n' {
				return errors.Wrapf(ErrShortRow, "row %c", 'A'+row)
			}
			switch diagram[i] {
			case '.':
				scratch.field[f] = Free
			case 'o', 'O':
				scratch.field[f] = Player1
			case 'x', 'X':
				scratch.field[f] = Player2
			default:
				continue
			}
			f++
		}
	}

	scratch.recount()
	*b = *scratch
	return nil
}
