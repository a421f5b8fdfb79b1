package gamemaster

import (
	"context"
	"qenolaba/game"
	"qenolaba/searcher"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

const updateBuffer = 64

// Update is published after every change of the position. Move is NoMove
// for positions that were set up instead of played.
type Update struct {
	Move   game.Move
	State  string
	ToMove game.Cell
	Winner game.Cell
}

// UpdateGetter returns the next update without blocking. ok is false if
// there is none; closed reports that the game is over and no update follows.
type UpdateGetter func() (u Update, ok bool, closed bool)

// Session owns the board of an interactive game between searches. All
// methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	board    *game.Board
	updateCh chan Update
	gameOver bool

	searchMu sync.Mutex
	searcher *searcher.Searcher
}

func NewSession(s *searcher.Searcher) *Session {
	if s == nil {
		s = searcher.NewSearcher()
	}
	e := &Session{searcher: s, board: game.NewBoard()}
	e.updateCh = make(chan Update, updateBuffer)
	return e
}

// Init starts a new game with start to move and returns its diagram and a
// getter for the updates of the new game.
func (e *Session) Init(start game.Cell) (string, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// consumers of the previous game see it end
	if !e.gameOver {
		close(e.updateCh)
	}
	e.board.Begin(start)
	e.gameOver = false
	e.updateCh = make(chan Update, updateBuffer)

	ch := e.updateCh
	return e.board.State(), func() (Update, bool, bool) {
		select {
		case u, ok := <-ch:
			return u, ok, !ok
		default:
			return Update{}, false, false
		}
	}
}

// Updates returns the channel of the current game. It is closed when the
// game is over.
func (e *Session) Updates() <-chan Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateCh
}

func (e *Session) State() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.State()
}

func (e *Session) ToMove() game.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.ToMove()
}

func (e *Session) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// Play makes a move of the side to move. The move must match a generated
// move exactly.
func (e *Session) Play(m game.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return ErrGameOver
	}
	if !e.board.IsLegal(m) {
		return errors.Wrapf(ErrIllegalMove, "%s", m.Name())
	}
	e.board.Play(m)
	e.publish(m)
	return nil
}

// TakeBack undoes the last move. It reports false if there is none.
func (e *Session) TakeBack() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return false, ErrGameOver
	}
	if !e.board.TakeBack() {
		return false, nil
	}
	e.publish(game.NoMove)
	return true, nil
}

// ApplyPosition replaces the position by a diagram, for example one
// mirrored from another program. The move history is lost.
func (e *Session) ApplyPosition(diagram string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return ErrGameOver
	}
	b := e.board.Clone()
	if err := b.SetState(diagram); err != nil {
		return errors.Wrap(err, "failed to read position")
	}
	if v := b.ValidState(); v != game.Valid {
		return errors.Errorf("position is %v", v)
	}
	e.board = b
	e.publish(game.NoMove)
	return nil
}

// ComputerMove searches the current position and plays the best move. The
// board stays available while searching; if it changes in the meantime the
// result is dropped and ErrIllegalMove returned.
func (e *Session) ComputerMove(ctx context.Context) (game.Move, error) {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()

	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return game.NoMove, ErrGameOver
	}
	b := e.board.Clone()
	fields, moveNo := b.Fields(), b.MoveNo()
	e.mu.Unlock()

	m, metric := e.searcher.BestMove(ctx, b)
	log.Debug().Msgf("computer plays %s (value %d, pv %v)", m.Name(), metric.Value, e.searcher.PrincipalVariation())

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver || e.board.MoveNo() != moveNo || e.board.Fields() != fields {
		return game.NoMove, errors.Wrap(ErrIllegalMove, "position changed while searching")
	}
	if m.Type == game.None {
		return game.NoMove, errors.Wrap(ErrIllegalMove, "no move left")
	}
	// b carries the rotated field values of the search
	b.Play(m)
	e.board = b
	e.publish(m)
	return m, nil
}

// publish sends an update and closes the channel if the game is over.
// Callers hold e.mu.
func (e *Session) publish(m game.Move) {
	u := Update{
		Move:   m,
		State:  e.board.State(),
		ToMove: e.board.ToMove(),
		Winner: e.board.Winner(),
	}
	select {
	case e.updateCh <- u:
	default:
		log.Warn().Msgf("update channel full, dropping update for %s", m.Name())
	}

	if isGameOver(e.board) {
		e.gameOver = true
		close(e.updateCh)
	}
}

// isGameOver checks if the game is over.
func isGameOver(b *game.Board) bool {
	return !b.IsValid() || len(b.LegalMoves()) == 0
}
