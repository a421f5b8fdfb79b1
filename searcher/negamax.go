package searcher

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Searcher)

// Searcher finds the best move of a position with an iterative deepening
// negamax search. A Searcher is not safe for concurrent use.
type Searcher struct {
	level   Level
	scheme  *game.EvalScheme
	trace   bool
	yield   func()
	metrics metrics.Collector
	rng     *rand.Rand

	// state of the running search
	maxDepth  int
	pv        PV
	inPV      bool
	breakOut  bool
	cancelled bool
	bestMove  game.Move
}

// WithLevel sets the number of deepening steps.
func WithLevel(level Level) Option {
	return func(s *Searcher) {
		if level > 0 {
			s.level = level
		}
	}
}

// WithScheme attaches scheme to every board before searching it. Without
// it the searcher uses its own copy of the default scheme.
func WithScheme(scheme *game.EvalScheme) Option {
	return func(s *Searcher) {
		if scheme != nil {
			s.scheme = scheme
		}
	}
}

// WithTrace logs every iteration and keeps the field values fixed, so that
// a search can be replayed.
func WithTrace() Option {
	return func(s *Searcher) {
		s.trace = true
	}
}

// WithYield installs a hook that is called after expensive subtrees.
func WithYield(yield func()) Option {
	return func(s *Searcher) {
		s.yield = yield
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		level:   DefaultLevel,
		scheme:  game.NewEvalScheme(game.DefaultSchemeName),
		metrics: metrics.NewDummyCollector(),
		rng:     rand.New(rand.NewSource(rand.Uint64())),
	}
	for _, option := range options {
		option(s)
	}
	s.pv.Clear(int(s.level) + 1)
	return s
}

func (s *Searcher) Level() Level {
	return s.level
}

// PrincipalVariation returns the expected line of the last search.
func (s *Searcher) PrincipalVariation() []game.Move {
	return s.pv.Line()
}

// BestMove searches b for the side to move. b is used as scratch board and
// is unchanged when BestMove returns, apart from the rotation of its field
// values. Cancelling ctx stops deepening; the best move found so far is
// returned. NoMove is returned only if the side to move cannot move at all.
func (s *Searcher) BestMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	if b.Scheme() != s.scheme {
		b.SetScheme(s.scheme)
	}
	s.metrics.Start(int(s.level), b.Scheme().Name())

	realMaxDepth := int(s.level) + 1
	alpha, beta := -Infinity, Infinity
	value := 0
	s.pv.Clear(realMaxDepth)
	s.bestMove = game.NoMove
	s.breakOut, s.cancelled = false, false

	if s.trace {
		log.Debug().Msgf("new search for %v at level %v", b.ToMove(), s.level)
	}

	for s.maxDepth = 1; ; {
		for {
			lowerBound, upperBound := alpha, beta
			s.inPV = s.pv.At(0).Type != game.None

			value = s.search(ctx, b, 0, alpha, beta)
			s.metrics.AddIteration()
			if s.trace {
				log.Debug().Msgf("depth %d window (%d .. %d): value %d pv %v",
					s.maxDepth, lowerBound, upperBound, value, s.pv.Line())
			}

			if value > Decided || value < -Decided {
				s.breakOut = true
			}
			// a decided value without a root move is no reason to stop
			if s.bestMove.Type == game.None {
				s.breakOut = false
			}

			if value <= lowerBound {
				alpha = -Infinity
				if beta < Infinity {
					beta = value + 1
				}
			}
			if value >= upperBound {
				if alpha > -Infinity {
					alpha = value - 1
				}
				beta = Infinity
			}
			if s.breakOut || s.cancelled || (value > lowerBound && value < upperBound) {
				break
			}
		}

		alpha, beta = value-Window, value+Window
		s.maxDepth++
		if s.maxDepth >= realMaxDepth || s.breakOut || s.cancelled {
			break
		}
	}

	if !s.trace {
		b.ChangeEvaluation()
	}

	best := s.bestMove
	if best.Type == game.None {
		if moves := b.LegalMoves(); len(moves) > 0 {
			best = moves[0]
			log.Warn().Msgf("search stopped before a move was rated, playing %s", best.Name())
		}
	}
	if s.trace {
		log.Debug().Msgf("best move %s with value %d", best.Name(), value)
	}
	return best, s.metrics.Complete(value, best)
}

// search returns the value of b for the side to move. Moves above the type
// limit of a ply are rated statically instead of searched deeper: only
// pushes and outs are followed at the last but one ply, and only outs
// beyond that.
func (s *Searcher) search(ctx context.Context, b *game.Board, depth, alpha, beta int) int {
	actValue := -Won + depth

	maxType := game.MaxOutType
	switch {
	case depth < s.maxDepth-1:
		maxType = game.MaxMoveType
	case depth < s.maxDepth:
		maxType = game.MaxPushType
	}

	var list game.MoveList
	b.GenerateMoves(&list)
	s.metrics.AddNode(list.Len())

	m := game.NoMove
	if s.inPV {
		m = s.pv.At(depth)
		if m.Type != game.None && !list.IsElement(&m, game.StartAll, true) {
			m = game.NoMove
		}
		if m.Type == game.None {
			s.inPV = false
		}
	}

	depthPhase := true
	for {
		if m.Type == game.None {
			if depthPhase {
				m, depthPhase = list.Next(maxType)
			}
			if !depthPhase {
				var ok bool
				if m, ok = list.Next(game.None); !ok {
					break
				}
			}
		}
		// a move taken from the PV may be above the type limit
		doDepth := depthPhase && m.Type <= maxType

		// the line below m is rebuilt by its subtree, if it has one
		s.pv.ClearRow(depth + 1)
		s.metrics.AddPlayed(m.Type)
		b.Play(m)
		var value int
		switch {
		case !b.IsValid():
			value = Won - depth
			s.metrics.AddWon()
		case doDepth:
			value = -s.search(ctx, b, depth+1, -beta, -alpha)
		default:
			value = b.Evaluate()
			s.metrics.AddRated()
		}
		b.TakeBack()

		if doDepth {
			s.poll(ctx, depth)
		}
		if value >= beta {
			s.metrics.AddCutoff()
		}

		if value > actValue {
			actValue = value
			s.pv.Update(depth, m)
			if depth == 0 && !s.cancelled {
				s.bestMove = m
			}
			if actValue > Decided || actValue >= beta {
				return actValue
			}
			alpha = max(alpha, actValue)
		}

		// rate the remaining moves statically
		if s.cancelled {
			depthPhase = false
		}
		m = game.NoMove
	}
	return actValue
}

func (s *Searcher) poll(ctx context.Context, depth int) {
	if s.yield != nil && s.maxDepth-depth > 2 {
		s.yield()
	}
	if !s.cancelled && ctx.Err() != nil {
		s.cancelled = true
	}
}

// RandomMove returns a uniformly chosen legal move, or NoMove.
func (s *Searcher) RandomMove(b *game.Board) game.Move {
	return RandomMove(b, s.rng)
}

func RandomMove(b *game.Board, rng *rand.Rand) game.Move {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove
	}
	return moves[rng.Intn(len(moves))]
}
