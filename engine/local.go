package engine

import (
	"context"
	"qenolaba/communication"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/meta"
	"qenolaba/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine lets two agents play on one board.
type LocalEngine struct {
	Board    *game.Board
	agents   [2]agent.Agent
	comm     communication.Communicator
	maxTurns int
}

var _ Engine = (*LocalEngine)(nil)

// WithBoard starts the game from b instead of the start position.
func WithBoard(b *game.Board) Option {
	return func(e *LocalEngine) {
		e.Board = b
	}
}

// WithStart lets side make the first move from the start position.
func WithStart(side game.Cell) Option {
	return func(e *LocalEngine) {
		e.Board.Begin(side)
	}
}

// WithCommunicator broadcasts every position of the game through comm.
func WithCommunicator(comm communication.Communicator) Option {
	return func(e *LocalEngine) {
		e.comm = comm
	}
}

func WithMaxTurns(n int) Option {
	return func(e *LocalEngine) {
		e.maxTurns = n
	}
}

// NewLocalEngine creates a game where player1 moves the O stones and player2
// the X stones.
func NewLocalEngine(player1, player2 agent.Agent, options ...Option) *LocalEngine {
	if player1 == nil || player2 == nil {
		panic("need two agents")
	}
	e := &LocalEngine{
		Board:    game.NewBoard(),
		agents:   [2]agent.Agent{player1, player2},
		comm:     communication.Nop(),
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run(ctx context.Context) (game.Cell, metrics.GameMetric, []metrics.MoveMetric) {
	b := e.Board
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(b.ToMove()),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("player %v is starting", b.ToMove())
	e.comm.Broadcast(b.State())

	turnCount := 0
	for b.IsValid() && turnCount < e.maxTurns && ctx.Err() == nil {
		player := b.ToMove()
		move, searchMetric := e.agents[player-1].FindMove(ctx, b)

		if !b.IsLegal(move) {
			fallback := b.LegalMoves()
			if len(fallback) == 0 {
				log.Info().Msgf("player %v cannot move", player)
				break
			}
			// an agent with moves left that answers NoMove has given up
			if move.Type == game.None {
				log.Info().Msgf("player %v stopped playing", player)
				break
			}
			log.Warn().Msgf("player %v chose illegal move %s, playing %s", player, move.Name(), fallback[0].Name())
			move = fallback[0]
		}

		turnCount++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       int(player),
			SearchMetric: searchMetric,
		})
		b.Play(move)
		log.Debug().Msgf("turn %d: %v plays %s", turnCount, player, move.Name())
		e.comm.Broadcast(b.State())
	}

	winner := b.Winner()
	if winner != game.Free {
		log.Info().Msgf("game ended after %d turns, winner: %v", turnCount, winner)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner)", turnCount)
	}

	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turnCount
	return winner, gameMetric, moveMetrics
}
