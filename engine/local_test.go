package engine

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"qenolaba/communication"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/player"
	"qenolaba/searcher"
	"qenolaba/searcher/agent"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	updates []string
}

func (r *recorder) Broadcast(diagram string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, diagram)
}

func (r *recorder) OnPosition(func(string)) {}
func (r *recorder) Close() error            { return nil }

var _ communication.Communicator = (*recorder)(nil)

type fixedAgent struct {
	move game.Move
}

func (a fixedAgent) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	return a.move, metrics.SearchMetric{}
}

// winningPosition has Player1 to move one push away from the sixth stone.
func winningPosition() *game.Board {
	b := game.NewBoard()
	b.Clear()
	for _, f := range []int{12, 14, 15, 23, 24, 25, 26, 27, 28} {
		b.Set(f, game.Player1)
	}
	for _, f := range []int{16, 92, 93, 94, 104, 105, 106, 107, 108} {
		b.Set(f, game.Player2)
	}
	b.SetToMove(game.Player1)
	return b
}

func TestLocalEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("random game", func(t *testing.T) {
		comm := &recorder{}
		e := NewLocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2),
			WithStart(game.Player2), WithCommunicator(comm), WithMaxTurns(60))

		winner, gameMetric, moveMetrics := e.Run(ctx)

		require.Equal(t, int(game.Player2), gameMetric.StartingPlayer)
		require.Equal(t, int(winner), gameMetric.Winner)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.LessOrEqual(t, gameMetric.TotalMoves, 60)
		require.Len(t, comm.updates, gameMetric.TotalMoves+1, "Every position should be broadcast")
		require.Equal(t, e.Board.State(), comm.updates[len(comm.updates)-1])
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			want := game.Player2
			if i%2 == 1 {
				want = game.Player1
			}
			require.Equal(t, int(want), mm.Player, "Players should alternate")
		}
	})

	t.Run("search agent finishes the game", func(t *testing.T) {
		s1 := searcher.NewSearcher(searcher.WithLevel(searcher.Medium))
		s2 := searcher.NewSearcher(searcher.WithLevel(searcher.Medium))
		e := NewLocalEngine(agent.NewEvaluationAgent(s1), agent.NewEvaluationAgent(s2),
			WithBoard(winningPosition()))

		winner, gameMetric, _ := e.Run(ctx)
		require.Equal(t, game.Player1, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.False(t, e.Board.IsValid())
	})

	t.Run("illegal move is replaced", func(t *testing.T) {
		illegal := game.Move{Field: 60, Direction: game.Right, Type: game.Move1}
		e := NewLocalEngine(fixedAgent{illegal}, fixedAgent{illegal}, WithMaxTurns(3))
		first := e.Board.LegalMoves()[0]

		_, gameMetric, _ := e.Run(ctx)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Equal(t, 3, e.Board.MovesStored())
		e.Board.TakeBack()
		e.Board.TakeBack()
		require.Equal(t, first, e.Board.LastMove())
	})

	t.Run("player without input stops the game", func(t *testing.T) {
		b := game.NewBoard()
		first := b.LegalMoves()[0]
		console := player.NewConsole(strings.NewReader(""), io.Discard)
		e := NewLocalEngine(fixedAgent{first}, console, WithBoard(b))

		winner, gameMetric, _ := e.Run(ctx)
		require.Equal(t, game.Free, winner)
		require.Equal(t, 1, gameMetric.TotalMoves, "Game should stop instead of moving for the console")
		require.Equal(t, 1, e.Board.MovesStored())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		e := NewLocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2))
		winner, gameMetric, moveMetrics := e.Run(ctx)
		require.Equal(t, game.Free, winner)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
	})
}

func TestRemoteAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("plays the server's move", func(t *testing.T) {
		s := searcher.NewSearcher(searcher.WithLevel(searcher.Medium), searcher.WithTrace())
		srv := httptest.NewServer(agent.NewAgentServer(agent.NewEvaluationAgent(s)))
		defer srv.Close()

		b := winningPosition()
		m, metric := NewRemoteAgent(srv.URL).FindMove(ctx, b)
		require.Equal(t, game.Move{Field: 14, Direction: game.Right, Type: game.Out1With2}, m)
		require.Equal(t, searcher.Won, metric.Value)
	})

	t.Run("falls back when the server fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		b := game.NewBoard()
		m, _ := NewRemoteAgent(srv.URL).FindMove(ctx, b)
		require.Equal(t, b.LegalMoves()[0], m)
	})

	t.Run("remote game", func(t *testing.T) {
		srv := httptest.NewServer(agent.NewAgentServer(agent.NewRandomAgent(5)))
		defer srv.Close()

		e := NewLocalEngine(NewRemoteAgent(srv.URL), agent.NewRandomAgent(6), WithMaxTurns(10))
		_, gameMetric, _ := e.Run(ctx)
		require.Equal(t, 10, gameMetric.TotalMoves)
	})
}
