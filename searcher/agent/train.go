package agent

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	searcher *searcher.Searcher
	epsilon  float64
	rng      *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that explores: with
// probability epsilon it plays a random move instead of the best one.
func NewTrainingAgent(s *searcher.Searcher, epsilon float64, seed uint64) Agent {
	return &trainingAgent{
		searcher: s,
		epsilon:  epsilon,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	if a.rng.Float64() < a.epsilon {
		m := searcher.RandomMove(b, a.rng)
		return m, metrics.SearchMetric{BestMove: m}
	}
	return a.searcher.BestMove(ctx, b)
}
