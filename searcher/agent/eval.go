package agent

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher"
)

type evaluationAgent struct {
	searcher *searcher.Searcher
}

// NewEvaluationAgent returns an agent that plays the best move found by s.
func NewEvaluationAgent(s *searcher.Searcher) Agent {
	return evaluationAgent{searcher: s}
}

func (a evaluationAgent) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	return a.searcher.BestMove(ctx, b)
}

type randomAgent struct {
	searcher *searcher.Searcher
}

// NewRandomAgent returns an agent that plays uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{searcher: searcher.NewSearcher(searcher.WithSeed(seed))}
}

func (a randomAgent) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric) {
	m := a.searcher.RandomMove(b)
	return m, metrics.SearchMetric{BestMove: m}
}
