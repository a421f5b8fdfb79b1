package engine

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
)

type Engine interface {
	// Run plays a game till there's a winner, the side to move is stuck or
	// a max number of turns is reached. Winner is game.Free in the latter cases.
	Run(ctx context.Context) (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
