package agent

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
)

type Agent interface {
	// FindMove returns the move to play on b and the metrics of the search (if collected).
	// b must be left as it was found.
	FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric)
}
