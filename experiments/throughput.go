package experiments

import (
	"context"
	"qenolaba/experiments/metrics"
	"qenolaba/searcher"
)

// RunThroughputExperiment lets each level play against itself, for the
// same playing strength and similar game length. The move records give
// nodes and time per search.
func (r *Runner) RunThroughputExperiment(ctx context.Context) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for level := searcher.Weak; level <= searcher.Challenge; level++ {
		config := metrics.AgentConfig{ID: int(level), Level: int(level)}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return r.runExperiment(ctx, "throughput", configs, matchUps)
}
