package experiments

import (
	"context"
	"fmt"
	"qenolaba/engine"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher"
	"qenolaba/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 20 // Per match up

// Runner plays the games of an experiment and stores their records below Root.
type Runner struct {
	Root     string
	NumGames int
	MaxTurns int
	Seed     uint64
	rng      *rand.Rand
}

func NewRunner(root string) *Runner {
	return &Runner{
		Root:     root,
		NumGames: NumGames,
		Seed:     uint64(time.Now().UnixNano()),
	}
}

// RunLevelExperiment pairs every search level against the weakest one.
func (r *Runner) RunLevelExperiment(ctx context.Context) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Level: int(searcher.Weak)}
	configs := []metrics.AgentConfig{
		{ID: 1, Level: int(searcher.Weak)}, // Baseline equivalent
		{ID: 2, Level: int(searcher.Medium)},
		{ID: 3, Level: int(searcher.Strong)},
		{ID: 4, Level: int(searcher.Challenge)},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return r.runExperiment(ctx, "levels", append(configs, baseline), matchUps)
}

// RunSchemeExperiment pairs each evaluation scheme against the default one
// at the same level.
func (r *Runner) RunSchemeExperiment(ctx context.Context, level searcher.Level, schemes []*game.EvalScheme) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Level: int(level)}
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, s := range schemes {
		config := metrics.AgentConfig{ID: i + 1, Level: int(level), Scheme: s.String()}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return r.runExperiment(ctx, "schemes", append(configs, baseline), matchUps)
}

// RunRandomBaseline pairs every search level against a random player.
func (r *Runner) RunRandomBaseline(ctx context.Context) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	configs := []metrics.AgentConfig{
		{ID: 1, Level: int(searcher.Weak)},
		{ID: 2, Level: int(searcher.Medium)},
		{ID: 3, Level: int(searcher.Weak), Epsilon: 0.2},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return r.runExperiment(ctx, "random_baseline", append(configs, baseline), matchUps)
}

// runExperiment plays NumGames games per matchup. The agents keep their
// stones and take turns in making the first move. It returns the directory
// the records were written to.
func (r *Runner) runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	r.rng = rand.New(rand.NewSource(r.Seed))

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < r.NumGames; i++ {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			start := game.Player1
			if i%2 == 1 {
				start = game.Player2
			}

			winner, gameMetric, moveMetrics, err := r.runGame(ctx, config1, config2, start)
			if err != nil {
				return "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)
	return r.store(name, configs, gameRecords, moveRecords)
}

// store writes the experiment metadata and results.
func (r *Runner) store(name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(r.Root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func (r *Runner) runGame(ctx context.Context, config1, config2 metrics.AgentConfig, start game.Cell) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := r.createAgent(config1)
	if err != nil {
		return game.Free, metrics.GameMetric{}, nil, err
	}
	agent2, err := r.createAgent(config2)
	if err != nil {
		return game.Free, metrics.GameMetric{}, nil, err
	}

	options := []engine.Option{engine.WithStart(start)}
	if r.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(r.MaxTurns))
	}
	e := engine.NewLocalEngine(agent1, agent2, options...)

	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func (r *Runner) createAgent(config metrics.AgentConfig) (agent.Agent, error) {
	seed := r.rng.Uint64()
	if config.Random {
		return agent.NewRandomAgent(seed), nil
	}

	options := []searcher.Option{searcher.WithMetrics(), searcher.WithSeed(seed)}
	if config.Level > 0 {
		options = append(options, searcher.WithLevel(searcher.Level(config.Level)))
	}
	if config.Scheme != "" {
		scheme, err := game.ParseScheme(config.Scheme)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		options = append(options, searcher.WithScheme(scheme))
	}
	s := searcher.NewSearcher(options...)

	if config.Epsilon > 0 {
		return agent.NewTrainingAgent(s, config.Epsilon, seed), nil
	}
	return agent.NewEvaluationAgent(s), nil
}
