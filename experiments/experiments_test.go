package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"qenolaba/experiments/metrics"
	"qenolaba/game"
	"qenolaba/searcher"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func testRunner(t *testing.T) *Runner {
	r := NewRunner(t.TempDir())
	r.NumGames = 2
	r.MaxTurns = 16
	r.Seed = 1
	return r
}

func TestRandomBaseline(t *testing.T) {
	dir, err := testRunner(t).RunRandomBaseline(context.Background())
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 5, "Three contestants, the baseline and a header")

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 7, "Two games per matchup and a header")
	totalMoves := 0
	for i, row := range games[1:] {
		require.Equal(t, "0", row[1], "Baseline should play O")
		require.Equal(t, strconv.Itoa(int(game.Player1)+i%2), row[3], "Starting side should alternate")
		n, err := strconv.Atoi(row[8])
		require.NoError(t, err)
		require.LessOrEqual(t, n, 16)
		totalMoves += n
	}

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Len(t, moves, totalMoves+1, "One record per played move")
}

func TestSchemeExperiment(t *testing.T) {
	custom := game.NewEvalScheme("Custom")
	custom.SetMoveValue(game.Move1, 9)
	r := testRunner(t)
	r.NumGames = 1
	r.MaxTurns = 6

	dir, err := r.RunSchemeExperiment(context.Background(), searcher.Weak, []*game.EvalScheme{custom})
	require.NoError(t, err)

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Len(t, moves, 7)
	for _, row := range moves[1:] {
		want := game.DefaultSchemeName
		if row[2] == strconv.Itoa(int(game.Player2)) {
			want = "Custom"
		}
		require.Equal(t, want, row[4], "Player %s should search with its own scheme", row[2])
	}
}

func TestRunsAreRepeatable(t *testing.T) {
	configs := []metrics.AgentConfig{{ID: 1, Random: true}, {ID: 2, Level: 1}}
	matchUps := [][]metrics.AgentConfig{configs}

	dir1, err := testRunner(t).runExperiment(context.Background(), "a", configs, matchUps)
	require.NoError(t, err)
	dir2, err := testRunner(t).runExperiment(context.Background(), "a", configs, matchUps)
	require.NoError(t, err)

	moves1 := readCSV(t, filepath.Join(dir1, "move_records.csv"))
	moves2 := readCSV(t, filepath.Join(dir2, "move_records.csv"))
	require.Equal(t, len(moves1), len(moves2))
	for i := range moves1 {
		require.Equal(t, moves1[i][len(moves1[i])-1], moves2[i][len(moves2[i])-1], "Same seed should give the same moves")
	}
}

func TestExperimentErrors(t *testing.T) {
	t.Run("bad scheme", func(t *testing.T) {
		configs := []metrics.AgentConfig{{ID: 1, Level: 1}, {ID: 2, Level: 1, Scheme: "broken"}}
		_, err := testRunner(t).runExperiment(context.Background(), "bad", configs, [][]metrics.AgentConfig{configs})
		require.ErrorIs(t, err, game.ErrBadScheme)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := testRunner(t).RunThroughputExperiment(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
