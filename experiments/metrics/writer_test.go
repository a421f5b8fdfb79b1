package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"qenolaba/game"
	"testing"
	"time"

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

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "levels")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Level: 2},
			{ID: 2, Random: true},
			{ID: 3, Level: 3, Scheme: "Mine=1,2", Epsilon: 0.25},
		}))
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 4)
		require.Equal(t, []string{"id", "level", "scheme", "random", "epsilon"}, rows[0])
		require.Equal(t, []string{"2", "0", "", "true", "0"}, rows[2])
		require.Equal(t, []string{"3", "3", "Mine=1,2", "false", "0.25"}, rows[3])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{
				StartingPlayer: 2, Winner: 1, StartTime: start, EndTime: start.Add(time.Second),
				Duration: time.Second, TotalMoves: 57,
			},
		}}))
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "2", "2", "1", "2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s", "57"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		m := game.Move{Field: 36, Direction: game.Right, Type: game.Move3}
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{Step: 3, Player: 1, SearchMetric: SearchMetric{
				Depth: 2, Scheme: "Default", Nodes: 45, Generated: 1900, Outs: 1, Value: -12, BestMove: m,
			}},
		}}))
		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Len(t, rows[1], len(rows[0]))
		require.Equal(t, "C3/Right", rows[1][len(rows[1])-1])
		require.Equal(t, "-12", rows[1][len(rows[1])-2])
	})
}
