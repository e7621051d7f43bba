package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
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
	t.Run("creating a timestamped run directory", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWriterAt(dir)
		require.NoError(t, err)

		info, err := os.Stat(w.BaseDir())
		require.NoError(t, err)
		require.True(t, info.IsDir())
		require.Equal(t, dir, filepath.Dir(w.BaseDir()), "run directory should nest under the experiment directory")
	})

	t.Run("writing agent configs", func(t *testing.T) {
		w, err := NewWriterAt(t.TempDir())
		require.NoError(t, err)

		err = w.WriteAgentConfigs([]AgentConfig{
			{ID: 0, Workers: 1, Nodes: 800},
			{ID: 1, Workers: 8, Nodes: 800, Time: 2 * time.Second, Noise: 0.5, Exploration: 1.41},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "should write a header and one row per config")
		require.Equal(t, []string{"id", "workers", "nodes", "time", "noise", "exploration"}, rows[0])
		require.Equal(t, []string{"0", "1", "800", "0s", "0", "0"}, rows[1])
		require.Equal(t, []string{"1", "8", "800", "2s", "0.5", "1.41"}, rows[2])
	})

	t.Run("writing game records", func(t *testing.T) {
		w, err := NewWriterAt(t.TempDir())
		require.NoError(t, err)

		start := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
		err = w.WriteGameRecords([]GameRecord{
			{
				ID:    1,
				White: 0,
				Black: 3,
				GameMetric: GameMetric{
					Winner:     "white",
					StartTime:  start,
					EndTime:    start.Add(time.Minute),
					Duration:   time.Minute,
					TotalPlies: 61,
				},
			},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t,
			[]string{"1", "0", "3", "white", "2026-08-21T10:00:00Z", "2026-08-21T10:01:00Z", "1m0s", "61"},
			rows[1])
	})

	t.Run("writing tactic records", func(t *testing.T) {
		w, err := NewWriterAt(t.TempDir())
		require.NoError(t, err)

		err = w.WriteTacticRecords([]TacticRecord{
			{
				Position: "6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1",
				Expected: "e1e8",
				Got:      "e1e8",
				Solved:   true,
				SearchMetric: SearchMetric{
					Workers:    4,
					Duration:   120 * time.Millisecond,
					Rounds:     400,
					Nodes:      350,
					StopReason: "node budget",
				},
			},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "tactic_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t,
			[]string{"6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1", "e1e8", "e1e8", "true", "4", "120ms", "400", "350", "node budget"},
			rows[1])
	})
}
