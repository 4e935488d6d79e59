package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func TestRunTraining(t *testing.T) {
	cfg := TrainingConfig{
		Games:   2,
		Size:    6,
		Rounds:  8,
		Seed:    7,
		TreeDir: t.TempDir(),
		DataDir: t.TempDir(),
	}

	// Two games so the second one exercises resuming the saved trees.
	require.NoError(t, RunTraining(cfg))

	for _, name := range []string{"mcts_6_Black.tree", "mcts_6_White.tree"} {
		info, err := os.Stat(filepath.Join(cfg.TreeDir, name))
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}

	archives, err := filepath.Glob(filepath.Join(cfg.DataDir, "selfplay_*.parquet"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	rows, err := parquet.ReadFile[TrainingRow](archives[0])
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		require.Contains(t, []int32{1, 2}, row.Game)
		require.Contains(t, []string{"Black", "White"}, row.Side)
		require.NotEmpty(t, row.Board)
		require.NotEmpty(t, row.Outcome)
	}
}

func TestRunTrainingWithoutArchive(t *testing.T) {
	cfg := TrainingConfig{
		Games:   1,
		Size:    6,
		Rounds:  5,
		Seed:    3,
		TreeDir: t.TempDir(),
	}
	require.NoError(t, RunTraining(cfg))

	trees, err := filepath.Glob(filepath.Join(cfg.TreeDir, "*.tree"))
	require.NoError(t, err)
	require.Len(t, trees, 2)
}

func TestRunTrainingValidation(t *testing.T) {
	require.Error(t, RunTraining(TrainingConfig{Games: 0, Size: 6, Rounds: 5, TreeDir: t.TempDir()}))
	require.Error(t, RunTraining(TrainingConfig{
		Games: 1, Size: 6, Rounds: 5, Rollout: "vibes", TreeDir: t.TempDir(),
	}))
}
