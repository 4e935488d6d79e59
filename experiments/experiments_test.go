package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"reversi/experiments/metrics"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRunMatch(t *testing.T) {
	outDir := t.TempDir()
	cfg := MatchConfig{
		Games:  3,
		Size:   6,
		Agent1: metrics.AgentConfig{ID: 1, Kind: "random"},
		Agent2: metrics.AgentConfig{ID: 2, Kind: "random"},
		Seed:   42,
		OutDir: outDir,
	}

	result, err := RunMatch(cfg)
	require.NoError(t, err)
	require.Equal(t, cfg.Games, result.Agent1Wins+result.Agent2Wins+result.Draws,
		"every game ends in a win or a draw")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "records go under one timestamped directory")

	dir := filepath.Join(outDir, entries[0].Name())
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestRunMatchValidation(t *testing.T) {
	_, err := RunMatch(MatchConfig{Games: 0, Size: 6})
	require.Error(t, err)

	_, err = RunMatch(MatchConfig{
		Games:  1,
		Size:   6,
		Agent1: metrics.AgentConfig{ID: 1, Kind: "oracle"},
		Agent2: metrics.AgentConfig{ID: 2, Kind: "random"},
	})
	require.ErrorContains(t, err, "unknown agent kind")
}

func TestBuildPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("known kinds", func(t *testing.T) {
		for _, cfg := range []metrics.AgentConfig{
			{Kind: "random"},
			{Kind: "minimax", Depth: 2, Evaluator: "positional"},
			{Kind: "minimax", Depth: 1}, // evaluator defaults to material
			{Kind: "mcts", Rounds: 10, Rollout: "mobility"},
		} {
			p, err := BuildPlayer(cfg, rng)
			require.NoError(t, err, "kind %q", cfg.Kind)
			require.NotNil(t, p)
		}
	})

	t.Run("unknown settings", func(t *testing.T) {
		_, err := BuildPlayer(metrics.AgentConfig{Kind: "psychic"}, rng)
		require.Error(t, err)

		_, err = BuildPlayer(metrics.AgentConfig{Kind: "minimax", Depth: 2, Evaluator: "vibes"}, rng)
		require.ErrorContains(t, err, "unknown evaluator")

		_, err = BuildPlayer(metrics.AgentConfig{Kind: "mcts", Rounds: 10, Rollout: "vibes"}, rng)
		require.ErrorContains(t, err, "unknown rollout policy")
	})
}
