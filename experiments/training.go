package experiments

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reversi/engine"
	"reversi/game"
	"reversi/player"
	"reversi/searcher"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// TrainingConfig drives repeated self-play in which each side keeps an MCTS
// tree that is saved after every game and reloaded at the start of the next,
// so the trees keep deepening across games.
type TrainingConfig struct {
	Games   int
	Size    int
	Rounds  int
	Rollout string
	Seed    uint64
	TreeDir string // saved trees, keyed by board size and side
	DataDir string // parquet archive of per-move rows; empty disables it
}

// TrainingRow is one archived decision of a self-play game: the position the
// mover saw, the move it chose and the final outcome of that game.
type TrainingRow struct {
	Game    int32  `parquet:"game"`
	Step    int32  `parquet:"step"`
	Side    string `parquet:"side,dict"`
	Board   string `parquet:"board"`
	Move    string `parquet:"move,dict"`
	Outcome string `parquet:"outcome,dict"`
}

// RunTraining plays the configured number of self-play games.
func RunTraining(cfg TrainingConfig) error {
	if cfg.Games < 1 {
		return fmt.Errorf("need at least one game")
	}
	if err := os.MkdirAll(cfg.TreeDir, 0755); err != nil {
		return fmt.Errorf("failed to create tree directory: %w", err)
	}

	rollout, err := rolloutPolicy(cfg.Rollout)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	var rows []TrainingRow
	for i := 0; i < cfg.Games; i++ {
		log.Info().Int("game", i+1).Int("of", cfg.Games).Msg("starting self-play game")

		searchers := map[game.Disc]*searcher.MCTS{}
		for _, side := range [2]game.Disc{game.Black, game.White} {
			s := searcher.NewMCTS(
				searcher.WithRounds(cfg.Rounds),
				searcher.WithRolloutPolicy(rollout),
				searcher.WithRand(rng),
				searcher.WithOriginRetention(),
			)
			if err := loadTree(s, cfg, side); err != nil {
				return err
			}
			searchers[side] = s
		}

		result, err := engine.NewLocal(cfg.Size,
			player.NewMCTS(searchers[game.Black], true),
			player.NewMCTS(searchers[game.White], true)).Run()
		if err != nil {
			return fmt.Errorf("self-play game %d: %w", i+1, err)
		}

		for _, side := range [2]game.Disc{game.Black, game.White} {
			if err := saveTree(searchers[side], cfg, side); err != nil {
				return err
			}
		}

		if cfg.DataDir != "" {
			rows = append(rows, replayRows(i+1, cfg.Size, result)...)
		}
	}

	if cfg.DataDir != "" {
		return writeArchive(cfg.DataDir, rows)
	}
	return nil
}

func treePath(cfg TrainingConfig, side game.Disc) string {
	return filepath.Join(cfg.TreeDir, fmt.Sprintf("mcts_%d_%s.tree", cfg.Size, side))
}

// loadTree resumes a saved tree if one exists. Both sides' trees are rooted
// at the opening position; a missing file just means a fresh start there.
func loadTree(s *searcher.MCTS, cfg TrainingConfig, side game.Disc) error {
	f, err := os.Open(treePath(cfg, side))
	if os.IsNotExist(err) {
		s.StartFrom(game.NewGame(cfg.Size))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open saved tree: %w", err)
	}
	defer f.Close()

	if err := s.LoadTree(f, game.NewGame(cfg.Size)); err != nil {
		return fmt.Errorf("failed to load saved tree: %w", err)
	}
	log.Info().Stringer("side", side).Msg("resumed saved tree")
	return nil
}

func saveTree(s *searcher.MCTS, cfg TrainingConfig, side game.Disc) error {
	f, err := os.Create(treePath(cfg, side))
	if err != nil {
		return fmt.Errorf("failed to create tree file: %w", err)
	}
	defer f.Close()

	if err := s.SaveTree(f); err != nil {
		return fmt.Errorf("failed to save tree: %w", err)
	}
	return nil
}

// replayRows reconstructs the position before every move of a finished game.
func replayRows(gameID, size int, result *engine.Result) []TrainingRow {
	rows := make([]TrainingRow, 0, len(result.Moves))
	g := game.NewGame(size)
	for step, move := range result.Moves {
		rows = append(rows, TrainingRow{
			Game:    int32(gameID),
			Step:    int32(step + 1),
			Side:    g.Turn().String(),
			Board:   g.String(),
			Move:    move.String(),
			Outcome: result.Winner.String(),
		})
		if err := g.ApplyMove(move); err != nil {
			panic(err) // the engine already played these moves
		}
	}
	return rows
}

func writeArchive(dir string, rows []TrainingRow) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("selfplay_%d.parquet", time.Now().UnixNano()))

	if err := parquet.WriteFile(path, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "selfplay_row_v1"),
	); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	log.Info().Str("path", path).Int("rows", len(rows)).Msg("archive written")
	return nil
}
