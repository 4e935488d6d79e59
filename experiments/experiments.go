package experiments

import (
	"fmt"
	"time"

	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MatchConfig describes a "run N games and tally" experiment between two
// agent configurations, alternating colors every game.
type MatchConfig struct {
	Games  int
	Size   int
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
	Seed   uint64
	OutDir string // when set, CSV records are written under it
}

// MatchResult tallies game outcomes per agent.
type MatchResult struct {
	Agent1Wins int
	Agent2Wins int
	Draws      int
}

// RunMatch plays the configured number of games and tallies the outcomes.
func RunMatch(cfg MatchConfig) (*MatchResult, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("need at least one game")
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	log.Info().
		Int("games", cfg.Games).
		Int("size", cfg.Size).
		Str("agent1", cfg.Agent1.Kind).
		Str("agent2", cfg.Agent2.Kind).
		Msg("starting match")

	result := &MatchResult{}
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord

	for i := 0; i < cfg.Games; i++ {
		// Alternate colors so neither agent keeps the first-move advantage.
		blackCfg, whiteCfg := cfg.Agent1, cfg.Agent2
		if i%2 == 1 {
			blackCfg, whiteCfg = whiteCfg, blackCfg
		}

		black, err := BuildPlayer(blackCfg, rng)
		if err != nil {
			return nil, err
		}
		white, err := BuildPlayer(whiteCfg, rng)
		if err != nil {
			return nil, err
		}

		var moves []metrics.MoveMetric
		start := time.Now()
		res, err := engine.NewLocal(cfg.Size,
			timed(black, game.Black, &moves),
			timed(white, game.White, &moves)).Run()
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		switch res.Winner.Winner() {
		case game.Black:
			result.addWin(blackCfg.ID == cfg.Agent1.ID)
		case game.White:
			result.addWin(whiteCfg.ID == cfg.Agent1.ID)
		default:
			result.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:     i + 1,
			Agent1: cfg.Agent1.ID,
			Agent2: cfg.Agent2.ID,
			GameMetric: metrics.GameMetric{
				StartingAgent: blackCfg.ID,
				Winner:        res.Winner.String(),
				StartTime:     start,
				EndTime:       start.Add(res.Duration),
				Duration:      res.Duration,
				TotalMoves:    len(res.Moves),
			},
		})
		for _, mm := range moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}

		log.Info().
			Int("game", i+1).
			Stringer("winner", res.Winner).
			Int("moves", len(res.Moves)).
			Msg("game finished")
	}

	log.Info().
		Int("agent1_wins", result.Agent1Wins).
		Int("agent2_wins", result.Agent2Wins).
		Int("draws", result.Draws).
		Msg("match finished")

	if cfg.OutDir != "" {
		writer, err := metrics.NewWriter(cfg.OutDir)
		if err != nil {
			return nil, err
		}
		if err := writer.WriteAgentConfigs([]metrics.AgentConfig{cfg.Agent1, cfg.Agent2}); err != nil {
			return nil, err
		}
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return nil, err
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return nil, err
		}
		log.Info().Str("dir", writer.Dir()).Msg("records written")
	}

	return result, nil
}

func (r *MatchResult) addWin(isAgent1 bool) {
	if isAgent1 {
		r.Agent1Wins++
	} else {
		r.Agent2Wins++
	}
}

// BuildPlayer constructs the player an AgentConfig describes.
func BuildPlayer(cfg metrics.AgentConfig, rng *rand.Rand) (player.Player, error) {
	switch cfg.Kind {
	case "random":
		return player.NewRandom(rng), nil
	case "minimax":
		evaluate, err := evaluator(cfg.Evaluator)
		if err != nil {
			return nil, err
		}
		return player.NewMinimax(cfg.Depth, evaluate, rng), nil
	case "mcts":
		rollout, err := rolloutPolicy(cfg.Rollout)
		if err != nil {
			return nil, err
		}
		options := []searcher.Option{
			searcher.WithRolloutPolicy(rollout),
			searcher.WithRand(rng),
		}
		if cfg.Rounds > 0 {
			options = append(options, searcher.WithRounds(cfg.Rounds))
		}
		if cfg.Duration > 0 {
			options = append(options, searcher.WithDuration(cfg.Duration))
		}
		return player.NewMCTS(searcher.NewMCTS(options...), true), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
}

func evaluator(name string) (game.Evaluate, error) {
	switch name {
	case "", "material":
		return game.EvaluateMaterial, nil
	case "positional":
		return game.EvaluatePositional, nil
	case "mobility":
		return game.EvaluateMobility, nil
	}
	return nil, fmt.Errorf("unknown evaluator %q", name)
}

func rolloutPolicy(name string) (searcher.RolloutPolicy, error) {
	switch name {
	case "", "random":
		return searcher.RandomRollout, nil
	case "positional":
		return searcher.PositionalRollout, nil
	case "mobility":
		return searcher.MobilityRollout, nil
	}
	return nil, fmt.Errorf("unknown rollout policy %q", name)
}

// timed decorates a player to record per-decision durations.
func timed(p player.Player, side game.Disc, out *[]metrics.MoveMetric) player.Player {
	return &timedPlayer{inner: p, side: side, out: out}
}

type timedPlayer struct {
	inner player.Player
	side  game.Disc
	out   *[]metrics.MoveMetric
}

func (p *timedPlayer) Decide(g *game.Game, previousMove game.Move) (game.Move, error) {
	start := time.Now()
	move, err := p.inner.Decide(g, previousMove)
	if err != nil {
		return "", err
	}
	*p.out = append(*p.out, metrics.MoveMetric{
		Step:     len(*p.out) + 1,
		Side:     p.side.String(),
		Move:     move.String(),
		Duration: time.Since(start),
	})
	return move, nil
}
