package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"reversi/engine"
	"reversi/experiments"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	mode := flag.String("mode", "play", "play, match or train")
	size := flag.Int("size", 8, "board size (6 or 8)")
	black := flag.String("black", "human", "black player: human, random, greedy, positional, mobility or mcts")
	white := flag.String("white", "mcts", "white player: human, random, greedy, positional, mobility or mcts")
	depth := flag.Int("depth", 3, "minimax search depth")
	rounds := flag.Int("rounds", 500, "MCTS rounds per move")
	movetime := flag.Duration("movetime", 0, "MCTS time budget per move (0 disables)")
	rollout := flag.String("rollout", "random", "MCTS rollout policy: random, positional or mobility")
	games := flag.Int("games", 10, "number of games for match and train modes")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "RNG seed")
	out := flag.String("out", "", "directory for match CSV records")
	trees := flag.String("trees", "trees", "directory for persisted training trees")
	data := flag.String("data", "", "directory for the self-play parquet archive")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch *mode {
	case "play":
		err = runPlay(*size, *black, *white, *depth, *rounds, *movetime, *rollout, *seed)
	case "match":
		err = runMatch(*size, *black, *white, *depth, *rounds, *movetime, *rollout, *games, *seed, *out)
	case "train":
		err = experiments.RunTraining(experiments.TrainingConfig{
			Games:   *games,
			Size:    *size,
			Rounds:  *rounds,
			Rollout: *rollout,
			Seed:    *seed,
			TreeDir: *trees,
			DataDir: *data,
		})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func runPlay(size int, black, white string, depth, rounds int,
	movetime time.Duration, rollout string, seed uint64) error {
	rng := rand.New(rand.NewSource(seed))

	blackPlayer, err := buildPlayer(black, size, depth, rounds, movetime, rollout, rng)
	if err != nil {
		return err
	}
	whitePlayer, err := buildPlayer(white, size, depth, rounds, movetime, rollout, rng)
	if err != nil {
		return err
	}

	local := engine.NewLocal(size, blackPlayer, whitePlayer)
	result, err := local.Run()
	if err != nil {
		return err
	}

	fmt.Print(renderBoard(local.State()))
	blackCount, whiteCount := local.State().Counts()
	fmt.Printf("final score %d-%d, winner: %s\n", blackCount, whiteCount, result.Winner)
	return nil
}

func runMatch(size int, agent1, agent2 string, depth, rounds int,
	movetime time.Duration, rollout string, games int, seed uint64, out string) error {
	cfg1, err := agentConfig(1, agent1, depth, rounds, movetime, rollout)
	if err != nil {
		return err
	}
	cfg2, err := agentConfig(2, agent2, depth, rounds, movetime, rollout)
	if err != nil {
		return err
	}

	result, err := experiments.RunMatch(experiments.MatchConfig{
		Games:  games,
		Size:   size,
		Agent1: cfg1,
		Agent2: cfg2,
		Seed:   seed,
		OutDir: out,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d/%d (%.2f%%)\n", agent1, result.Agent1Wins, games,
		100*float64(result.Agent1Wins)/float64(games))
	fmt.Printf("%s: %d/%d (%.2f%%)\n", agent2, result.Agent2Wins, games,
		100*float64(result.Agent2Wins)/float64(games))
	fmt.Printf("draws: %d/%d (%.2f%%)\n", result.Draws, games,
		100*float64(result.Draws)/float64(games))
	return nil
}

func buildPlayer(kind string, size, depth, rounds int, movetime time.Duration,
	rollout string, rng *rand.Rand) (player.Player, error) {
	if kind == "human" {
		return player.NewConsole(os.Stdin, os.Stdout, renderBoard), nil
	}
	cfg, err := agentConfig(0, kind, depth, rounds, movetime, rollout)
	if err != nil {
		return nil, err
	}
	return experiments.BuildPlayer(cfg, rng)
}

// agentConfig maps a CLI player name to an experiment agent configuration.
func agentConfig(id int, kind string, depth, rounds int,
	movetime time.Duration, rollout string) (metrics.AgentConfig, error) {
	cfg := metrics.AgentConfig{ID: id, Kind: kind}
	switch kind {
	case "random":
	case "greedy", "positional", "mobility":
		cfg.Kind = "minimax"
		cfg.Depth = depth
		cfg.Evaluator = kind
		if kind == "greedy" {
			cfg.Evaluator = "material"
		}
	case "mcts":
		cfg.Rounds = rounds
		cfg.Duration = movetime
		cfg.Rollout = rollout
	default:
		return cfg, fmt.Errorf("unknown player kind %q", kind)
	}
	return cfg, nil
}

// renderBoard draws the position with colored discs and highlighted legal
// moves for the side to move.
func renderBoard(g *game.Game) string {
	output := termenv.NewOutput(os.Stdout)
	blackDisc := output.String("●").Foreground(termenv.ANSIBlue).String()
	whiteDisc := output.String("●").Foreground(termenv.ANSIYellow).String()
	hint := output.String("+").Foreground(termenv.ANSIGreen).String()

	valid := map[game.Move]bool{}
	for _, move := range g.ValidMoves() {
		valid[move] = true
	}

	var b strings.Builder
	b.WriteString("  ")
	for col := 0; col < g.Size(); col++ {
		b.WriteByte(' ')
		b.WriteByte(byte('a' + col))
	}
	b.WriteByte('\n')
	for row := 0; row < g.Size(); row++ {
		fmt.Fprintf(&b, "%d ", row+1)
		for col := 0; col < g.Size(); col++ {
			b.WriteByte(' ')
			switch {
			case g.At(row, col) == game.Black:
				b.WriteString(blackDisc)
			case g.At(row, col) == game.White:
				b.WriteString(whiteDisc)
			case valid[game.NewMove(row, col)]:
				b.WriteString(hint)
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	black, white := g.Counts()
	fmt.Fprintf(&b, "%s %d  %s %d\n", blackDisc, black, whiteDisc, white)
	return b.String()
}
