package engine

import (
	"fmt"
	"time"

	"reversi/game"
	"reversi/player"

	"github.com/rs/zerolog/log"
)

// Local runs a game between two in-process players, applying each decided
// move to its own state and alternating turns until there is a winner.
type Local struct {
	state   *game.Game
	players map[game.Disc]player.Player
}

func NewLocal(size int, black, white player.Player) *Local {
	return &Local{
		state: game.NewGame(size),
		players: map[game.Disc]player.Player{
			game.Black: black,
			game.White: white,
		},
	}
}

// State exposes the live position, e.g. for rendering between turns.
func (e *Local) State() *game.Game {
	return e.state
}

func (e *Local) Run() (*Result, error) {
	start := time.Now()
	var moves []game.Move
	var previous game.Move

	for e.state.Winner() == game.OutcomeNone {
		if len(moves) >= MaxMoves {
			return nil, fmt.Errorf("game exceeded %d moves", MaxMoves)
		}

		side := e.state.Turn()
		move, err := e.players[side].Decide(e.state, previous)
		if err != nil {
			return nil, fmt.Errorf("%s player: %w", side, err)
		}
		if err := e.state.ApplyMove(move); err != nil {
			return nil, fmt.Errorf("%s player: %w", side, err)
		}

		log.Debug().
			Stringer("side", side).
			Stringer("move", move).
			Int("step", len(moves)+1).
			Msg("move played")

		moves = append(moves, move)
		previous = move
	}

	result := &Result{
		Winner:   e.state.Winner(),
		Moves:    moves,
		Duration: time.Since(start),
	}
	log.Info().
		Stringer("winner", result.Winner).
		Int("moves", len(result.Moves)).
		Dur("duration", result.Duration).
		Msg("game over")
	return result, nil
}
