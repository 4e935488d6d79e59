package engine

import (
	"time"

	"reversi/game"
)

// MaxMoves caps a game as a safety net against a stuck player loop. A legal
// Reversi game on an 8x8 board is far shorter.
const MaxMoves = 500

// Result summarizes a finished game.
type Result struct {
	Winner   game.Outcome
	Moves    []game.Move
	Duration time.Duration
}

// Engine drives a game to completion.
type Engine interface {
	Run() (*Result, error)
}
