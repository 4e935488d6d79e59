package player

import (
	"time"

	"reversi/game"
	"reversi/searcher"

	"golang.org/x/exp/rand"
)

// Player decides the next move for the side to move. previousMove is the
// opponent's most recent move, or empty if none has been made since this
// player's last decision. Precondition: the position has at least one valid
// move (which may be Pass).
type Player interface {
	Decide(g *game.Game, previousMove game.Move) (game.Move, error)
}

// Random always picks a uniformly random valid move.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Random{rng: rng}
}

func (p *Random) Decide(g *game.Game, _ game.Move) (game.Move, error) {
	moves := g.ValidMoves()
	return moves[p.rng.Intn(len(moves))], nil
}

// Minimax wraps an alpha-beta searcher with a fixed depth and evaluator.
type Minimax struct {
	searcher *searcher.Minimax
}

func NewMinimax(depth int, evaluate game.Evaluate, rng *rand.Rand) *Minimax {
	return &Minimax{searcher: searcher.NewMinimax(depth, evaluate, rng)}
}

func (p *Minimax) Decide(g *game.Game, _ game.Move) (game.Move, error) {
	return p.searcher.FindMove(g), nil
}
