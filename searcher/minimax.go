package searcher

import (
	"math"
	"time"

	"reversi/game"

	"golang.org/x/exp/rand"
)

// Minimax is a depth-limited alpha-beta searcher over a fixed evaluator.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	rng      *rand.Rand
}

// NewMinimax returns a searcher with the given ply depth and leaf evaluator.
// A nil rng seeds from the clock; pass a seeded one for reproducible search.
func NewMinimax(depth int, evaluate game.Evaluate, rng *rand.Rand) *Minimax {
	if depth <= 0 {
		panic("minimax depth must be positive")
	}
	if evaluate == nil {
		evaluate = game.EvaluateMaterial
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Minimax{
		depth:    depth,
		evaluate: evaluate,
		rng:      rng,
	}
}

// FindMove searches from the side to move and returns the best move found.
// Calling it on a decided position is a programmer error.
func (m *Minimax) FindMove(g *game.Game) game.Move {
	if g.Winner() != game.OutcomeNone {
		panic("cannot search a finished game")
	}
	move, _ := m.search(g, g.Turn(), m.depth, math.Inf(-1), math.Inf(1), true)
	return move
}

// search returns the chosen move and its value. At leaves (terminal position
// or depth 0) the move is empty and the value comes from the evaluator.
func (m *Minimax) search(g *game.Game, side game.Disc, depth int,
	alpha, beta float64, findMax bool) (game.Move, float64) {
	if g.Winner() != game.OutcomeNone || depth == 0 {
		return "", m.evaluate(g, side)
	}

	// Shuffle to break the leftmost-scan bias of the board order.
	moves := make([]game.Move, len(g.ValidMoves()))
	copy(moves, g.ValidMoves())
	m.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	if findMax {
		best := moves[0]
		maxEval := math.Inf(-1)
		for _, move := range moves {
			next, err := g.SimulateMove(move)
			if err != nil {
				panic(err) // moves come from ValidMoves
			}
			_, eval := m.search(next, side, depth-1, alpha, beta, false)
			if eval > maxEval {
				maxEval = eval
				best = move
			}
			alpha = math.Max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return best, maxEval
	}

	worst := moves[0]
	minEval := math.Inf(1)
	for _, move := range moves {
		next, err := g.SimulateMove(move)
		if err != nil {
			panic(err)
		}
		_, eval := m.search(next, side, depth-1, alpha, beta, true)
		if eval < minEval {
			minEval = eval
			worst = move
		}
		beta = math.Min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return worst, minEval
}
