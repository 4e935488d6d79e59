package searcher

import (
	"reversi/game"

	"golang.org/x/exp/rand"
)

// RolloutPolicy picks the next playout move. moves is the non-empty valid
// move list of g's side to move.
type RolloutPolicy func(g *game.Game, moves []game.Move, rng *rand.Rand) game.Move

// RandomRollout picks uniformly.
func RandomRollout(g *game.Game, moves []game.Move, rng *rand.Rand) game.Move {
	return moves[rng.Intn(len(moves))]
}

// PositionalRollout weights moves by the positional value of the cell they
// take, so corner grabs dominate the playouts.
func PositionalRollout(g *game.Game, moves []game.Move, rng *rand.Rand) game.Move {
	if len(moves) == 1 {
		return moves[0]
	}

	weights := make([]int, len(moves))
	for i, move := range moves {
		row, col := move.Index()
		// Shift the table so every move keeps a nonzero chance.
		weights[i] = game.CellWeight(g.Size(), row, col) + 9
	}
	return moves[weightedPick(weights, rng)]
}

// MobilityRollout weights moves by how few replies they leave the opponent.
func MobilityRollout(g *game.Game, moves []game.Move, rng *rand.Rand) game.Move {
	if len(moves) == 1 {
		return moves[0]
	}

	replies := make([]int, len(moves))
	most := 0
	for i, move := range moves {
		next, err := g.SimulateMove(move)
		if err != nil {
			panic(err)
		}
		replies[i] = len(next.ValidMoves())
		if replies[i] > most {
			most = replies[i]
		}
	}

	weights := make([]int, len(moves))
	for i, n := range replies {
		weights[i] = most - n + 1
	}
	return moves[weightedPick(weights, rng)]
}

// weightedPick samples an index proportionally to its positive weight.
func weightedPick(weights []int, rng *rand.Rand) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := rng.Intn(total)
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			return i
		}
	}
	return len(weights) - 1
}
