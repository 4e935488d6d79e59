package game

import "math"

// Evaluate scores a position from the given side's perspective. Terminal
// positions are +Inf (side wins), -Inf (side loses) or 0 (draw); callers must
// treat the infinities as proven results, not large scores.
type Evaluate func(g *Game, side Disc) float64

// PhaseThreshold is the board fill ratio at which the positional and mobility
// evaluators fall back to plain material counting.
const PhaseThreshold = 0.80

// weights8 and weights6 assign a value to holding each cell: corners highest,
// cells adjacent to corners negative. Both tables are symmetric under the
// board's 4-fold symmetry.
var weights8 = [8][8]int{
	{10, -5, 5, 5, 5, 5, -5, 10},
	{-5, -8, -2, -2, -2, -2, -8, -5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, 0, 0, -1, -2, 5},
	{5, -2, -1, 0, 0, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{-5, -8, -2, -2, -2, -2, -8, -5},
	{10, -5, 5, 5, 5, 5, -5, 10},
}

var weights6 = [6][6]int{
	{10, -5, 5, 5, -5, 10},
	{-5, -8, -2, -2, -8, -5},
	{5, -2, 0, 0, -2, 5},
	{5, -2, 0, 0, -2, 5},
	{-5, -8, -2, -2, -8, -5},
	{10, -5, 5, 5, -5, 10},
}

// CellWeight returns the positional weight of (row, col) for the given board
// size.
func CellWeight(size, row, col int) int {
	if size == 8 {
		return weights8[row][col]
	}
	return weights6[row][col]
}

// terminalScore maps a finished game to the infinities the searchers rely on.
func terminalScore(outcome Outcome, side Disc) float64 {
	switch outcome.Winner() {
	case side:
		return math.Inf(1)
	case side.Opponent():
		return math.Inf(-1)
	}
	return 0 // draw
}

// EvaluateMaterial is the ratio of side's discs to the opponent's.
func EvaluateMaterial(g *Game, side Disc) float64 {
	if outcome := g.Winner(); outcome != OutcomeNone {
		return terminalScore(outcome, side)
	}
	return materialRatio(g, side)
}

func materialRatio(g *Game, side Disc) float64 {
	own := g.NumPieces(side)
	opp := g.NumPieces(side.Opponent())
	if opp == 0 {
		// Every disc flipped; only reachable pre-terminal in hand-built
		// positions, but keep the function total.
		return float64(own)
	}
	return float64(own) / float64(opp)
}

// EvaluatePositional sums the per-cell weight table (positive for side's
// discs, negative for the opponent's) until the phase threshold, then falls
// back to material.
func EvaluatePositional(g *Game, side Disc) float64 {
	if outcome := g.Winner(); outcome != OutcomeNone {
		return terminalScore(outcome, side)
	}
	if g.FillRatio() >= PhaseThreshold {
		return materialRatio(g, side)
	}

	size := g.Size()
	total := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			switch g.At(row, col) {
			case side:
				total += CellWeight(size, row, col)
			case side.Opponent():
				total -= CellWeight(size, row, col)
			}
		}
	}
	return float64(total)
}

// EvaluateMobility scores corner control plus the active side's move count
// until the phase threshold, then falls back to material.
func EvaluateMobility(g *Game, side Disc) float64 {
	if outcome := g.Winner(); outcome != OutcomeNone {
		return terminalScore(outcome, side)
	}
	if g.FillRatio() >= PhaseThreshold {
		return materialRatio(g, side)
	}

	own, opp := CornerCounts(g, side)
	return 10*float64(own-opp) + float64(len(g.ValidMoves()))
}

// CornerCounts returns how many corners side and its opponent hold.
func CornerCounts(g *Game, side Disc) (own, opp int) {
	last := g.Size() - 1
	for _, row := range [2]int{0, last} {
		for _, col := range [2]int{0, last} {
			switch g.At(row, col) {
			case side:
				own++
			case side.Opponent():
				opp++
			}
		}
	}
	return own, opp
}
