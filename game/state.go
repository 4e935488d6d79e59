package game

import (
	"fmt"
	"strings"
)

// Disc is the occupancy of a board cell.
type Disc int8

const (
	Empty Disc = iota
	Black
	White
)

func (d Disc) Opponent() Disc {
	switch d {
	case Black:
		return White
	case White:
		return Black
	}
	panic("empty cell has no opponent")
}

func (d Disc) String() string {
	switch d {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// Outcome is the result of a finished game, or OutcomeNone while in progress.
type Outcome int8

const (
	OutcomeNone Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "Black"
	case WhiteWins:
		return "White"
	case Draw:
		return "Draw"
	}
	return "None"
}

// Winner returns the side an outcome rewards, or Empty for a draw or an
// unfinished game.
func (o Outcome) Winner() Disc {
	switch o {
	case BlackWins:
		return Black
	case WhiteWins:
		return White
	}
	return Empty
}

// directions are the 8 non-zero (dRow, dCol) pairs used for sandwich checks.
var directions = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// Game is a Reversi position: the board grid, the side to move, incremental
// piece counters and the cached legal moves of the active side.
//
// The counters are maintained on every placement and flip so that no query
// ever rescans the full board.
type Game struct {
	size       int
	board      [][]Disc
	turn       Disc
	numBlack   int
	numWhite   int
	validMoves []Move
}

// NewGame returns the starting position for a board of the given side length.
// Only 6 and 8 are supported.
func NewGame(size int) *Game {
	if size != 6 && size != 8 {
		panic(fmt.Sprintf("unsupported board size %d", size))
	}
	board := make([][]Disc, size)
	for i := range board {
		board[i] = make([]Disc, size)
	}

	// The four center pieces in the canonical alternating pattern.
	mid := size/2 - 1
	board[mid][mid] = White
	board[mid][mid+1] = Black
	board[mid+1][mid] = Black
	board[mid+1][mid+1] = White

	g := &Game{
		size:     size,
		board:    board,
		turn:     Black,
		numBlack: 2,
		numWhite: 2,
	}
	g.validMoves = g.computeValidMoves(g.turn)
	return g
}

// NewGameFromBoard builds a position from an explicit board and side to move.
// The board must be square of side 6 or 8. The counters are scanned once here;
// this is the only full-board count in the package.
func NewGameFromBoard(board [][]Disc, turn Disc) *Game {
	size := len(board)
	if size != 6 && size != 8 {
		panic(fmt.Sprintf("unsupported board size %d", size))
	}
	g := &Game{
		size:  size,
		board: make([][]Disc, size),
		turn:  turn,
	}
	for i, row := range board {
		if len(row) != size {
			panic("board is not square")
		}
		g.board[i] = make([]Disc, size)
		copy(g.board[i], row)
		for _, d := range row {
			switch d {
			case Black:
				g.numBlack++
			case White:
				g.numWhite++
			}
		}
	}
	g.validMoves = g.computeValidMoves(g.turn)
	return g
}

// Clone returns a fully independent copy. Search trees own their copies;
// nothing is aliased back to the receiver.
func (g *Game) Clone() *Game {
	board := make([][]Disc, g.size)
	for i, row := range g.board {
		board[i] = make([]Disc, g.size)
		copy(board[i], row)
	}
	moves := make([]Move, len(g.validMoves))
	copy(moves, g.validMoves)

	return &Game{
		size:       g.size,
		board:      board,
		turn:       g.turn,
		numBlack:   g.numBlack,
		numWhite:   g.numWhite,
		validMoves: moves,
	}
}

func (g *Game) Size() int {
	return g.size
}

// Turn returns the side to move.
func (g *Game) Turn() Disc {
	return g.turn
}

// At returns the occupancy of the cell at (row, col).
func (g *Game) At(row, col int) Disc {
	return g.board[row][col]
}

// Board returns a snapshot of the grid for rendering and statistics
// collaborators. Mutating the snapshot does not affect the game.
func (g *Game) Board() [][]Disc {
	board := make([][]Disc, g.size)
	for i, row := range g.board {
		board[i] = make([]Disc, g.size)
		copy(board[i], row)
	}
	return board
}

// Counts returns the number of black and white discs on the board.
func (g *Game) Counts() (black, white int) {
	return g.numBlack, g.numWhite
}

// NumPieces returns the disc count of one side.
func (g *Game) NumPieces(side Disc) int {
	if side == Black {
		return g.numBlack
	}
	return g.numWhite
}

// FillRatio is the fraction of occupied cells, used by the phase-dependent
// evaluators to switch from positional play to plain material counting.
func (g *Game) FillRatio() float64 {
	return float64(g.numBlack+g.numWhite) / float64(g.size*g.size)
}

// ValidMoves returns the legal moves of the side to move. When no placement
// flips anything the only entry is Pass. The returned slice is shared with
// the cache; callers that reorder it must copy first.
func (g *Game) ValidMoves() []Move {
	return g.validMoves
}

// ApplyMove plays a move for the side to move, mutating the receiver.
// It returns an IllegalMoveError if the move is not currently legal.
func (g *Game) ApplyMove(move Move) error {
	if !g.Legal(move) {
		return &IllegalMoveError{Move: move}
	}

	if !move.IsPass() {
		row, col := move.Index()
		g.board[row][col] = g.turn

		flipped := 0
		for _, dir := range directions {
			for _, cell := range g.flipsInDirection(g.turn, row, col, dir[0], dir[1]) {
				g.board[cell[0]][cell[1]] = g.turn
				flipped++
			}
		}

		if g.turn == Black {
			g.numBlack += 1 + flipped
			g.numWhite -= flipped
		} else {
			g.numWhite += 1 + flipped
			g.numBlack -= flipped
		}
	}

	g.turn = g.turn.Opponent()
	g.validMoves = g.computeValidMoves(g.turn)
	return nil
}

// SimulateMove applies the move to a clone and returns it, never mutating the
// receiver. Search code uses this instead of make/unmake bookkeeping.
func (g *Game) SimulateMove(move Move) (*Game, error) {
	next := g.Clone()
	if err := next.ApplyMove(move); err != nil {
		return nil, err
	}
	return next, nil
}

// Winner reports the game result. The game is over only when both sides can
// do nothing but pass in the current position; the side with more discs wins.
func (g *Game) Winner() Outcome {
	if g.hasPlacement(Black) || g.hasPlacement(White) {
		return OutcomeNone
	}
	switch {
	case g.numBlack > g.numWhite:
		return BlackWins
	case g.numWhite > g.numBlack:
		return WhiteWins
	}
	return Draw
}

// Legal reports whether the side to move may play the move right now.
func (g *Game) Legal(move Move) bool {
	for _, m := range g.validMoves {
		if m == move {
			return true
		}
	}
	return false
}

func (g *Game) computeValidMoves(side Disc) []Move {
	var moves []Move
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.board[row][col] == Empty && g.anyFlip(side, row, col) {
				moves = append(moves, NewMove(row, col))
			}
		}
	}
	if len(moves) == 0 {
		moves = append(moves, Pass)
	}
	return moves
}

// hasPlacement reports whether the side has any move other than Pass.
func (g *Game) hasPlacement(side Disc) bool {
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.board[row][col] == Empty && g.anyFlip(side, row, col) {
				return true
			}
		}
	}
	return false
}

func (g *Game) anyFlip(side Disc, row, col int) bool {
	for _, dir := range directions {
		if len(g.flipsInDirection(side, row, col, dir[0], dir[1])) > 0 {
			return true
		}
	}
	return false
}

// flipsInDirection walks from the empty cell at (row, col) along (dRow, dCol)
// and returns the run of opponent cells that would flip if side played there:
// one or more opponent discs immediately followed by a same-side disc.
// Reaching the edge or an empty cell invalidates the direction.
func (g *Game) flipsInDirection(side Disc, row, col, dRow, dCol int) [][2]int {
	opponent := side.Opponent()

	r, c := row+dRow, col+dCol
	if !g.onBoard(r, c) || g.board[r][c] != opponent {
		return nil
	}

	var run [][2]int
	for g.onBoard(r, c) && g.board[r][c] == opponent {
		run = append(run, [2]int{r, c})
		r += dRow
		c += dCol
	}

	if !g.onBoard(r, c) || g.board[r][c] != side {
		return nil
	}
	return run
}

func (g *Game) onBoard(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// String renders the board in plain text, rows labelled 1..N and columns a..N.
func (g *Game) String() string {
	var b strings.Builder
	b.WriteString("  ")
	for col := 0; col < g.size; col++ {
		b.WriteByte(' ')
		b.WriteByte(byte('a' + col))
	}
	b.WriteByte('\n')
	for row := 0; row < g.size; row++ {
		fmt.Fprintf(&b, "%d ", row+1)
		for _, d := range g.board[row] {
			b.WriteByte(' ')
			switch d {
			case Black:
				b.WriteByte('X')
			case White:
				b.WriteByte('O')
			default:
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
