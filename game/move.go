package game

import "fmt"

// Move is a board coordinate in algebraic notation (column letter followed by
// row digit, e.g. "c4"), or the Pass token when the active side has no
// placement.
type Move string

const (
	// Pass is the only legal move when no placement produces a flip.
	Pass Move = "pass"
	// StartMove marks the root of a search tree before any move was made.
	StartMove Move = "*"
)

// NewMove builds the algebraic move for the cell at (row, col), both
// zero-based from the a1 corner.
func NewMove(row, col int) Move {
	return Move([]byte{byte('a' + col), byte('1' + row)})
}

// ParseMove validates raw input against the given board size. It accepts the
// Pass token and any in-bounds coordinate; legality against a position is the
// caller's concern.
func ParseMove(raw string, size int) (Move, error) {
	if raw == string(Pass) {
		return Pass, nil
	}
	if len(raw) != 2 {
		return "", fmt.Errorf("malformed move %q", raw)
	}
	col := int(raw[0] - 'a')
	row := int(raw[1] - '1')
	if row < 0 || row >= size || col < 0 || col >= size {
		return "", fmt.Errorf("move %q is off the %dx%d board", raw, size, size)
	}
	return Move(raw), nil
}

// Index returns the zero-based (row, col) of a coordinate move.
// Calling it on Pass or StartMove is a programmer error.
func (m Move) Index() (row, col int) {
	if m.IsPass() || m == StartMove {
		panic(fmt.Sprintf("move %q has no board coordinate", string(m)))
	}
	return int(m[1] - '1'), int(m[0] - 'a')
}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	return string(m)
}
