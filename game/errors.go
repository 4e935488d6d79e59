package game

import "fmt"

// IllegalMoveError reports an attempt to play a move that is not legal in the
// current position. It is recoverable: prompt again or discard the branch.
type IllegalMoveError struct {
	Move Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %q", string(e.Move))
}
