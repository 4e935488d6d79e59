package searcher

import (
	"fmt"

	"reversi/game"
)

// InconsistentTreeError reports a retained MCTS tree that has fallen out of
// sync with the live game: re-rooting asked for a move the tree never
// generated as a child. The search session must be rebuilt from scratch.
type InconsistentTreeError struct {
	Move game.Move
}

func (e *InconsistentTreeError) Error() string {
	return fmt.Sprintf("search tree has no child for move %q", string(e.Move))
}
