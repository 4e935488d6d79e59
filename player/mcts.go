package player

import (
	"reversi/game"
	"reversi/searcher"
)

// MCTS wraps a Monte-Carlo searcher. A retaining player keeps its tree
// across turns and re-roots it at the opponent's moves; a non-retaining one
// rebuilds from scratch every decision.
type MCTS struct {
	searcher *searcher.MCTS
	retain   bool
}

func NewMCTS(s *searcher.MCTS, retain bool) *MCTS {
	return &MCTS{searcher: s, retain: retain}
}

func (p *MCTS) Decide(g *game.Game, previousMove game.Move) (game.Move, error) {
	if !p.retain {
		p.searcher.Reset()
	}
	return p.searcher.FindMove(g, previousMove)
}

// Searcher exposes the wrapped searcher so harnesses can persist its tree.
func (p *MCTS) Searcher() *searcher.MCTS {
	return p.searcher
}

// Reset drops any retained tree, e.g. between games of a match.
func (p *MCTS) Reset() {
	p.searcher.Reset()
}
