package searcher

import (
	"math"

	"reversi/game"
)

// tally accumulates rollout outcomes on a tree node.
type tally struct {
	black int
	white int
	draws int
}

func (t *tally) add(outcome game.Outcome, n int) {
	switch outcome {
	case game.BlackWins:
		t.black += n
	case game.WhiteWins:
		t.white += n
	case game.Draw:
		t.draws += n
	default:
		panic("cannot record an unfinished outcome")
	}
}

func (t tally) total() int {
	return t.black + t.white + t.draws
}

// winsFor is the reward credited to a side: full weight for wins, half for
// draws.
func (t tally) winsFor(side game.Disc) float64 {
	wins := t.white
	if side == game.Black {
		wins = t.black
	}
	return float64(wins) + 0.5*float64(t.draws)
}

// node is one position in an MCTS tree. It exclusively owns its state; a node
// with zero visits is always a leaf.
type node struct {
	move     game.Move
	state    *game.Game
	outcomes tally
	children []*node
}

func newNode(move game.Move, state *game.Game) *node {
	return &node{move: move, state: state}
}

func (n *node) visits() int {
	return n.outcomes.total()
}

// expand creates one child per legal move. Must only be called on a
// non-terminal leaf.
func (n *node) expand() {
	if len(n.children) > 0 {
		panic("node is already expanded")
	}
	for _, move := range n.state.ValidMoves() {
		next, err := n.state.SimulateMove(move)
		if err != nil {
			panic(err)
		}
		n.children = append(n.children, newNode(move, next))
	}
}

// findChild returns the child reached by move, or nil.
func (n *node) findChild(move game.Move) *node {
	for _, child := range n.children {
		if child.move == move {
			return child
		}
	}
	return nil
}

// uctValue scores the node for selection from its parent. rootSide is the
// side to move at the tree root; the reward counts the wins of whoever
// played into this node.
func (n *node) uctValue(rootSide game.Disc, c float64, parentVisits int) float64 {
	visits := n.outcomes.total()
	if visits == 0 {
		panic("cannot compute UCT with 0 visits")
	}

	// The mover into this node is the side whose reward the value exploits:
	// if it is the root side's turn again, the opponent made this move.
	perspective := rootSide
	if n.state.Turn() == rootSide {
		perspective = rootSide.Opponent()
	}

	w := n.outcomes.winsFor(perspective)
	nf := float64(visits)
	return w/nf + c*math.Sqrt(math.Log(float64(parentVisits))/nf)
}

// mostVisitedChild is the decision rule: highest total visit count wins,
// leftmost child on ties.
func (n *node) mostVisitedChild() *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}
	best := n.children[0]
	for _, child := range n.children[1:] {
		if child.visits() > best.visits() {
			best = child
		}
	}
	return best
}
