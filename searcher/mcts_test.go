package searcher

import (
	"math"
	"testing"
	"time"

	"reversi/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func seededMCTS(seed uint64, options ...Option) *MCTS {
	options = append(options, WithRand(rand.New(rand.NewSource(seed))))
	return NewMCTS(options...)
}

func TestNewMCTSRequiresBudget(t *testing.T) {
	require.Panics(t, func() { NewMCTS() }, "a searcher without rounds or duration would never stop")
}

func TestRoundVisitAccounting(t *testing.T) {
	m := seededMCTS(1, WithRounds(1))
	m.root = newNode(game.StartMove, game.NewGame(6))

	const rounds = 50
	for i := 0; i < rounds; i++ {
		m.round()
	}

	require.Equal(t, rounds, m.root.visits(), "every round passes through the root")
	require.Len(t, m.root.children, 4, "expansion creates one child per opening move")

	childVisits := 0
	for _, child := range m.root.children {
		childVisits += child.visits()
		require.Greater(t, child.visits(), 0, "unvisited children are selected before UCT kicks in")
	}
	require.Equal(t, rounds-1, childVisits, "only the first round rolls out at the root itself")
}

func TestRoundTerminalWeight(t *testing.T) {
	// A board full of black discs is already decided; selection stops at the
	// root and backpropagates the proven result with extra multiplicity.
	board := make([][]game.Disc, 6)
	for row := range board {
		board[row] = make([]game.Disc, 6)
		for col := range board[row] {
			board[row][col] = game.Black
		}
	}
	terminal := game.NewGameFromBoard(board, game.White)
	require.Equal(t, game.BlackWins, terminal.Winner())

	m := seededMCTS(1, WithRounds(1))
	m.root = newNode(game.StartMove, terminal)
	m.round()
	require.Equal(t, DefaultTerminalWeight, m.root.visits())

	m = seededMCTS(1, WithRounds(1), WithTerminalWeight(5))
	m.root = newNode(game.StartMove, terminal)
	m.round()
	require.Equal(t, 5, m.root.visits())
}

func TestSelectChildPrefersUnvisited(t *testing.T) {
	m := seededMCTS(1, WithRounds(1))

	parent := newNode(game.StartMove, game.NewGame(6))
	parent.expand()
	parent.outcomes.add(game.BlackWins, 10)
	// Give every child but one a strong record; the fresh one must still go
	// first.
	for _, child := range parent.children[:3] {
		child.outcomes.add(game.BlackWins, 3)
	}

	require.Same(t, parent.children[3], m.selectChild(parent, game.Black))
}

func TestUctValue(t *testing.T) {
	g := game.NewGame(6)
	next, err := g.SimulateMove("c2")
	require.NoError(t, err)

	n := newNode("c2", next)
	n.outcomes = tally{black: 3, white: 1, draws: 2}

	// Black moved into the node, so the reward is black's wins with draws at
	// half weight: (3 + 1) / 6 plus the exploration term.
	want := 4.0/6.0 + math.Sqrt2*math.Sqrt(math.Log(10)/6)
	require.InDelta(t, want, n.uctValue(game.Black, math.Sqrt2, 10), 1e-12)

	// The mover into the node is black either way, so the value does not
	// depend on which side roots the tree.
	require.InDelta(t, want, n.uctValue(game.White, math.Sqrt2, 10), 1e-12)

	require.Panics(t, func() {
		newNode("c2", next).uctValue(game.Black, math.Sqrt2, 10)
	}, "an unvisited node has no defined UCT value")
}

func TestMostVisitedChild(t *testing.T) {
	parent := newNode(game.StartMove, game.NewGame(6))
	parent.expand()
	parent.children[1].outcomes.add(game.WhiteWins, 7)
	parent.children[2].outcomes.add(game.BlackWins, 7)

	require.Same(t, parent.children[1], parent.mostVisitedChild(),
		"decision is by visit count with leftmost tie-break, not by score")
}

func TestFindMove(t *testing.T) {
	m := seededMCTS(3, WithRounds(200))
	g := game.NewGame(6)

	move, err := m.FindMove(g, "")
	require.NoError(t, err)
	require.Contains(t, g.ValidMoves(), move)
	require.Equal(t, move, m.root.move, "the tree re-roots at the chosen move")

	// Play the decision and an opponent reply, then search again from the
	// retained tree.
	after, err := g.SimulateMove(move)
	require.NoError(t, err)
	reply := after.ValidMoves()[0]
	current, err := after.SimulateMove(reply)
	require.NoError(t, err)

	second, err := m.FindMove(current, reply)
	require.NoError(t, err)
	require.Contains(t, current.ValidMoves(), second)
}

func TestFindMoveSingleRound(t *testing.T) {
	// The smallest legal budget must still yield a decision, on a fresh tree
	// and on a retained one whose new root was never expanded.
	m := seededMCTS(6, WithRounds(1))
	g := game.NewGame(6)

	move, err := m.FindMove(g, "")
	require.NoError(t, err)
	require.Contains(t, g.ValidMoves(), move)

	after, err := g.SimulateMove(move)
	require.NoError(t, err)
	reply := after.ValidMoves()[0]
	current, err := after.SimulateMove(reply)
	require.NoError(t, err)

	second, err := m.FindMove(current, reply)
	require.NoError(t, err)
	require.Contains(t, current.ValidMoves(), second)
}

func TestFindMoveSingleRoundPrimed(t *testing.T) {
	g := game.NewGame(6)
	m := seededMCTS(6, WithRounds(1), WithOriginRetention())
	m.StartFrom(g)

	after, err := g.SimulateMove("c2")
	require.NoError(t, err)

	move, err := m.FindMove(after, "c2")
	require.NoError(t, err)
	require.Contains(t, after.ValidMoves(), move)
}

func TestFindMoveInconsistentTree(t *testing.T) {
	m := seededMCTS(3, WithRounds(50))
	g := game.NewGame(6)

	move, err := m.FindMove(g, "")
	require.NoError(t, err)

	after, err := g.SimulateMove(move)
	require.NoError(t, err)

	// A corner is never reachable this early, so the retained tree cannot
	// have it as a child.
	_, err = m.FindMove(after, "a1")
	var inconsistent *InconsistentTreeError
	require.ErrorAs(t, err, &inconsistent)
	require.Equal(t, game.Move("a1"), inconsistent.Move)

	m.Reset()
	_, err = m.FindMove(after, move)
	require.NoError(t, err, "a reset searcher starts a fresh tree")
}

func TestFindMoveDurationBudget(t *testing.T) {
	m := seededMCTS(5, WithDuration(30*time.Millisecond))
	g := game.NewGame(6)

	start := time.Now()
	move, err := m.FindMove(g, "")
	require.NoError(t, err)
	require.Contains(t, g.ValidMoves(), move)
	require.Greater(t, m.root.visits(), 0, "the budget must allow at least one round")
	require.Less(t, time.Since(start), time.Second, "in-flight rounds finish but the loop stops at the deadline")
}

func TestOriginRetention(t *testing.T) {
	g := game.NewGame(6)

	m := seededMCTS(7, WithRounds(100))
	_, err := m.FindMove(g, "")
	require.NoError(t, err)
	require.Same(t, m.root, m.origin, "without retention the origin follows the root")

	m = seededMCTS(7, WithRounds(100), WithOriginRetention())
	_, err = m.FindMove(g, "")
	require.NoError(t, err)
	require.NotSame(t, m.root, m.origin)
	require.Equal(t, game.StartMove, m.origin.move)
	require.Equal(t, game.Black, m.origin.state.Turn(), "the origin stays at the starting position")
}

func TestStartFrom(t *testing.T) {
	// A second player primed at the opening keeps its origin there even
	// though its first decision comes one move in.
	g := game.NewGame(6)
	m := seededMCTS(8, WithRounds(100), WithOriginRetention())
	m.StartFrom(g)

	after, err := g.SimulateMove("c2")
	require.NoError(t, err)

	move, err := m.FindMove(after, "c2")
	require.NoError(t, err)
	require.Contains(t, after.ValidMoves(), move)
	require.Equal(t, game.Black, m.origin.state.Turn())
	require.Equal(t, move, m.root.move, "the live root follows the decisions")
}
