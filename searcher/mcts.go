package searcher

import (
	"math"
	"time"

	"reversi/game"

	"golang.org/x/exp/rand"
)

// Hyperparameter defaults for MCTS.
const (
	DefaultExploration = math.Sqrt2
	// DefaultTerminalWeight is how many times a terminal node reached during
	// selection is backpropagated, biasing the tree toward proven outcomes.
	DefaultTerminalWeight = 3
)

type Option func(*MCTS)

// WithExploration sets the UCT exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithRounds sets a fixed number of search rounds per decision.
func WithRounds(rounds int) Option {
	return func(m *MCTS) {
		if rounds > 0 {
			m.rounds = rounds
		}
	}
}

// WithDuration sets a wall-clock budget per decision. When both a round and
// a time budget are set, whichever ends first stops the search.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithTerminalWeight sets the backpropagation multiplicity for terminal
// nodes reached during selection.
func WithTerminalWeight(weight int) Option {
	return func(m *MCTS) {
		if weight > 0 {
			m.terminalWeight = weight
		}
	}
}

// WithRolloutPolicy sets the playout move policy.
func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.policy = policy
		}
	}
}

// WithRand injects a seeded RNG for reproducible search.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithOriginRetention keeps the session's first root alive while the search
// descends, so the full tree from the starting position can be persisted.
// Without it, re-rooting discards everything above the new root.
func WithOriginRetention() Option {
	return func(m *MCTS) {
		m.keepOrigin = true
	}
}

// MCTS is a Monte-Carlo tree searcher with UCT selection. The tree is
// retained between calls and re-rooted at the moves actually played; Reset
// drops it.
type MCTS struct {
	exploration    float64
	rounds         int
	duration       time.Duration
	terminalWeight int
	policy         RolloutPolicy
	rng            *rand.Rand
	keepOrigin     bool
	origin         *node // session's first root; equal to root unless retained
	root           *node
}

// NewMCTS requires at least one of WithRounds and WithDuration.
func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		exploration:    DefaultExploration,
		terminalWeight: DefaultTerminalWeight,
		policy:         RandomRollout,
		rng:            rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(m)
	}
	if m.rounds <= 0 && m.duration <= 0 {
		panic("must specify search rounds or duration")
	}
	return m
}

// Reset discards the retained tree.
func (m *MCTS) Reset() {
	m.root = nil
	m.origin = nil
}

// StartFrom roots a fresh tree at the given position before any search has
// run. Self-play harnesses call it with the starting position so that even
// the second player's tree is anchored there and can be persisted against
// it; without this the first FindMove would root the tree one move in.
func (m *MCTS) StartFrom(g *game.Game) {
	m.root = newNode(game.StartMove, g.Clone())
	m.origin = m.root
}

// FindMove runs the search budget from the given position and returns the
// most visited root child. previous is the opponent's move since our last
// decision (empty on the first call); a retained tree is re-rooted at it,
// and a desynchronized tree surfaces as an InconsistentTreeError.
//
// After deciding, the tree is re-rooted at the chosen move so the next call
// starts from the opponent's reply.
func (m *MCTS) FindMove(g *game.Game, previous game.Move) (game.Move, error) {
	if m.root == nil {
		root := game.StartMove
		if previous != "" {
			root = previous
		}
		m.root = newNode(root, g.Clone())
		m.origin = m.root
	} else if previous != "" {
		if len(m.root.children) == 0 {
			m.root.expand()
		}
		if err := m.descend(previous); err != nil {
			return "", err
		}
	}

	// The decision needs root children no matter how small the budget, so a
	// childless root (fresh, loaded leaf, or descended-to) expands up front
	// instead of waiting for a revisit.
	if len(m.root.children) == 0 {
		m.root.expand()
	}

	m.search()

	// Ownership transfer: without origin retention the rest of the tree is
	// garbage once the root moves down.
	best := m.root.mostVisitedChild()
	m.root = best
	if !m.keepOrigin {
		m.origin = m.root
	}
	return best.move, nil
}

// descend re-roots the retained tree at the given move.
func (m *MCTS) descend(move game.Move) error {
	child := m.root.findChild(move)
	if child == nil {
		return &InconsistentTreeError{Move: move}
	}
	m.root = child
	if !m.keepOrigin {
		m.origin = m.root
	}
	return nil
}

// search runs rounds until the round or time budget is exhausted. An
// in-flight rollout always completes; the deadline is only polled between
// rounds.
func (m *MCTS) search() {
	start := time.Now()
	for round := 0; ; round++ {
		if m.rounds > 0 && round >= m.rounds {
			return
		}
		if m.duration > 0 && time.Since(start) >= m.duration {
			return
		}
		m.round()
	}
}

// round performs one selection / expansion / rollout / backpropagation pass.
func (m *MCTS) round() {
	rootSide := m.root.state.Turn()

	// Selection: descend to a leaf, taking any unvisited child before UCT.
	path := []*node{m.root}
	current := m.root
	for len(current.children) > 0 {
		current = m.selectChild(current, rootSide)
		path = append(path, current)
	}

	// A terminal leaf backpropagates its proven result with extra weight.
	if outcome := current.state.Winner(); outcome != game.OutcomeNone {
		backpropagate(path, outcome, m.terminalWeight)
		return
	}

	// Expansion happens on revisit only; a first-touch leaf rolls out as is.
	if current.visits() > 0 {
		current.expand()
		current = current.children[0]
		path = append(path, current)
	}

	backpropagate(path, m.rollout(current.state), 1)
}

func (m *MCTS) selectChild(n *node, rootSide game.Disc) *node {
	var best *node
	bestValue := math.Inf(-1)
	for _, child := range n.children {
		if child.visits() == 0 {
			return child
		}
		if value := child.uctValue(rootSide, m.exploration, n.visits()); value > bestValue {
			bestValue = value
			best = child
		}
	}
	return best
}

// rollout plays the position to the end on a private clone and returns the
// result.
func (m *MCTS) rollout(state *game.Game) game.Outcome {
	g := state.Clone()
	for g.Winner() == game.OutcomeNone {
		move := m.policy(g, g.ValidMoves(), m.rng)
		if err := g.ApplyMove(move); err != nil {
			panic(err) // policies pick from ValidMoves
		}
	}
	return g.Winner()
}

func backpropagate(path []*node, outcome game.Outcome, weight int) {
	for _, n := range path {
		n.outcomes.add(outcome, weight)
	}
}
