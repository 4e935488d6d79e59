package searcher

import (
	"encoding/gob"
	"fmt"
	"io"

	"reversi/game"
)

// Tree persistence for offline training: a saved tree is the node skeleton
// (move, per-outcome counts, children) under a header binding it to a board
// size and side to move. Game states are not stored; loading replays each
// move from the root position to rebuild them.

type treeHeader struct {
	Version int
	Size    int
	Turn    game.Disc
}

type nodeRecord struct {
	Move     game.Move
	Black    int
	White    int
	Draws    int
	Children []nodeRecord
}

const treeFormatVersion = 1

// SaveTree writes the tree from the session origin to w. Searchers meant to
// persist should be built with WithOriginRetention so the origin stays at the
// game's starting position. It fails if no search has run yet.
func (m *MCTS) SaveTree(w io.Writer) error {
	if m.origin == nil {
		return fmt.Errorf("no search tree to save")
	}

	enc := gob.NewEncoder(w)
	header := treeHeader{
		Version: treeFormatVersion,
		Size:    m.origin.state.Size(),
		Turn:    m.origin.state.Turn(),
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("encode tree header: %w", err)
	}
	if err := enc.Encode(record(m.origin)); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return nil
}

// LoadTree replaces the retained tree with one read from r, rooted at the
// given position. The saved header must match the position's board size and
// side to move.
func (m *MCTS) LoadTree(r io.Reader, g *game.Game) error {
	dec := gob.NewDecoder(r)

	var header treeHeader
	if err := dec.Decode(&header); err != nil {
		return fmt.Errorf("decode tree header: %w", err)
	}
	if header.Version != treeFormatVersion {
		return fmt.Errorf("unsupported tree format version %d", header.Version)
	}
	if header.Size != g.Size() || header.Turn != g.Turn() {
		return fmt.Errorf("saved tree is for a %dx%d board with %s to move, not %dx%d with %s",
			header.Size, header.Size, header.Turn, g.Size(), g.Size(), g.Turn())
	}

	var rec nodeRecord
	if err := dec.Decode(&rec); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	root, err := rebuild(rec, g.Clone())
	if err != nil {
		return err
	}
	m.root = root
	m.origin = root
	return nil
}

func record(n *node) nodeRecord {
	rec := nodeRecord{
		Move:  n.move,
		Black: n.outcomes.black,
		White: n.outcomes.white,
		Draws: n.outcomes.draws,
	}
	for _, child := range n.children {
		rec.Children = append(rec.Children, record(child))
	}
	return rec
}

func rebuild(rec nodeRecord, state *game.Game) (*node, error) {
	n := newNode(rec.Move, state)
	n.outcomes = tally{black: rec.Black, white: rec.White, draws: rec.Draws}
	for _, childRec := range rec.Children {
		childState, err := state.SimulateMove(childRec.Move)
		if err != nil {
			return nil, fmt.Errorf("saved tree replays illegal move %q: %w", childRec.Move, err)
		}
		child, err := rebuild(childRec, childState)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}
