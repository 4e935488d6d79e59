package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"reversi/game"
)

// Console is the human-input adapter: it renders the position, prompts for a
// move and re-prompts until the input is legal.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	render func(*game.Game) string
}

// NewConsole reads moves from in and writes prompts to out. render draws the
// position before each prompt; nil falls back to the plain-text board.
func NewConsole(in io.Reader, out io.Writer, render func(*game.Game) string) *Console {
	if render == nil {
		render = func(g *game.Game) string { return g.String() }
	}
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		render: render,
	}
}

func (p *Console) Decide(g *game.Game, previousMove game.Move) (game.Move, error) {
	fmt.Fprint(p.out, p.render(g))
	if previousMove != "" {
		fmt.Fprintf(p.out, "opponent played %s\n", previousMove)
	}

	for {
		fmt.Fprintf(p.out, "%s to move (e.g. c4, or pass): ", g.Turn())
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}

		raw := strings.TrimSpace(strings.ToLower(p.in.Text()))
		move, err := game.ParseMove(raw, g.Size())
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		if !g.Legal(move) {
			fmt.Fprintf(p.out, "%v\n", &game.IllegalMoveError{Move: move})
			continue
		}
		return move, nil
	}
}
