package engine

import (
	"testing"

	"reversi/game"
	"reversi/player"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLocalRun(t *testing.T) {
	black := player.NewRandom(rand.New(rand.NewSource(1)))
	white := player.NewRandom(rand.New(rand.NewSource(2)))
	e := NewLocal(6, black, white)

	result, err := e.Run()
	require.NoError(t, err)
	require.NotEqual(t, game.OutcomeNone, result.Winner)
	require.NotEmpty(t, result.Moves)
	require.Equal(t, result.Winner, e.State().Winner())

	// The recorded sequence must replay to the same finished position.
	replay := game.NewGame(6)
	for _, move := range result.Moves {
		require.NoError(t, replay.ApplyMove(move))
	}
	require.Equal(t, result.Winner, replay.Winner())

	finalBlack, finalWhite := e.State().Counts()
	replayBlack, replayWhite := replay.Counts()
	require.Equal(t, finalBlack, replayBlack)
	require.Equal(t, finalWhite, replayWhite)
}

type illegalPlayer struct{}

func (illegalPlayer) Decide(*game.Game, game.Move) (game.Move, error) {
	return "a1", nil
}

func TestLocalRunRejectsIllegalDecision(t *testing.T) {
	e := NewLocal(6, illegalPlayer{}, illegalPlayer{})

	_, err := e.Run()
	require.Error(t, err)
	require.ErrorContains(t, err, "Black player")

	var illegal *game.IllegalMoveError
	require.ErrorAs(t, err, &illegal)
}

type stubbornPlayer struct{}

func (stubbornPlayer) Decide(g *game.Game, _ game.Move) (game.Move, error) {
	return g.ValidMoves()[0], nil
}

func TestLocalRunTerminates(t *testing.T) {
	// Two deterministic leftmost-move players still reach a finished game
	// well inside the move cap.
	e := NewLocal(8, stubbornPlayer{}, stubbornPlayer{})

	result, err := e.Run()
	require.NoError(t, err)
	require.NotEqual(t, game.OutcomeNone, result.Winner)
	require.Less(t, len(result.Moves), MaxMoves)
}
