package game

import (
	"testing"

	"checkers/internal/board"
	"checkers/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, layout string) *Game {
	t.Helper()
	s, err := FromLayout(layout, Score{})
	require.NoError(t, err)
	red := core.NewPlayer(core.PlayerConfig{Type: core.PlayerHuman}, core.SideRed)
	black := core.NewPlayer(core.PlayerConfig{Type: core.PlayerComputer, ThinkTime: 200}, core.SideBlack)
	return New(s, red, black)
}

func TestGamePlay(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, board.StartingLayout)

	assert.Equal(t, core.StateOngoing, g.State())
	assert.Equal(t, core.SideRed, g.NextTurn())
	assert.Equal(t, core.PlayerHuman, g.NextPlayer().Type)

	result, ok := g.Play(board.NewMove(5, 0, 4, 1))
	require.True(t, ok)
	assert.Equal(t, "a3-b4", result.Move)
	assert.Equal(t, core.SideRed, result.PlayerSide)
	assert.False(t, result.Capture)
	assert.Same(t, result, g.LastResult())

	assert.Equal(t, []string{"a3-b4"}, g.Moves())
	assert.Equal(t, core.SideBlack, g.NextTurn())
	assert.True(t, g.NextPlayer().IsComputer())
	assert.Equal(t, g.NextPlayer().ID, g.CurrentSnapshot().PlayerID)

	_, ok = g.Play(board.NewMove(5, 2, 4, 3))
	assert.False(t, ok, "red cannot move twice")
	assert.Len(t, g.Moves(), 1)
}

func TestGamePlayCaptureAndPromotion(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "1r6/8/8/8/8/2b5/3r4/8 b")

	result, ok := g.Play(board.NewMove(5, 2, 7, 4))
	require.True(t, ok)
	assert.Equal(t, "c3xe1", result.Move)
	assert.True(t, result.Capture)
	assert.True(t, result.Promotion)
	assert.Equal(t, Score{Black: 1}, g.CurrentSnapshot().Score)
}

func TestGameVerdict(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "8/8/8/8/3b4/4r3/8/8 r")

	result, ok := g.Play(board.NewMove(5, 4, 3, 2))
	require.True(t, ok)
	assert.Equal(t, core.StateRedWins, result.GameState)
	assert.Equal(t, core.StateRedWins, g.State())

	g.SetState(core.StatePending)
	assert.Equal(t, core.StateRedWins, g.State(), "verdict is final")

	_, ok = g.Play(board.NewMove(3, 2, 2, 1))
	assert.False(t, ok)
}

func TestGameUndo(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "8/8/8/8/3b4/4r3/8/8 r")

	_, ok := g.Play(board.NewMove(5, 4, 3, 2))
	require.True(t, ok)
	require.True(t, g.Rules().IsGameOver())

	assert.Error(t, g.UndoMoves(0))
	assert.Error(t, g.UndoMoves(2))

	require.NoError(t, g.UndoMoves(1))
	assert.Equal(t, core.StateOngoing, g.State())
	assert.False(t, g.Rules().IsGameOver())
	assert.Equal(t, "8/8/8/8/3b4/4r3/8/8 r", g.CurrentLayout())
	assert.Equal(t, Score{}, g.Rules().Score())
	assert.Empty(t, g.Moves())
	assert.Nil(t, g.LastResult())
}

func TestGameUndoRestoresScore(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "1b6/8/8/8/3b4/4r3/8/8 r")

	_, ok := g.Play(board.NewMove(5, 4, 3, 2))
	require.True(t, ok)
	_, ok = g.Play(board.NewMove(0, 1, 1, 0))
	require.True(t, ok)
	assert.Equal(t, Score{Red: 1}, g.Rules().Score())

	require.NoError(t, g.UndoMoves(1))
	assert.Equal(t, Score{Red: 1}, g.Rules().Score())
	assert.Equal(t, core.SideBlack, g.NextTurn())

	require.NoError(t, g.UndoMoves(1))
	assert.Equal(t, Score{}, g.Rules().Score())
	assert.Equal(t, "1b6/8/8/8/3b4/4r3/8/8 r", g.InitialLayout())
}

func TestGameUpdatePlayers(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, board.StartingLayout)

	red := core.NewPlayer(core.PlayerConfig{Type: core.PlayerComputer}, core.SideRed)
	black := core.NewPlayer(core.PlayerConfig{Type: core.PlayerHuman}, core.SideBlack)
	g.UpdatePlayers(red, black)

	assert.Same(t, red, g.GetPlayer(core.SideRed))
	assert.Equal(t, red.ID, g.CurrentSnapshot().PlayerID)
	assert.Len(t, g.Snapshots(), 1)
}

func TestGameStuck(t *testing.T) {
	t.Parallel()
	// black man on row 7 cannot move; red still has a piece
	g := newTestGame(t, "1r6/8/8/8/8/8/8/b7 b")
	assert.Equal(t, core.StateStuck, g.State())
	assert.False(t, g.Rules().IsGameOver(), "a blocked side does not lose")

	g = newTestGame(t, "8/8/8/8/8/r7/8/b7 r")
	assert.Equal(t, core.StateOngoing, g.State())

	_, ok := g.Play(board.NewMove(5, 0, 4, 1))
	require.True(t, ok)
	assert.Equal(t, core.StateStuck, g.State())

	require.NoError(t, g.UndoMoves(1))
	assert.Equal(t, core.StateOngoing, g.State())
}

func TestGamePendingClearedByMove(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, board.StartingLayout)

	g.SetState(core.StatePending)
	assert.Equal(t, core.StatePending, g.State())

	_, ok := g.Play(board.NewMove(5, 0, 4, 1))
	require.True(t, ok)
	assert.Equal(t, core.StateOngoing, g.State())
}
