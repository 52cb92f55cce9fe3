package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players() (*core.Player, *core.Player) {
	return core.NewPlayer(core.PlayerConfig{Type: core.PlayerHuman}, core.SideRed),
		core.NewPlayer(core.PlayerConfig{Type: core.PlayerComputer, ThinkTime: 100}, core.SideBlack)
}

func newGame(t *testing.T, svc *Service, layout string) string {
	t.Helper()
	id := svc.GenerateGameID()
	red, black := players()
	require.NoError(t, svc.CreateGame(id, red, black, layout))
	return id
}

func TestCreateAndView(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()

	id := newGame(t, svc, "")
	assert.Equal(t, 1, svc.GameCount())

	red, black := players()
	assert.ErrorIs(t, svc.CreateGame(id, red, black, ""), ErrGameExists)
	assert.ErrorIs(t, svc.CreateGame("other", red, black, "not a layout"), board.ErrInvalidLayout)

	err := svc.View(id, func(g *game.Game) error {
		assert.Equal(t, board.StartingLayout, g.CurrentLayout())
		assert.Equal(t, core.SideRed, g.NextTurn())
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.View("missing", func(*game.Game) error { return nil }), ErrGameNotFound)
	assert.Equal(t, "disabled", svc.GetStorageHealth())
}

func TestApplyMove(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()
	id := newGame(t, svc, "")

	_, err := svc.ApplyMove(id, board.NewMove(5, 0, 3, 2), -1)
	assert.ErrorIs(t, err, ErrIllegalMove)

	result, err := svc.ApplyMove(id, board.NewMove(5, 0, 4, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "a3-b4", result.Move)

	_, err = svc.ApplyMove(id, board.NewMove(2, 1, 3, 0), 0)
	assert.ErrorIs(t, err, ErrStaleState)

	pos, err := svc.Position(id)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.MoveCount)
	assert.Equal(t, core.SideBlack, pos.State.CurrentPlayer())
	assert.True(t, pos.Next.IsComputer())

	// the copy is detached
	require.True(t, pos.State.MakeMove(2, 1, 3, 0))
	pos2, err := svc.Position(id)
	require.NoError(t, err)
	assert.Equal(t, core.SideBlack, pos2.State.CurrentPlayer())

	_, err = svc.ApplyMove("missing", board.NewMove(2, 1, 3, 0), -1)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestApplyMoveAfterGameOver(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()
	id := newGame(t, svc, "8/8/8/8/3b4/4r3/8/8 r")

	result, err := svc.ApplyMove(id, board.NewMove(5, 4, 3, 2), -1)
	require.NoError(t, err)
	assert.Equal(t, core.StateRedWins, result.GameState)

	_, err = svc.ApplyMove(id, board.NewMove(3, 2, 2, 1), -1)
	assert.ErrorIs(t, err, ErrGameOver)

	require.NoError(t, svc.UpdateGameState(id, core.StateStuck))
	require.NoError(t, svc.View(id, func(g *game.Game) error {
		assert.Equal(t, core.StateRedWins, g.State())
		return nil
	}))
}

func TestUndoAndDelete(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()
	id := newGame(t, svc, "")

	_, err := svc.ApplyMove(id, board.NewMove(5, 0, 4, 1), -1)
	require.NoError(t, err)
	_, err = svc.ApplyMove(id, board.NewMove(2, 1, 3, 0), -1)
	require.NoError(t, err)

	assert.Error(t, svc.UndoMoves(id, 3))
	require.NoError(t, svc.UndoMoves(id, 2))

	pos, err := svc.Position(id)
	require.NoError(t, err)
	assert.Equal(t, 0, pos.MoveCount)
	assert.Equal(t, board.StartingLayout, pos.State.Layout())

	require.NoError(t, svc.DeleteGame(id))
	assert.ErrorIs(t, svc.DeleteGame(id), ErrGameNotFound)
	assert.Equal(t, 0, svc.GameCount())
}

func TestUpdatePlayers(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()
	id := newGame(t, svc, "")

	red := core.NewPlayer(core.PlayerConfig{Type: core.PlayerComputer}, core.SideRed)
	black := core.NewPlayer(core.PlayerConfig{Type: core.PlayerHuman}, core.SideBlack)
	require.NoError(t, svc.UpdatePlayers(id, red, black))

	pos, err := svc.Position(id)
	require.NoError(t, err)
	assert.Equal(t, red.ID, pos.Next.ID)
	assert.ErrorIs(t, svc.UpdatePlayers("missing", red, black), ErrGameNotFound)
}

func TestWaitReleasedByMove(t *testing.T) {
	t.Parallel()
	svc := New(nil)
	defer svc.Close()
	id := newGame(t, svc, "")

	ch, err := svc.RegisterWait(context.Background(), id, 0)
	require.NoError(t, err)

	select {
	case <-ch:
		t.Fatal("released before any move")
	case <-time.After(20 * time.Millisecond):
	}

	_, err = svc.ApplyMove(id, board.NewMove(5, 0, 4, 1), -1)
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("waiter not released by move")
	}

	// stale move count returns at once
	ch, err = svc.RegisterWait(context.Background(), id, 0)
	require.NoError(t, err)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("stale waiter not released")
	}

	_, err = svc.RegisterWait(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestPersistence(t *testing.T) {
	t.Parallel()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "games.db"), false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	svc := New(store)
	defer svc.Close()
	assert.Equal(t, "ok", svc.GetStorageHealth())

	id := newGame(t, svc, "")
	_, err = svc.ApplyMove(id, board.NewMove(5, 0, 4, 1), -1)
	require.NoError(t, err)
	_, err = svc.ApplyMove(id, board.NewMove(2, 1, 3, 0), -1)
	require.NoError(t, err)
	require.NoError(t, svc.UndoMoves(id, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, store.Flush(ctx))

	games, err := store.QueryGames(id, "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, board.StartingLayout, games[0].InitialLayout)
	assert.Equal(t, int(core.PlayerComputer), games[0].BlackType)

	moves, err := store.QueryMoves(id)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "a3-b4", moves[0].MoveNotation)
	assert.Equal(t, "r", moves[0].PlayerSide)
}
