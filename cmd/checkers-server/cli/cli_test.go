package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"checkers/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, path string) {
	t.Helper()
	store, err := storage.NewStore(path, false)
	require.NoError(t, err)
	defer store.Close()

	store.RecordNewGame(storage.GameRecord{
		GameID:        "game-one",
		InitialLayout: "8/8/8/8/8/8/8/8 r",
		RedPlayerID:   "red-player-id",
		RedType:       1,
		BlackPlayerID: "black-player-id",
		BlackType:     2,
		StartTimeUTC:  time.Now().UTC(),
	})
	store.RecordMove(storage.MoveRecord{
		GameID:          "game-one",
		MoveNumber:      1,
		MoveNotation:    "c3-d4",
		LayoutAfterMove: "8/8/8/8/3r4/8/8/8 b",
		PlayerSide:      "r",
		MoveTimeUTC:     time.Now().UTC(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, store.Flush(ctx))
}

func TestDatabaseCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkers.db")
	var out bytes.Buffer

	require.NoError(t, run([]string{"init", "-path", path}, &out))
	assert.Contains(t, out.String(), "Database initialized")

	out.Reset()
	require.NoError(t, run([]string{"query", "-path", path}, &out))
	assert.Contains(t, out.String(), "No games found")

	seed(t, path)

	out.Reset()
	require.NoError(t, run([]string{"query", "-path", path, "-gameId", "*"}, &out))
	assert.Contains(t, out.String(), "game-one")
	assert.Contains(t, out.String(), "red-play (human)")
	assert.Contains(t, out.String(), "black-pl (computer)")
	assert.Contains(t, out.String(), "Found 1 game(s)")

	out.Reset()
	require.NoError(t, run([]string{"moves", "-path", path, "-gameId", "game-one"}, &out))
	assert.Contains(t, out.String(), "c3-d4")

	out.Reset()
	require.NoError(t, run([]string{"delete", "-path", path}, &out))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCommandErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Error(t, run([]string{"vacuum"}, &out))
	assert.Error(t, run([]string{"init"}, &out), "path is required")
	assert.Error(t, run([]string{"moves", "-path", filepath.Join(t.TempDir(), "x.db")}, &out), "game ID is required")
}
