package processor

import (
	"testing"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	human    = core.PlayerConfig{Type: core.PlayerHuman}
	computer = core.PlayerConfig{Type: core.PlayerComputer}
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	svc := service.New(nil)
	p := New(svc, Options{Workers: 1, Seed: 42})
	t.Cleanup(func() {
		p.Close()
		svc.Close()
	})
	return p
}

func createGame(t *testing.T, p *Processor, req core.CreateGameRequest) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewCreateGameCommand(req))
	require.True(t, resp.Success, "%+v", resp.Error)
	game, ok := resp.Data.(core.GameResponse)
	require.True(t, ok)
	return game
}

func getGame(t *testing.T, p *Processor, id string) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewGetGameCommand(id))
	require.True(t, resp.Success)
	return resp.Data.(core.GameResponse)
}

func requireError(t *testing.T, resp ProcessorResponse, code string) {
	t.Helper()
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, code, resp.Error.Code, resp.Error.Error)
}

func TestCreateGame(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)

	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: computer})
	assert.NotEmpty(t, g.GameID)
	assert.Equal(t, board.StartingLayout, g.Layout)
	assert.Equal(t, "r", g.Turn)
	assert.Equal(t, "ongoing", g.State)
	assert.Empty(t, g.Moves)
	assert.Equal(t, core.PlayerComputer, g.Players.Black.Type)

	custom := createGame(t, p, core.CreateGameRequest{Red: human, Black: human, Layout: "8/8/8/4b3/3r4/8/8/8 b"})
	assert.Equal(t, "b", custom.Turn)

	requireError(t, p.Execute(NewCreateGameCommand(core.CreateGameRequest{Red: human, Black: human, Layout: "9/8 r"})), core.ErrInvalidLayout)
	requireError(t, p.Execute(Command{Type: CmdCreateGame, Args: "bogus"}), core.ErrInvalidRequest)
}

func TestHumanMoves(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: human})

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "a3-b4"}))
	require.True(t, resp.Success, "%+v", resp.Error)
	data := resp.Data.(core.GameResponse)
	assert.Equal(t, []string{"a3-b4"}, data.Moves)
	assert.Equal(t, "b", data.Turn)
	require.NotNil(t, data.LastMove)
	assert.Equal(t, "r", data.LastMove.PlayerSide)

	resp = p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "B6A5"}))
	require.True(t, resp.Success, "%+v", resp.Error)

	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "b4-b5"})), core.ErrInvalidMove)
	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "z9z9"})), core.ErrInvalidMove)
	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "a3\nb4"})), core.ErrInvalidMove)
	requireError(t, p.Execute(NewMakeMoveCommand("missing", core.MoveRequest{Move: "a3-b4"})), core.ErrGameNotFound)
	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: core.ComputerMoveToken})), core.ErrNotHumanTurn)
}

func TestCaptureToVictory(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: human, Layout: "8/8/8/8/3b4/4r3/8/8 r"})

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "e3xc5"}))
	require.True(t, resp.Success, "%+v", resp.Error)
	data := resp.Data.(core.GameResponse)
	assert.Equal(t, "red wins", data.State)
	assert.Equal(t, "red", data.Winner)
	assert.Equal(t, 1, data.Score.Red)
	assert.True(t, data.LastMove.Capture)

	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "c5-b6"})), core.ErrGameOver)

	resp = p.Execute(NewUndoMoveCommand(g.GameID, core.UndoRequest{Count: 1}))
	require.True(t, resp.Success)
	assert.Equal(t, "ongoing", resp.Data.(core.GameResponse).State)
}

func TestComputerMove(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: computer})

	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: core.ComputerMoveToken})), core.ErrNotHumanTurn)

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "c3-d4"}))
	require.True(t, resp.Success, "%+v", resp.Error)

	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "b6-a5"})), core.ErrNotHumanTurn)

	resp = p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: core.ComputerMoveToken}))
	require.True(t, resp.Success, "%+v", resp.Error)
	assert.True(t, resp.Pending)

	require.Eventually(t, func() bool {
		return len(getGame(t, p, g.GameID).Moves) == 2
	}, 2*time.Second, 10*time.Millisecond)

	after := getGame(t, p, g.GameID)
	assert.Equal(t, "ongoing", after.State)
	assert.Equal(t, "r", after.Turn)
	require.NotNil(t, after.LastMove)
	assert.Equal(t, "b", after.LastMove.PlayerSide)
	assert.Positive(t, after.LastMove.Candidates)
}

func TestComputerPrefersCapture(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	// black b6 can take c5; f6 could only step
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: computer, Layout: "8/8/1b3b2/2r5/8/8/8/6r1 b"})

	resp := p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: core.ComputerMoveToken}))
	require.True(t, resp.Success, "%+v", resp.Error)

	require.Eventually(t, func() bool {
		return len(getGame(t, p, g.GameID).Moves) == 1
	}, 2*time.Second, 10*time.Millisecond)

	after := getGame(t, p, g.GameID)
	assert.Equal(t, []string{"b6xd4"}, after.Moves)
	assert.Equal(t, 1, after.Score.Black)
}

func TestStuckGame(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: computer, Layout: "1r6/8/8/8/8/8/8/b7 b"})
	assert.Equal(t, "stuck", g.State)

	requireError(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: core.ComputerMoveToken})), core.ErrGameOver)
}

func TestUndoDeleteAndConfigure(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: human})

	requireError(t, p.Execute(NewUndoMoveCommand(g.GameID, core.UndoRequest{Count: 1})), core.ErrInvalidRequest)

	require.True(t, p.Execute(NewMakeMoveCommand(g.GameID, core.MoveRequest{Move: "a3-b4"})).Success)
	resp := p.Execute(Command{Type: CmdUndoMove, GameID: g.GameID})
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data.(core.GameResponse).Moves)

	resp = p.Execute(NewConfigurePlayersCommand(g.GameID, core.ConfigurePlayersRequest{Red: computer, Black: human}))
	require.True(t, resp.Success)
	assert.Equal(t, core.PlayerComputer, resp.Data.(core.GameResponse).Players.Red.Type)

	require.True(t, p.Execute(NewDeleteGameCommand(g.GameID)).Success)
	requireError(t, p.Execute(NewDeleteGameCommand(g.GameID)), core.ErrGameNotFound)
	requireError(t, p.Execute(NewGetGameCommand(g.GameID)), core.ErrGameNotFound)
}

func TestBoardAndLegalMoves(t *testing.T) {
	t.Parallel()
	p := newProcessor(t)
	g := createGame(t, p, core.CreateGameRequest{Red: human, Black: human})

	resp := p.Execute(NewGetBoardCommand(g.GameID))
	require.True(t, resp.Success)
	b := resp.Data.(core.BoardResponse)
	assert.Equal(t, board.StartingLayout, b.Layout)
	assert.Contains(t, b.Board, "a b c d e f g h")

	resp = p.Execute(NewLegalMovesCommand(g.GameID, ""))
	require.True(t, resp.Success)
	assert.Len(t, resp.Data.(core.LegalMovesResponse).Moves, 7)

	resp = p.Execute(NewLegalMovesCommand(g.GameID, "c3"))
	require.True(t, resp.Success)
	assert.ElementsMatch(t, []string{"c3-b4", "c3-d4"}, resp.Data.(core.LegalMovesResponse).Moves)

	resp = p.Execute(NewLegalMovesCommand(g.GameID, "c7"))
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data.(core.LegalMovesResponse).Moves, "not the side to move")

	requireError(t, p.Execute(NewLegalMovesCommand(g.GameID, "k9")), core.ErrInvalidRequest)
}

func TestThinkTime(t *testing.T) {
	t.Parallel()
	assert.Zero(t, thinkTime(nil))
	assert.Equal(t, 250*time.Millisecond, thinkTime(&core.Player{ThinkTime: 250}))
	assert.Equal(t, 10*time.Second, thinkTime(&core.Player{ThinkTime: 99999}))
}
