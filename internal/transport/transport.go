package transport

import (
	"checkers/internal/board"
	"checkers/internal/cli"
	"checkers/internal/core"
	"checkers/internal/game"
)

// View abstracts terminal input and output for the local game loop
type View interface {
	GetCommand() (*cli.Command, error)
	ReadLine() string
	DisplayBoard(b board.Board, marks ...board.Move)
	ShowMessage(msg string)
	ShowError(err error)
	ShowPrompt(prompt string)
	ShowHelp()
	ShowGameHistory(g *game.Game)
	ShowMoves(from string, moves []board.Move)
	ShowComputerMove(result *game.MoveResult)
	ShowHumanMove(result *game.MoveResult)
	ShowGameOver(state core.State)
	SetTheme(theme cli.ColorTheme) error
	ToggleVerbose() bool
}

var _ View = (*cli.CLI)(nil)
